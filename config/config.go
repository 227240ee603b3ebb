package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
}

type PersistenceConfig struct {
	// Backend selects the document store: "file", "postgres" or "gorm".
	Backend         string         `mapstructure:"backend"`
	DataDir         string         `mapstructure:"data_dir"`
	AutosaveSeconds int            `mapstructure:"autosave_seconds"`
	Postgres        PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.metrics_address", ":9100")
	viper.SetDefault("server.rpc_address", ":7070")
	viper.SetDefault("persistence.backend", "file")
	viper.SetDefault("persistence.data_dir", "./data")
	viper.SetDefault("persistence.autosave_seconds", 10)

	viper.AutomaticEnv()

	// A missing config file is fine, the defaults above apply.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}

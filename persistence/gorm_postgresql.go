// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/roomserver/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// DocumentModel 文档行
type DocumentModel struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := db.AutoMigrate(&DocumentModel{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) loadDocument(name string, out interface{}) error {
	var row DocumentModel
	if err := g.db.Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(row.Data, out)
}

func (g *GormPostgreSQL) saveDocument(name string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	var row DocumentModel
	result := g.db.Where("name = ?", name).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		row = DocumentModel{Name: name, Data: raw}
		return g.db.Create(&row).Error
	} else if result.Error != nil {
		return result.Error
	}

	row.Data = raw
	row.UpdatedAt = time.Now()
	return g.db.Save(&row).Error
}

func (g *GormPostgreSQL) LoadPlayers() (*models.PlayersDocument, error) {
	doc := &models.PlayersDocument{}
	if err := g.loadDocument(docPlayers, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (g *GormPostgreSQL) SavePlayers(doc *models.PlayersDocument) error {
	return g.saveDocument(docPlayers, doc)
}

func (g *GormPostgreSQL) LoadColliders() (*models.CollidersDocument, error) {
	doc := &models.CollidersDocument{}
	if err := g.loadDocument(docColliders, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (g *GormPostgreSQL) SaveColliders(doc *models.CollidersDocument) error {
	return g.saveDocument(docColliders, doc)
}

func (g *GormPostgreSQL) LoadObjects() (*models.ObjectsDocument, error) {
	doc := &models.ObjectsDocument{}
	if err := g.loadDocument(docObjects, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (g *GormPostgreSQL) SaveObjects(doc *models.ObjectsDocument) error {
	return g.saveDocument(docObjects, doc)
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

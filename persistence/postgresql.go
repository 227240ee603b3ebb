// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/wfunc/roomserver/models"
)

// PostgreSQL 数据库实现（database/sql）
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS documents (
            name TEXT PRIMARY KEY,
            data JSONB NOT NULL,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	return err
}

func (p *PostgreSQL) loadDocument(name string, out interface{}) error {
	var raw []byte
	err := p.db.QueryRow(`SELECT data FROM documents WHERE name = $1`, name).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (p *PostgreSQL) saveDocument(name string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(`
        INSERT INTO documents (name, data, updated_at)
        VALUES ($1, $2, CURRENT_TIMESTAMP)
        ON CONFLICT (name)
        DO UPDATE SET data = EXCLUDED.data, updated_at = CURRENT_TIMESTAMP`,
		name, raw)
	return err
}

func (p *PostgreSQL) LoadPlayers() (*models.PlayersDocument, error) {
	doc := &models.PlayersDocument{}
	if err := p.loadDocument(docPlayers, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *PostgreSQL) SavePlayers(doc *models.PlayersDocument) error {
	return p.saveDocument(docPlayers, doc)
}

func (p *PostgreSQL) LoadColliders() (*models.CollidersDocument, error) {
	doc := &models.CollidersDocument{}
	if err := p.loadDocument(docColliders, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *PostgreSQL) SaveColliders(doc *models.CollidersDocument) error {
	return p.saveDocument(docColliders, doc)
}

func (p *PostgreSQL) LoadObjects() (*models.ObjectsDocument, error) {
	doc := &models.ObjectsDocument{}
	if err := p.loadDocument(docObjects, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *PostgreSQL) SaveObjects(doc *models.ObjectsDocument) error {
	return p.saveDocument(docObjects, doc)
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}

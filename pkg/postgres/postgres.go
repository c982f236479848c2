package postgres

import (
	"context"
	"embed"
	"fmt"
	"net"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type DB struct {
	Host     string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	User     string `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	NameDB   string `yaml:"dbname" envconfig:"DB_NAME" default:"restaurants"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `yaml:"maxConns" envconfig:"DB_MAX_CONNS" default:"10"`
}

func (d *DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User, d.Password, net.JoinHostPort(d.Host, d.Port), d.NameDB, d.SSLMode)
}

// NewPostgresDB connects over pgx and applies the embedded goose migrations.
func NewPostgresDB(ctx context.Context, cfg *DB, migrationFiles embed.FS) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "sqlx.Open")
	}
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetConnMaxIdleTime(time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping")
	}

	goose.SetBaseFS(migrationFiles)
	if err = goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "goose dialect")
	}
	if err = goose.Up(db.DB, "."); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "goose up")
	}
	return db, nil
}

package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

// Migrator applies the embedded goose migrations over a pgx pool.
type Migrator struct {
	db  *sql.DB
	log *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, log *zap.Logger) (*Migrator, error) {
	goose.SetBaseFS(files)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// goose works on *sql.DB; closing it leaves the pool open
	return &Migrator{
		db:  stdlib.OpenDBFromPool(pool),
		log: log.With(zap.String("component", "migrator")),
	}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	m.log.Info("Applying database migrations")
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("get migration version: %w", err)
	}
	m.log.Info("Migrations applied", zap.Int64("version", version))
	return nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}

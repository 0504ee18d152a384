package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"moviereviews/proj/internal/storage"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ErrConflictCode   = "23505"
	ErrForeignKeyCode = "23503"
)

//go:embed schema.sql
var schema string

type Storage struct {
	Conn *pgxpool.Pool
}

func New(ctx context.Context, storagePath string, maxConns int, maxConnIdleTime time.Duration) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(storagePath)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = maxConnIdleTime
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Storage{Conn: pool}, nil
}

// Migrate creates missing tables. Statements are idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.Conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres.Storage.Migrate: %w", err)
	}
	return nil
}

// MapError translates postgres constraint violations into storage sentinels.
// A foreign key violation means a referenced row is gone.
func MapError(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		switch pgxErr.Code {
		case ErrConflictCode:
			return storage.ErrConflict
		case ErrForeignKeyCode:
			return storage.ErrNotFound
		}
	}
	return err
}

package models

import (
	"context"
	"errors"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenModel struct {
	DB *pgxpool.Pool
}

// GetOrCreate returns the token of userID, storing key as its token when the
// user has none yet.
func (m *TokenModel) GetOrCreate(ctx context.Context, userID int64, key string) (*models.Token, error) {
	_, err := m.DB.Exec(
		ctx,
		`INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		key,
		userID,
	)
	if err != nil {
		return nil, err
	}
	rows, _ := m.DB.Query(ctx, `SELECT key, user_id, created_at FROM auth_tokens WHERE user_id = $1`, userID)
	token, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Token])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (m *TokenModel) GetUser(ctx context.Context, key string) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, u.password_hash, u.is_staff, u.is_superuser,
		u.date_joined, u.updated_at
		FROM auth_tokens t JOIN users u ON u.id = t.user_id WHERE t.key = $1`,
		key,
	)
	return collectUser(rows)
}

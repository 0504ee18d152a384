package models

import (
	"context"
	"errors"
	"moviereviews/proj/internal/domain/filters"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/storage"
	"moviereviews/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, first_name, last_name, email, password_hash, is_staff, is_superuser, date_joined, updated_at`

type UserModel struct {
	DB *pgxpool.Pool
}

func (m *UserModel) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+userColumns,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.IsStaff,
		user.IsSuperuser,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return &created, nil
}

func (m *UserModel) Get(ctx context.Context, id int64) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return collectUser(rows)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return collectUser(rows)
}

func (m *UserModel) Count(ctx context.Context) (int, error) {
	var count int
	err := m.DB.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count)
	return count, err
}

func (m *UserModel) List(ctx context.Context, f filters.Filters) ([]models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`,
		f.Limit(),
		f.Offset(),
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
}

func collectUser(rows pgx.Rows) (*models.User, error) {
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

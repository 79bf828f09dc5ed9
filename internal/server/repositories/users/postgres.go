// Package users provides the PostgreSQL-backed repository for identity
// records. Email matching is case-sensitive exact equality.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/growject/growject/internal/common"
	"github.com/growject/growject/internal/dbx"
	"github.com/growject/growject/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	skills, err := json.Marshal(user.Skills)
	if err != nil {
		return nil, fmt.Errorf("skills marshal error: %w", err)
	}

	query :=
		`INSERT INTO users (id, name, email, password_hash, bio, avatar_key, skills, level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Bio, user.AvatarKey, skills, user.Level).
		Scan(&user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, bio, avatar_key, skills, level, created_at FROM users
		 WHERE email = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, bio, avatar_key, skills, level, created_at FROM users
		 WHERE id = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Update persists the mutable profile fields. ID and email are never touched.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	skills, err := json.Marshal(user.Skills)
	if err != nil {
		return nil, fmt.Errorf("skills marshal error: %w", err)
	}

	query :=
		`UPDATE users SET name = $2, bio = $3, avatar_key = $4, skills = $5, level = $6
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Bio, user.AvatarKey, skills, user.Level)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return user, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var skills []byte

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Bio, &user.AvatarKey, &skills, &user.Level, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(skills, &user.Skills); err != nil {
		return nil, fmt.Errorf("skills unmarshal error: %w", err)
	}

	return user, nil
}

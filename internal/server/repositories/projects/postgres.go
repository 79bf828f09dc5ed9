// Package projects provides PostgreSQL-backed project persistence.
package projects

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

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {

	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	stacks, err := json.Marshal(project.Stacks)
	if err != nil {
		return nil, fmt.Errorf("stacks marshal error: %w", err)
	}

	query :=
		`INSERT INTO projects (id, name, description, objectives, stacks, owner_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		project.ID, project.Name, project.Description, project.Objectives, stacks,
		project.OwnerID, project.Status).
		Scan(&project.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query :=
		`SELECT id, name, description, objectives, stacks, owner_id, status, created_at FROM projects
		 WHERE id = $1
		 `

	project := &models.Project{}
	var stacks []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.Description, &project.Objectives,
		&stacks, &project.OwnerID, &project.Status, &project.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(stacks, &project.Stacks); err != nil {
		return nil, fmt.Errorf("stacks unmarshal error: %w", err)
	}

	return project, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	query :=
		`SELECT id, name, description, objectives, stacks, owner_id, status, created_at FROM projects
		 WHERE owner_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		var item models.Project
		var stacks []byte
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Objectives,
			&stacks, &item.OwnerID, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(stacks, &item.Stacks); err != nil {
			return nil, fmt.Errorf("stacks unmarshal error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update persists mutable fields. OwnerID is immutable once set and is
// deliberately absent from the statement.
func (r *PostgresRepository) Update(ctx context.Context, project *models.Project) (*models.Project, error) {
	stacks, err := json.Marshal(project.Stacks)
	if err != nil {
		return nil, fmt.Errorf("stacks marshal error: %w", err)
	}

	query :=
		`UPDATE projects SET name = $2, description = $3, objectives = $4, stacks = $5, status = $6
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.Objectives, stacks, project.Status)
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

	return project, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Package tasks provides PostgreSQL-backed task persistence.
package tasks

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO tasks (id, project_id, title, description, status, order_index, assigned_to_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.ProjectID, task.Title, task.Description, task.Status,
		task.OrderIndex, nullable(task.AssignedToID)).
		Scan(&task.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query :=
		`SELECT id, project_id, title, description, status, order_index, assigned_to_id, created_at FROM tasks
		 WHERE id = $1
		 `

	task := &models.Task{}
	var assignedTo sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.OrderIndex, &assignedTo, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	task.AssignedToID = assignedTo.String
	return task, nil
}

// ListByProject returns the project's tasks in kanban order.
func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	query :=
		`SELECT id, project_id, title, description, status, order_index, assigned_to_id, created_at FROM tasks
		 WHERE project_id = $1
		 ORDER BY order_index
		 `

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		var item models.Task
		var assignedTo sql.NullString
		if err := rows.Scan(
			&item.ID, &item.ProjectID, &item.Title, &item.Description,
			&item.Status, &item.OrderIndex, &assignedTo, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.AssignedToID = assignedTo.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update persists mutable fields. ProjectID is immutable once set.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks SET title = $2, description = $3, status = $4, order_index = $5, assigned_to_id = $6
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.OrderIndex, nullable(task.AssignedToID))
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

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
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

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

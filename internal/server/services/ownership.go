package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/growject/growject/internal/common"
	"github.com/growject/growject/internal/server/models"
	"github.com/growject/growject/internal/server/repositories/repomanager"
)

// OwnershipGuard is the single choke point for resource access control.
// Every project, task and dashboard operation resolves the target through it
// before reading or mutating any field.
type OwnershipGuard struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewOwnershipGuard(db *sql.DB, m repomanager.RepositoryManager) *OwnershipGuard {
	return &OwnershipGuard{db: db, repomanager: m}
}

// OwnedProject loads the project and enforces that callerEmail's account is
// its owner. Ownership is compared by user id, not email.
//
// Failure modes:
//   - project absent:       common.ErrorNotFound
//   - caller account gone:  common.ErrorUserNotFound (valid token, deleted user)
//   - caller is not owner:  common.ErrorForbidden
func (g *OwnershipGuard) OwnedProject(ctx context.Context, projectID, callerEmail string) (*models.Project, error) {
	project, err := g.repomanager.Projects(g.db).GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	caller, err := g.repomanager.Users(g.db).GetByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, err
	}

	if project.OwnerID != caller.ID {
		return nil, common.ErrorForbidden
	}

	return project, nil
}

// ProjectTask loads a task that must belong to the already-authorized parent
// project. A task that exists under a different project yields
// common.ErrorNotFound, never ErrorForbidden, so callers cannot probe for
// tasks in foreign projects.
func (g *OwnershipGuard) ProjectTask(ctx context.Context, project *models.Project, taskID string) (*models.Task, error) {
	task, err := g.repomanager.Tasks(g.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != project.ID {
		return nil, common.ErrorNotFound
	}
	return task, nil
}

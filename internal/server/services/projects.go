package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/growject/growject/internal/common"
	"github.com/growject/growject/internal/server/models"
	"github.com/growject/growject/internal/server/repositories/repomanager"
)

// ProjectDraft carries project creation input.
type ProjectDraft struct {
	Name        string
	Description string
	Objectives  string
	Stacks      []string
}

// ProjectPatch is a partial update: nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
	Objectives  *string
	Stacks      []string
	Status      *models.ProjectStatus
}

// ProjectService implements project CRUD for the authenticated caller.
// Everything except Create and List goes through the ownership guard.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	guard       *OwnershipGuard
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager, guard *OwnershipGuard) *ProjectService {
	return &ProjectService{db: db, repomanager: m, guard: guard}
}

// Create stores a new project owned by the caller. Projects start ACTIVE.
func (s *ProjectService) Create(ctx context.Context, callerEmail string, draft ProjectDraft) (*models.Project, error) {
	owner, err := s.callerByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	stacks := draft.Stacks
	if stacks == nil {
		stacks = []string{}
	}

	project := &models.Project{
		Name:        draft.Name,
		Description: draft.Description,
		Objectives:  draft.Objectives,
		Stacks:      stacks,
		OwnerID:     owner.ID,
		Status:      models.ProjectActive,
	}
	created, err := s.repomanager.Projects(s.db).Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	return created, nil
}

// List returns every project owned by the caller.
func (s *ProjectService) List(ctx context.Context, callerEmail string) ([]*models.Project, error) {
	owner, err := s.callerByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	result, err := s.repomanager.Projects(s.db).ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	return result, nil
}

// Get returns one project, owner-only.
func (s *ProjectService) Get(ctx context.Context, projectID, callerEmail string) (*models.Project, error) {
	return s.guard.OwnedProject(ctx, projectID, callerEmail)
}

// Update applies the patch to an owned project.
func (s *ProjectService) Update(ctx context.Context, projectID, callerEmail string, patch ProjectPatch) (*models.Project, error) {
	project, err := s.guard.OwnedProject(ctx, projectID, callerEmail)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Objectives != nil {
		project.Objectives = *patch.Objectives
	}
	if patch.Stacks != nil {
		project.Stacks = patch.Stacks
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}

	updated, err := s.repomanager.Projects(s.db).Update(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("error updating project: %w", err)
	}
	return updated, nil
}

// Delete removes an owned project (and its tasks via FK cascade).
func (s *ProjectService) Delete(ctx context.Context, projectID, callerEmail string) error {
	project, err := s.guard.OwnedProject(ctx, projectID, callerEmail)
	if err != nil {
		return err
	}
	if err := s.repomanager.Projects(s.db).Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}
	return nil
}

func (s *ProjectService) callerByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, err
	}
	return user, nil
}

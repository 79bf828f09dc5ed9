package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/growject/growject/internal/common"
	"github.com/growject/growject/internal/server/models"
	"github.com/growject/growject/internal/server/repositories/repomanager"
)

// TaskDraft carries task creation input. A nil AssignedToID assigns the
// project owner; a nil Status starts the task in TO_DO.
type TaskDraft struct {
	Title        string
	Description  string
	Status       *models.TaskStatus
	OrderIndex   *int
	AssignedToID *string
}

// TaskPatch is a partial update: nil fields are left unchanged.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	OrderIndex   *int
	AssignedToID *string
}

// TaskView pairs a task with the display name of its assignee.
type TaskView struct {
	*models.Task
	AssignedToName string
}

// TaskService implements task CRUD nested under a project. Every operation
// first authorizes the parent project through the ownership guard, then
// checks the task/project link; a task living in a foreign project surfaces
// as not-found.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	guard       *OwnershipGuard
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, guard *OwnershipGuard) *TaskService {
	return &TaskService{db: db, repomanager: m, guard: guard}
}

// Create adds a task to an owned project.
func (s *TaskService) Create(ctx context.Context, projectID, callerEmail string, draft TaskDraft) (*TaskView, error) {
	project, err := s.guard.OwnedProject(ctx, projectID, callerEmail)
	if err != nil {
		return nil, err
	}

	assignedTo := project.OwnerID
	if draft.AssignedToID != nil {
		assignee, err := s.repomanager.Users(s.db).GetByID(ctx, *draft.AssignedToID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorUserNotFound
			}
			return nil, err
		}
		assignedTo = assignee.ID
	}

	status := models.TaskToDo
	if draft.Status != nil {
		status = *draft.Status
	}
	orderIndex := 0
	if draft.OrderIndex != nil {
		orderIndex = *draft.OrderIndex
	}

	task := &models.Task{
		ProjectID:    project.ID,
		Title:        draft.Title,
		Description:  draft.Description,
		Status:       status,
		OrderIndex:   orderIndex,
		AssignedToID: assignedTo,
	}
	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return s.toView(ctx, created)
}

// ListByProject returns the project's tasks in kanban order.
func (s *TaskService) ListByProject(ctx context.Context, projectID, callerEmail string) ([]*TaskView, error) {
	project, err := s.guard.OwnedProject(ctx, projectID, callerEmail)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repomanager.Tasks(s.db).ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].OrderIndex < tasks[j].OrderIndex })

	names := map[string]string{}
	views := make([]*TaskView, 0, len(tasks))
	for _, task := range tasks {
		name, err := s.assigneeName(ctx, task.AssignedToID, names)
		if err != nil {
			return nil, err
		}
		views = append(views, &TaskView{Task: task, AssignedToName: name})
	}
	return views, nil
}

// Update applies the patch to a task of an owned project.
func (s *TaskService) Update(ctx context.Context, projectID, taskID, callerEmail string, patch TaskPatch) (*TaskView, error) {
	project, err := s.guard.OwnedProject(ctx, projectID, callerEmail)
	if err != nil {
		return nil, err
	}
	task, err := s.guard.ProjectTask(ctx, project, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.OrderIndex != nil {
		task.OrderIndex = *patch.OrderIndex
	}
	if patch.AssignedToID != nil {
		assignee, err := s.repomanager.Users(s.db).GetByID(ctx, *patch.AssignedToID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorUserNotFound
			}
			return nil, err
		}
		task.AssignedToID = assignee.ID
	}

	updated, err := s.repomanager.Tasks(s.db).Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return s.toView(ctx, updated)
}

// Delete removes a task of an owned project.
func (s *TaskService) Delete(ctx context.Context, projectID, taskID, callerEmail string) error {
	project, err := s.guard.OwnedProject(ctx, projectID, callerEmail)
	if err != nil {
		return err
	}
	task, err := s.guard.ProjectTask(ctx, project, taskID)
	if err != nil {
		return err
	}
	if err := s.repomanager.Tasks(s.db).Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}

func (s *TaskService) toView(ctx context.Context, task *models.Task) (*TaskView, error) {
	name, err := s.assigneeName(ctx, task.AssignedToID, map[string]string{})
	if err != nil {
		return nil, err
	}
	return &TaskView{Task: task, AssignedToName: name}, nil
}

func (s *TaskService) assigneeName(ctx context.Context, userID string, cache map[string]string) (string, error) {
	if userID == "" {
		return "", nil
	}
	if name, ok := cache[userID]; ok {
		return name, nil
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		// an assignee deleted after the fact is not an error worth failing a read
		if errors.Is(err, common.ErrorNotFound) {
			cache[userID] = ""
			return "", nil
		}
		return "", err
	}
	cache[userID] = user.Name
	return user.Name, nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/growject/growject/internal/server/models"
	"github.com/growject/growject/internal/server/repositories/repomanager"
)

// ProjectStats summarizes a project's kanban board.
// CompletionPercentage is 0.0..100.0 and is 0.0 for an empty board.
type ProjectStats struct {
	ProjectID            string
	TotalTasks           int
	TodoCount            int
	InProgressCount      int
	DoneCount            int
	CompletionPercentage float64
}

// DashboardService computes per-project progress statistics, owner-only.
type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	guard       *OwnershipGuard
}

func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager, guard *OwnershipGuard) *DashboardService {
	return &DashboardService{db: db, repomanager: m, guard: guard}
}

// Stats counts the project's tasks by status. The guard runs first, so a
// non-owner gets ErrorForbidden before any task data is read.
func (s *DashboardService) Stats(ctx context.Context, projectID, callerEmail string) (*ProjectStats, error) {
	project, err := s.guard.OwnedProject(ctx, projectID, callerEmail)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repomanager.Tasks(s.db).ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	stats := &ProjectStats{ProjectID: project.ID, TotalTasks: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskToDo:
			stats.TodoCount++
		case models.TaskInProgress:
			stats.InProgressCount++
		case models.TaskDone:
			stats.DoneCount++
		}
	}

	if stats.TotalTasks > 0 {
		pct := float64(stats.DoneCount) / float64(stats.TotalTasks) * 100.0
		// two decimals, matching what the frontend renders
		stats.CompletionPercentage = math.Round(pct*100) / 100
	}

	return stats, nil
}

package models

import "time"

type TaskStatus string

const (
	TaskToDo       TaskStatus = "TO_DO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// Task belongs to a project (immutable link) and optionally carries an
// assignee; when none is given at creation the project owner is assigned.
// OrderIndex drives the kanban column ordering.
type Task struct {
	ID           string
	ProjectID    string
	Title        string
	Description  string
	Status       TaskStatus
	OrderIndex   int
	AssignedToID string
	CreatedAt    time.Time
}

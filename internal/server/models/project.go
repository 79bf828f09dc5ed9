package models

import "time"

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "DRAFT"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectArchived  ProjectStatus = "ARCHIVED"
)

// Project is owned by exactly one user. OwnerID is set at creation and never
// reassigned; every read or mutation must pass the ownership guard first.
type Project struct {
	ID          string
	Name        string
	Description string
	Objectives  string
	Stacks      []string
	OwnerID     string
	Status      ProjectStatus
	CreatedAt   time.Time
}

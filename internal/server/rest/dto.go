package rest

import (
	"time"

	"github.com/growject/growject/internal/server/models"
	"github.com/growject/growject/internal/server/services"
)

// --- requests ---

type registerRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Bio      string   `json:"bio,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	Name   *string                `json:"name"`
	Bio    *string                `json:"bio"`
	Skills []string               `json:"skills"`
	Level  *models.DeveloperLevel `json:"level"`
}

type projectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Objectives  *string               `json:"objectives"`
	Stacks      []string              `json:"stacks"`
	Status      *models.ProjectStatus `json:"status"`
}

type taskRequest struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	Status         *models.TaskStatus `json:"status"`
	OrderIndex     *int               `json:"orderIndex"`
	AssignedUserID *string            `json:"assignedUserId"`
}

// --- responses ---

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Skills    []string `json:"skills"`
	Level     string   `json:"level"`
}

type ownerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type projectResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Objectives  string        `json:"objectives,omitempty"`
	Stacks      []string      `json:"stacks"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	Owner       ownerResponse `json:"owner"`
}

type projectSummaryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	OwnerName string    `json:"ownerName"`
}

type taskResponse struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"projectId"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Status           string    `json:"status"`
	OrderIndex       int       `json:"orderIndex"`
	CreatedAt        time.Time `json:"createdAt"`
	AssignedUserID   string    `json:"assignedUserId,omitempty"`
	AssignedUserName string    `json:"assignedUserName,omitempty"`
}

type projectStatsResponse struct {
	ProjectID            string  `json:"projectId"`
	TotalTasks           int     `json:"totalTasks"`
	TodoCount            int     `json:"todoCount"`
	InProgressCount      int     `json:"inProgressCount"`
	DoneCount            int     `json:"doneCount"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type downloadURLResponse struct {
	URL string `json:"url"`
}

// --- mappers ---

func toUserResponse(u *models.User, avatarURL string) userResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		AvatarURL: avatarURL,
		Skills:    skills,
		Level:     string(u.Level),
	}
}

func toProjectResponse(p *models.Project, owner *models.User) projectResponse {
	stacks := p.Stacks
	if stacks == nil {
		stacks = []string{}
	}
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Objectives:  p.Objectives,
		Stacks:      stacks,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		Owner:       ownerResponse{ID: owner.ID, Name: owner.Name, Email: owner.Email},
	}
}

func toProjectSummaryResponse(p *models.Project, ownerName string) projectSummaryResponse {
	return projectSummaryResponse{
		ID:        p.ID,
		Name:      p.Name,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		OwnerName: ownerName,
	}
}

func toTaskResponse(v *services.TaskView) taskResponse {
	return taskResponse{
		ID:               v.ID,
		ProjectID:        v.ProjectID,
		Title:            v.Title,
		Description:      v.Description,
		Status:           string(v.Status),
		OrderIndex:       v.OrderIndex,
		CreatedAt:        v.CreatedAt,
		AssignedUserID:   v.AssignedToID,
		AssignedUserName: v.AssignedToName,
	}
}

func toProjectStatsResponse(s *services.ProjectStats) projectStatsResponse {
	return projectStatsResponse{
		ProjectID:            s.ProjectID,
		TotalTasks:           s.TotalTasks,
		TodoCount:            s.TodoCount,
		InProgressCount:      s.InProgressCount,
		DoneCount:            s.DoneCount,
		CompletionPercentage: s.CompletionPercentage,
	}
}

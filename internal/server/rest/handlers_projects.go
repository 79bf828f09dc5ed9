package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/growject/growject/internal/server/services"
)

func (s *RESTServer) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req projectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == nil || *req.Name == "" {
		writeErrorMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	draft := services.ProjectDraft{Name: *req.Name, Stacks: req.Stacks}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.Objectives != nil {
		draft.Objectives = *req.Objectives
	}

	project, err := s.projects.Create(r.Context(), caller.User.Email, draft)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project, caller.User))
}

func (s *RESTServer) handleListProjects(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	list, err := s.projects.List(r.Context(), caller.User.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := make([]projectSummaryResponse, 0, len(list))
	for _, p := range list {
		result = append(result, toProjectSummaryResponse(p, caller.User.Name))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *RESTServer) handleGetProject(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	project, err := s.projects.Get(r.Context(), chi.URLParam(r, "projectID"), caller.User.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// only the owner gets this far, so the caller is the owner
	writeJSON(w, http.StatusOK, toProjectResponse(project, caller.User))
}

func (s *RESTServer) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req projectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := s.projects.Update(r.Context(), chi.URLParam(r, "projectID"), caller.User.Email, services.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Objectives:  req.Objectives,
		Stacks:      req.Stacks,
		Status:      req.Status,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project, caller.User))
}

func (s *RESTServer) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	if err := s.projects.Delete(r.Context(), chi.URLParam(r, "projectID"), caller.User.Email); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

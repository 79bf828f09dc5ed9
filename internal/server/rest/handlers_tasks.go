package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/growject/growject/internal/server/services"
)

func (s *RESTServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req taskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == nil || *req.Title == "" {
		writeErrorMessage(w, http.StatusBadRequest, "title is required")
		return
	}

	draft := services.TaskDraft{
		Title:        *req.Title,
		Status:       req.Status,
		OrderIndex:   req.OrderIndex,
		AssignedToID: req.AssignedUserID,
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}

	task, err := s.tasks.Create(r.Context(), chi.URLParam(r, "projectID"), caller.User.Email, draft)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *RESTServer) handleListTasks(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	list, err := s.tasks.ListByProject(r.Context(), chi.URLParam(r, "projectID"), caller.User.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := make([]taskResponse, 0, len(list))
	for _, v := range list {
		result = append(result, toTaskResponse(v))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *RESTServer) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req taskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := s.tasks.Update(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID"), caller.User.Email, services.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		OrderIndex:   req.OrderIndex,
		AssignedToID: req.AssignedUserID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *RESTServer) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	if err := s.tasks.Delete(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID"), caller.User.Email); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

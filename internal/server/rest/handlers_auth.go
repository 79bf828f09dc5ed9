package rest

import (
	"net/http"

	"github.com/growject/growject/internal/server/services"
)

func (s *RESTServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeErrorMessage(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	s.logger.Info(r.Context(), "Registration request")

	token, err := s.auth.Register(r.Context(), services.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Skills:   req.Skills,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", req.Email)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *RESTServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

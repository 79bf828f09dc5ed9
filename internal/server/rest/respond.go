package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/growject/growject/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps the service error taxonomy onto HTTP statuses. Unknown
// errors become a generic 500; their details are for the log, not the client.
func (s *RESTServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorEmailTaken):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorInvalidToken), errors.Is(err, common.ErrorTokenExpired):
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		writeErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUserNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrorValidation):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

package rest

import (
	"net/http"

	"github.com/growject/growject/internal/server/models"
	"github.com/growject/growject/internal/server/services"
)

func (s *RESTServer) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	user, err := s.users.Profile(r.Context(), caller.User.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user, s.avatarURL(r, user)))
}

func (s *RESTServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req profileUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), caller.User.Email, services.ProfileUpdate{
		Name:   req.Name,
		Bio:    req.Bio,
		Skills: req.Skills,
		Level:  req.Level,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user, s.avatarURL(r, user)))
}

func (s *RESTServer) handleAvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	key, url, err := s.avatars.UploadURL(r.Context(), caller.User.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// the client uploads to url, then the key is what we keep
	if _, err := s.users.SetAvatarKey(r.Context(), caller.User.Email, key); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadURLResponse{Key: key, URL: url})
}

func (s *RESTServer) handleAvatarDownloadURL(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	if caller.User.AvatarKey == "" {
		writeErrorMessage(w, http.StatusNotFound, "no avatar uploaded")
		return
	}

	url, err := s.avatars.DownloadURL(r.Context(), caller.User.AvatarKey)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, downloadURLResponse{URL: url})
}

// avatarURL resolves a presigned download URL for profile responses. A
// presign failure degrades to an empty URL rather than failing the profile
// read.
func (s *RESTServer) avatarURL(r *http.Request, user *models.User) string {
	if user.AvatarKey == "" {
		return ""
	}
	url, err := s.avatars.DownloadURL(r.Context(), user.AvatarKey)
	if err != nil {
		s.logger.Warn(r.Context(), "avatar presign failed", "error", err.Error())
		return ""
	}
	return url
}

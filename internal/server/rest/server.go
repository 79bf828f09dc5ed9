package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/growject/growject/internal/logging"
	"github.com/growject/growject/internal/server/services"
)

type RESTServer struct {
	address   string
	logger    logging.Logger
	jwtSecret []byte

	auth      *services.AuthService
	users     *services.UserService
	projects  *services.ProjectService
	tasks     *services.TaskService
	dashboard *services.DashboardService
	avatars   *services.AvatarService
}

func NewRESTServer(
	address string,
	logger logging.Logger,
	secretKey string,
	auth *services.AuthService,
	users *services.UserService,
	projects *services.ProjectService,
	tasks *services.TaskService,
	dashboard *services.DashboardService,
	avatars *services.AvatarService,
) *RESTServer {
	return &RESTServer{
		address:   address,
		logger:    logger.With("module", "rest_server"),
		jwtSecret: []byte(secretKey),
		auth:      auth,
		users:     users,
		projects:  projects,
		tasks:     tasks,
		dashboard: dashboard,
		avatars:   avatars,
	}
}

// Router assembles the chi routing tree. Split out of Run so tests can mount
// the full tree on httptest.Server.
func (s *RESTServer) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.identityResolver)

	r.Get("/ping", s.handlePing)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/user/profile", s.handleGetProfile)
			r.Put("/user/profile", s.handleUpdateProfile)
			r.Post("/user/avatar/upload-url", s.handleAvatarUploadURL)
			r.Get("/user/avatar/download-url", s.handleAvatarDownloadURL)

			r.Post("/projects", s.handleCreateProject)
			r.Get("/projects", s.handleListProjects)
			r.Get("/projects/{projectID}", s.handleGetProject)
			r.Put("/projects/{projectID}", s.handleUpdateProject)
			r.Delete("/projects/{projectID}", s.handleDeleteProject)

			r.Post("/projects/{projectID}/tasks", s.handleCreateTask)
			r.Get("/projects/{projectID}/tasks", s.handleListTasks)
			r.Put("/projects/{projectID}/tasks/{taskID}", s.handleUpdateTask)
			r.Delete("/projects/{projectID}/tasks/{taskID}", s.handleDeleteTask)

			r.Get("/dashboard/projects/{projectID}/stats", s.handleProjectStats)
		})
	})

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *RESTServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *RESTServer) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

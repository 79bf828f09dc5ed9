package rest

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/growject/growject/internal/common"
	"github.com/growject/growject/internal/dbx"
	"github.com/growject/growject/internal/logging"
	"github.com/growject/growject/internal/server/config"
	"github.com/growject/growject/internal/server/models"
	projectsrepo "github.com/growject/growject/internal/server/repositories/projects"
	tasksrepo "github.com/growject/growject/internal/server/repositories/tasks"
	usersrepo "github.com/growject/growject/internal/server/repositories/users"
	"github.com/growject/growject/internal/server/services"
)

const testSecret = "test-secret"

// stubStore backs the router tests with map-based repositories. The tests
// drive everything through HTTP, so plain maps are enough.
type stubStore struct {
	users    map[string]*models.User
	projects map[string]*models.Project
	tasks    map[string]*models.Task
}

func newStubStore() *stubStore {
	return &stubStore{
		users:    map[string]*models.User{},
		projects: map[string]*models.Project{},
		tasks:    map[string]*models.Task{},
	}
}

func (s *stubStore) RunMigrations(context.Context, *sql.DB) error { return nil }

func (s *stubStore) Users(dbx.DBTX) usersrepo.Repository { return (*stubUsers)(s) }

func (s *stubStore) Projects(dbx.DBTX) projectsrepo.Repository { return (*stubProjects)(s) }

func (s *stubStore) Tasks(dbx.DBTX) tasksrepo.Repository { return (*stubTasks)(s) }

type stubUsers stubStore

func (s *stubUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	s.users[u.ID] = &cp
	return u, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (s *stubUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

func (s *stubUsers) Update(_ context.Context, u *models.User) (*models.User, error) {
	if _, ok := s.users[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return u, nil
}

type stubProjects stubStore

func (s *stubProjects) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	s.projects[p.ID] = &cp
	return p, nil
}

func (s *stubProjects) GetByID(_ context.Context, id string) (*models.Project, error) {
	if p, ok := s.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (s *stubProjects) ListByOwner(_ context.Context, ownerID string) ([]*models.Project, error) {
	var result []*models.Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *stubProjects) Update(_ context.Context, p *models.Project) (*models.Project, error) {
	if _, ok := s.projects[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	s.projects[p.ID] = &cp
	return p, nil
}

func (s *stubProjects) Delete(_ context.Context, id string) error {
	if _, ok := s.projects[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.projects, id)
	return nil
}

type stubTasks stubStore

func (s *stubTasks) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	s.tasks[t.ID] = &cp
	return t, nil
}

func (s *stubTasks) GetByID(_ context.Context, id string) (*models.Task, error) {
	if t, ok := s.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (s *stubTasks) ListByProject(_ context.Context, projectID string) ([]*models.Task, error) {
	var result []*models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			cp := *t
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderIndex < result[j].OrderIndex })
	return result, nil
}

func (s *stubTasks) Update(_ context.Context, t *models.Task) (*models.Task, error) {
	if _, ok := s.tasks[t.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	s.tasks[t.ID] = &cp
	return t, nil
}

func (s *stubTasks) Delete(_ context.Context, id string) error {
	if _, ok := s.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.tasks, id)
	return nil
}

// newTestServer wires the full service stack over the stub store and returns
// the assembled router. The sqlite handle only backs dbx.WithTx; the stub
// repositories ignore it.
func newTestServer(t *testing.T) (*RESTServer, *stubStore) {
	t.Helper()

	store := newStubStore()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	guard := services.NewOwnershipGuard(db, store)

	srv := NewRESTServer(
		"",
		logger,
		testSecret,
		services.NewAuthService(db, store, cfg),
		services.NewUserService(db, store),
		services.NewProjectService(db, store, guard),
		services.NewTaskService(db, store, guard),
		services.NewDashboardService(db, store, guard),
		services.NewAvatarService(cfg),
	)
	return srv, store
}

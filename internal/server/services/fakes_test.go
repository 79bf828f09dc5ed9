package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/growject/growject/internal/common"
	"github.com/growject/growject/internal/dbx"
	"github.com/growject/growject/internal/server/models"
	projectsrepo "github.com/growject/growject/internal/server/repositories/projects"
	tasksrepo "github.com/growject/growject/internal/server/repositories/tasks"
	usersrepo "github.com/growject/growject/internal/server/repositories/users"
)

// newTestDB returns an in-memory database. The fakes ignore the handle, but
// services that wrap their work in dbx.WithTx still need real transactions.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// --- in-memory repositories shared by the service tests ---

type memUsersRepo struct {
	mu   sync.Mutex
	byID map[string]*models.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byID: map[string]*models.User{}}
}

func (f *memUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *memUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *memUsersRepo) Update(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *memUsersRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type memProjectsRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Project
}

func newMemProjectsRepo() *memProjectsRepo {
	return &memProjectsRepo{byID: map[string]*models.Project{}}
}

func (f *memProjectsRepo) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	f.byID[p.ID] = &cp
	return p, nil
}

func (f *memProjectsRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *memProjectsRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Project
	for _, p := range f.byID {
		if p.OwnerID == ownerID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *memProjectsRepo) Update(_ context.Context, p *models.Project) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return p, nil
}

func (f *memProjectsRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type memTasksRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Task
}

func newMemTasksRepo() *memTasksRepo {
	return &memTasksRepo{byID: map[string]*models.Task{}}
}

func (f *memTasksRepo) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	f.byID[t.ID] = &cp
	return t, nil
}

func (f *memTasksRepo) GetByID(_ context.Context, id string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.byID[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *memTasksRepo) ListByProject(_ context.Context, projectID string) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Task
	for _, t := range f.byID {
		if t.ProjectID == projectID {
			cp := *t
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderIndex < result[j].OrderIndex })
	return result, nil
}

func (f *memTasksRepo) Update(_ context.Context, t *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[t.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	f.byID[t.ID] = &cp
	return t, nil
}

func (f *memTasksRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeRepoManager vends the in-memory repositories regardless of the DBTX.
type fakeRepoManager struct {
	users    *memUsersRepo
	projects *memProjectsRepo
	tasks    *memTasksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    newMemUsersRepo(),
		projects: newMemProjectsRepo(),
		tasks:    newMemTasksRepo(),
	}
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return f.users }

func (f *fakeRepoManager) Projects(dbx.DBTX) projectsrepo.Repository { return f.projects }

func (f *fakeRepoManager) Tasks(dbx.DBTX) tasksrepo.Repository { return f.tasks }

package repomanager

import (
	"context"
	"database/sql"

	"github.com/growject/growject/internal/dbx"
	"github.com/growject/growject/internal/server/repositories/projects"
	"github.com/growject/growject/internal/server/repositories/tasks"
	"github.com/growject/growject/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}

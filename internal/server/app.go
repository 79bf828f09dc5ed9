// Package server initializes and runs the application server: configuration,
// database and migrations, the service layer and the public HTTP endpoint,
// with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/growject/growject/internal/logging"
	"github.com/growject/growject/internal/server/config"
	"github.com/growject/growject/internal/server/repositories/repomanager"
	"github.com/growject/growject/internal/server/rest"
	"github.com/growject/growject/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	authService      *services.AuthService
	userService      *services.UserService
	projectService   *services.ProjectService
	taskService      *services.TaskService
	dashboardService *services.DashboardService
	avatarService    *services.AvatarService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	guard := services.NewOwnershipGuard(db, rm)

	return &App{
		config:           cfg,
		logger:           logger,
		db:               db,
		authService:      services.NewAuthService(db, rm, cfg),
		userService:      services.NewUserService(db, rm),
		projectService:   services.NewProjectService(db, rm, guard),
		taskService:      services.NewTaskService(db, rm, guard),
		dashboardService: services.NewDashboardService(db, rm, guard),
		avatarService:    services.NewAvatarService(cfg),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewRESTServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.config.SecretKey,
		app.authService,
		app.userService,
		app.projectService,
		app.taskService,
		app.dashboardService,
		app.avatarService,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}

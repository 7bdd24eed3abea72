// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/infra/config"
	"github.com/runoshun/tasklist/internal/infra/cookiejar"
	"github.com/runoshun/tasklist/internal/infra/gitstore"
	"github.com/runoshun/tasklist/internal/infra/logging"
	"github.com/runoshun/tasklist/internal/infra/sqlitestore"
	"github.com/runoshun/tasklist/internal/taskstore"
	"github.com/runoshun/tasklist/internal/usecase"
)

// Options holds startup parameters that are not part of the config file.
type Options struct {
	ConfigPath string // --config override file (optional)
}

// Container provides dependency injection for the application.
// It holds the single task store and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	OpLog         domain.Logger

	// Pointer fields
	Store     *taskstore.Store
	Logger    *slog.Logger
	AppConfig *domain.Config

	closers []io.Closer
}

// New loads the configuration, opens the configured slot backend and loads
// the task store from it.
func New(opts Options) (*Container, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	configLoader := config.NewLoader(opts.ConfigPath)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}
	for _, w := range appConfig.Warnings {
		logger.Warn("config", "warning", w)
	}

	clock := domain.RealClock{}
	c := &Container{
		Clock:         clock,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(opts.ConfigPath),
		Logger:        logger,
		AppConfig:     appConfig,
	}

	fileLog := logging.New(appConfig.Store.DataDir, logging.ParseLevel(appConfig.Log.Level),
		logging.WithMirror(logger))
	c.OpLog = fileLog
	c.closers = append(c.closers, fileLog)

	slot, closer, err := openSlot(appConfig, clock)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	fileLog.Debug(0, "app", fmt.Sprintf("using %s store", appConfig.Store.Backend))

	c.Store = taskstore.New(slot,
		taskstore.WithClock(clock),
		taskstore.WithLogger(fileLog),
		taskstore.WithKey(appConfig.Store.Key),
		taskstore.WithSlotOptions(appConfig.SlotOptions()),
		taskstore.WithFilter(appConfig.DefaultFilter()),
	)
	return c, nil
}

// openSlot creates the slot backend selected by store.backend.
// The returned closer is nil when the backend holds no resources.
func openSlot(cfg *domain.Config, clock domain.Clock) (domain.Slot, io.Closer, error) {
	switch cfg.Store.Backend {
	case domain.BackendCookie:
		return cookiejar.New(domain.CookieJarPath(cfg.Store.DataDir), cookiejar.WithClock(clock)), nil, nil
	case domain.BackendSQLite:
		s, err := sqlitestore.Open(domain.SQLitePath(cfg.Store.DataDir), sqlitestore.WithClock(clock))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case domain.BackendGit:
		s, err := gitstore.New(cfg.Store.GitRepo, gitstore.WithClock(clock))
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidBackend, cfg.Store.Backend)
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, store *taskstore.Store, clock domain.Clock, configManager domain.ConfigManager, logger *slog.Logger) *Container {
	return &Container{
		Clock:         clock,
		ConfigManager: configManager,
		OpLog:         domain.NopLogger{},
		Store:         store,
		Logger:        logger,
		AppConfig:     cfg,
	}
}

// Close releases the slot backend and the log file.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Store)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Store)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Store)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store)
}

// ShowStatsUseCase returns a new ShowStats use case.
func (c *Container) ShowStatsUseCase() *usecase.ShowStats {
	return usecase.NewShowStats(c.Store)
}

// ClearCompletedUseCase returns a new ClearCompleted use case.
func (c *Container) ClearCompletedUseCase() *usecase.ClearCompleted {
	return usecase.NewClearCompleted(c.Store)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store, c.Clock)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

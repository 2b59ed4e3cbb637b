// Package app wires the planner client: local store, API client, services,
// the cascade bus and the state stores.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/remote"
	"github.com/taskmaster/planner/internal/application/cascade"
	"github.com/taskmaster/planner/internal/application/reminders"
	"github.com/taskmaster/planner/internal/application/services"
	"github.com/taskmaster/planner/internal/application/stores"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/database"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/probe"
	"github.com/taskmaster/planner/internal/ports"
)

// App is the planner client
type App struct {
	Config *config.Config
	Logger *logger.Logger

	db    *database.DB
	Local *localstore.Store

	Bus           *cascade.Bus
	Auth          *services.AuthService
	Tasks         *services.TaskService
	Events        *services.EventService
	Categories    *services.CategoryService
	Classes       *services.ClassService
	Stats         *services.StatsService
	Notifications *services.NotificationService
	Telegram      *services.TelegramService
	AI            *services.AiService

	TaskStore     *stores.TaskStore
	EventStore    *stores.EventStore
	ScheduleStore *stores.ScheduleStore
}

// New opens the local store and wires every service
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if dir := filepath.Dir(cfg.Client.LocalStorePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create local store directory: %w", err)
		}
	}

	db, err := database.OpenSQLite(cfg.Client.LocalStorePath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate("up"); err != nil {
		db.Close()
		return nil, err
	}

	local := localstore.New(localstore.NewSQLStore(db), log)
	a := wire(ctx, cfg, log, local, prober(cfg))
	a.db = db
	return a, nil
}

// NewWithStore wires the services over an existing key/value store and prober
func NewWithStore(ctx context.Context, cfg *config.Config, log *logger.Logger, kv ports.KeyValueStore, p probe.Prober) *App {
	return wire(ctx, cfg, log, localstore.New(kv, log), p)
}

func prober(cfg *config.Config) probe.Prober {
	if cfg.Client.Offline {
		return probe.Static(false)
	}
	return probe.NewHTTP(cfg.Client.APIURL, cfg.Client.ProbeTimeout)
}

func wire(ctx context.Context, cfg *config.Config, log *logger.Logger, local *localstore.Store, p probe.Prober) *App {
	deps := services.Deps{
		Client: remote.New(cfg.Client.APIURL, cfg.Client.RequestTimeout, local, log),
		Local:  local,
		Prober: p,
		Logger: log,
	}

	a := &App{
		Config: cfg,
		Logger: log,
		Local:  local,
		Bus:    cascade.NewBus(log),
	}

	a.Auth = services.NewAuthService(deps)
	a.Tasks = services.NewTaskService(ctx, deps, a.Bus)
	a.Events = services.NewEventService(ctx, deps)
	a.Categories = services.NewCategoryService(ctx, deps)
	a.Classes = services.NewClassService(ctx, deps)
	a.Stats = services.NewStatsService(deps)
	a.Telegram = services.NewTelegramService(deps)
	a.Notifications = services.NewNotificationService(ctx, deps, a.Telegram)
	a.AI = services.NewAiService(ctx, deps)

	cascade.Register(a.Bus, a.Stats, a.Events)

	a.TaskStore = stores.NewTaskStore(a.Tasks)
	a.EventStore = stores.NewEventStore(a.Events)
	a.ScheduleStore = stores.NewScheduleStore(a.Classes, a.Categories)

	return a
}

// User returns the signed-in user, or the configured user when nobody signed in
func (a *App) User(ctx context.Context) entities.User {
	if user, ok := a.Auth.SessionUser(ctx); ok {
		return user
	}
	return entities.User{ID: a.Config.Client.UserID, Email: a.Config.Client.Email}
}

// NotificationStore returns a notification store for the current user
func (a *App) NotificationStore(ctx context.Context) *stores.NotificationStore {
	return stores.NewNotificationStore(a.Notifications, a.Tasks, a.User(ctx))
}

// Scheduler returns a reminder scheduler for the current user
func (a *App) Scheduler(ctx context.Context, schedule string) (*reminders.Scheduler, error) {
	if schedule == "" {
		schedule = a.Config.Reminders.Schedule
	}
	return reminders.New(schedule, a.Tasks, a.Notifications, a.User(ctx), a.Logger)
}

// Close releases the local store
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

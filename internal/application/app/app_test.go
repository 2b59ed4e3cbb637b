package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/probe"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Client.Offline = true
	cfg.Client.LocalStorePath = filepath.Join(t.TempDir(), "local.db")
	cfg.Store.Path = filepath.Join(t.TempDir(), "db.json")
	return cfg
}

func TestOfflineAppPersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	task, err := a.Tasks.Create(ctx, entities.Task{Title: "Essay", DueDate: "2024-05-11", Priority: entities.PriorityHigh})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := a.Tasks.CompleteTask(ctx, task.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	a.Close()

	reopened, err := New(ctx, cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	tasks, err := reopened.Tasks.GetAll(ctx)
	if err != nil || len(tasks) != 1 || !tasks[0].Completed {
		t.Fatalf("expected the completed task after restart, got %+v (%v)", tasks, err)
	}
	stats, err := reopened.Stats.Get(ctx)
	if err != nil || stats.CompletedToday != 1 {
		t.Fatalf("expected the completion in stats, got %+v (%v)", stats, err)
	}
	if _, found, _ := reopened.Events.FindByExternalID(ctx, task.ExternalID()); !found {
		t.Fatal("expected the mirrored event after restart")
	}

	next, err := reopened.Tasks.Create(ctx, entities.Task{Title: "Lab"})
	if err != nil {
		t.Fatalf("create after restart: %v", err)
	}
	if next.ID <= task.ID {
		t.Fatalf("ids must not be reused: %d after %d", next.ID, task.ID)
	}
}

func TestUserDefaultsToConfig(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Client.UserID = 7
	cfg.Client.Email = "me@example.com"

	a := NewWithStore(ctx, cfg, logger.NewNop(), localstore.NewMemory(), probe.Static(false))
	if got := a.User(ctx); got.ID != 7 || got.Email != "me@example.com" {
		t.Fatalf("unexpected user %+v", got)
	}

	localstore.Save(ctx, a.Local, localstore.KeyUser, entities.User{ID: 3, Email: "session@example.com"})
	if got := a.User(ctx); got.ID != 3 {
		t.Fatalf("expected the session user, got %+v", got)
	}
}

func TestSchedulerUsesConfiguredSchedule(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	a := NewWithStore(ctx, cfg, logger.NewNop(), localstore.NewMemory(), probe.Static(false))

	if _, err := a.Scheduler(ctx, ""); err != nil {
		t.Fatalf("default schedule rejected: %v", err)
	}
	if _, err := a.Scheduler(ctx, "not a schedule"); err == nil {
		t.Fatal("expected an invalid schedule error")
	}
}

func TestOpenDocumentFileStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	doc, closeFn, err := OpenDocument(ctx, cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()

	user, err := doc.Object("user")
	if err != nil || user["email"] != cfg.Demo.Email {
		t.Fatalf("expected the seeded demo user, got %v (%v)", user, err)
	}

	cfg.Store.Driver = "mongo"
	if _, _, err := OpenDocument(ctx, cfg, logger.NewNop()); err == nil {
		t.Fatal("expected unknown driver error")
	}
}

package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/application/cascade"
	"github.com/taskmaster/planner/internal/application/services"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/probe"
)

func newServices(t *testing.T) (*services.TaskService, *services.NotificationService) {
	t.Helper()
	ctx := context.Background()

	deps := services.Deps{
		Local:  localstore.New(localstore.NewMemory(), logger.NewNop()),
		Prober: probe.Static(false),
		Logger: logger.NewNop(),
	}
	return services.NewTaskService(ctx, deps, cascade.NewBus(deps.Logger)), services.NewNotificationService(ctx, deps, nil)
}

func TestRejectsInvalidSchedule(t *testing.T) {
	tasks, notifications := newServices(t)

	if _, err := New("every morning", tasks, notifications, entities.User{ID: 1}, logger.NewNop()); err == nil {
		t.Fatal("expected invalid schedule error")
	}
}

func TestRunOnce(t *testing.T) {
	tasks, notifications := newServices(t)

	s, err := New("0 8 * * *", tasks, notifications, entities.User{ID: 1, Email: "user@example.com"}, logger.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	created, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(created) != 1 || created[0].Type != entities.NotificationInfo {
		t.Fatalf("expected one info notification for an empty task list, got %+v", created)
	}
	if s.Runs() != 1 {
		t.Fatalf("expected one run, got %d", s.Runs())
	}

	next := s.Next()
	if !next.IsZero() {
		t.Fatalf("next run is only known after start, got %s", next)
	}
}

func TestStartStopsWithContext(t *testing.T) {
	tasks, notifications := newServices(t)
	s, err := New("@every 10ms", tasks, notifications, entities.User{ID: 1}, logger.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for s.Runs() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if s.Runs() == 0 {
		t.Fatal("scheduler never ran the sweep")
	}
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/application/cascade"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/probe"
)

// fixedNow is a Friday afternoon
var fixedNow = time.Date(2024, time.May, 10, 15, 30, 0, 0, time.Local)

func offlineDeps(t *testing.T) Deps {
	t.Helper()
	return Deps{
		Local:  localstore.New(localstore.NewMemory(), logger.NewNop()),
		Prober: probe.Static(false),
		Logger: logger.NewNop(),
		Clock:  func() time.Time { return fixedNow },
	}
}

type planner struct {
	tasks  *TaskService
	events *EventService
	stats  *StatsService
}

func newPlanner(t *testing.T, deps Deps) planner {
	t.Helper()
	ctx := context.Background()

	bus := cascade.NewBus(deps.Logger)
	p := planner{
		tasks:  NewTaskService(ctx, deps, bus),
		events: NewEventService(ctx, deps),
		stats:  NewStatsService(deps),
	}
	cascade.Register(bus, p.stats, p.events)
	return p
}

func day(offset int) string {
	return fixedNow.AddDate(0, 0, offset).Format("2006-01-02")
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/taskmaster/planner/internal/domain/entities"
)

func TestTaskSequenceNeverReusesIDs(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t, offlineDeps(t))

	for _, title := range []string{"Essay", "Lab", "Reading"} {
		if _, err := p.tasks.Create(ctx, entities.Task{Title: title, DueDate: day(3)}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	if err := p.tasks.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.tasks.UpdateProgress(ctx, 3, 40); err != nil {
		t.Fatalf("update progress: %v", err)
	}
	created, err := p.tasks.Create(ctx, entities.Task{Title: "Slides", DueDate: day(4)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 4 {
		t.Fatalf("expected id 4, got %d", created.ID)
	}

	all, err := p.tasks.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	want := []struct {
		id       int
		title    string
		progress int
	}{{1, "Essay", 0}, {3, "Reading", 40}, {4, "Slides", 0}}
	if len(all) != len(want) {
		t.Fatalf("expected %d tasks, got %+v", len(want), all)
	}
	for i, w := range want {
		if all[i].ID != w.id || all[i].Title != w.title || all[i].Progress != w.progress {
			t.Fatalf("task %d = %+v, want %+v", i, all[i], w)
		}
	}

	if !p.tasks.UsingLocal() {
		t.Fatal("offline service should report local mode")
	}
}

func TestCompletionTogglesStatsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t, offlineDeps(t))

	if _, err := p.stats.Update(ctx, entities.Patch{"activeTasks": 5, "urgentTasks": 2, "completedToday": 0}); err != nil {
		t.Fatalf("seed stats: %v", err)
	}
	task, err := p.tasks.Create(ctx, entities.Task{Title: "Physics exam", Priority: entities.PriorityHigh, DueDate: day(1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	assertStats := func(active, urgent, done int) {
		t.Helper()
		s, err := p.stats.Get(ctx)
		if err != nil {
			t.Fatalf("get stats: %v", err)
		}
		if s.ActiveTasks != active || s.UrgentTasks != urgent || s.CompletedToday != done {
			t.Fatalf("stats = {%d %d %d}, want {%d %d %d}", s.ActiveTasks, s.UrgentTasks, s.CompletedToday, active, urgent, done)
		}
	}

	assertStats(5, 2, 0)

	if _, err := p.tasks.CompleteTask(ctx, task.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	assertStats(4, 1, 1)

	// setting the same value again is a no-op
	if _, err := p.tasks.CompleteTask(ctx, task.ID, true); err != nil {
		t.Fatalf("complete again: %v", err)
	}
	assertStats(4, 1, 1)

	if _, err := p.tasks.CompleteTask(ctx, task.ID, false); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	assertStats(5, 2, 0)
}

func TestLowPriorityCompletionKeepsUrgentCount(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t, offlineDeps(t))

	p.stats.Update(ctx, entities.Patch{"activeTasks": 3, "urgentTasks": 1})
	task, _ := p.tasks.Create(ctx, entities.Task{Title: "Laundry", Priority: entities.PriorityLow})

	p.tasks.CompleteTask(ctx, task.ID, true)

	s, _ := p.stats.Get(ctx)
	if s.ActiveTasks != 2 || s.UrgentTasks != 1 || s.CompletedToday != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestTaskMirrorsIntoExactlyOneEvent(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t, offlineDeps(t))

	other, err := p.events.Create(ctx, entities.Event{Title: "Concert", Date: day(2), Time: "19:00"})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	task, err := p.tasks.Create(ctx, entities.Task{Title: "Essay", DueDate: day(2), Priority: entities.PriorityHigh})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	events, _ := p.events.GetAll(ctx)
	mirrors := 0
	for _, e := range events {
		if e.ExternalID == task.ExternalID() {
			mirrors++
			if e.Title != "Essay" || e.Date != day(2) || e.Time != "09:00" || e.ColorClass != "bg-red-100 text-red-800" {
				t.Fatalf("unexpected mirror %+v", e)
			}
		}
	}
	if mirrors != 1 {
		t.Fatalf("expected exactly one mirror, got %d in %+v", mirrors, events)
	}

	if _, err := p.tasks.Update(ctx, task.ID, entities.Patch{"title": "Essay draft", "time": "11:00"}); err != nil {
		t.Fatalf("update task: %v", err)
	}
	mirror, found, _ := p.events.FindByExternalID(ctx, task.ExternalID())
	if !found || mirror.Title != "Essay draft" || mirror.Time != "11:00" {
		t.Fatalf("mirror not updated: %+v", mirror)
	}

	if err := p.tasks.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	events, _ = p.events.GetAll(ctx)
	if len(events) != 1 || events[0].ID != other.ID {
		t.Fatalf("delete must remove only the mirror, left %+v", events)
	}
}

func TestGetByIDMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	deps := offlineDeps(t)
	p := newPlanner(t, deps)
	categories := NewCategoryService(ctx, deps)

	if _, err := p.tasks.GetByID(ctx, 99); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("task: expected ErrNotFound, got %v", err)
	}
	if _, err := p.events.GetByID(ctx, 99); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("event: expected ErrNotFound, got %v", err)
	}
	if _, err := categories.GetByID(ctx, 99); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("category: expected ErrNotFound, got %v", err)
	}
	if _, err := p.tasks.Update(ctx, 99, entities.Patch{"title": "x"}); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := p.tasks.Delete(ctx, 99); err != nil {
		t.Fatalf("delete of absent id should be a no-op, got %v", err)
	}
}

func TestCategoryDefaults(t *testing.T) {
	ctx := context.Background()
	categories := NewCategoryService(ctx, offlineDeps(t))

	all, err := categories.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 6 || all[0].Name != "Study" {
		t.Fatalf("expected six default categories, got %+v", all)
	}

	created, err := categories.Create(ctx, entities.Category{Name: "Music", Color: "orange"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("expected id 7 after defaults, got %d", created.ID)
	}

	all, _ = categories.GetAll(ctx)
	if len(all) != 7 {
		t.Fatalf("expected defaults plus the new category, got %d", len(all))
	}
}

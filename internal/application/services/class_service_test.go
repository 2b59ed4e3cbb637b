package services

import (
	"context"
	"errors"
	"testing"

	"github.com/taskmaster/planner/internal/domain/entities"
)

func TestClassTimetableOffline(t *testing.T) {
	ctx := context.Background()
	classes := NewClassService(ctx, offlineDeps(t))

	for _, c := range []entities.Class{
		{Subject: "Physics", Day: "Monday", Time: "13:00 - 14:30", Type: "Lab"},
		{Subject: "Math", Day: "Monday", Time: "09:00 - 10:30", Type: "Lecture"},
		{Subject: "History", Day: "Wednesday", Time: "11:00 - 12:30", Type: "Seminar"},
	} {
		if _, err := classes.Create(ctx, c); err != nil {
			t.Fatalf("create %s: %v", c.Subject, err)
		}
	}

	monday, err := classes.GetByDay(ctx, "Monday")
	if err != nil {
		t.Fatalf("by day: %v", err)
	}
	if len(monday) != 2 || monday[0].Subject != "Math" || monday[1].Subject != "Physics" {
		t.Fatalf("expected Monday classes ordered by start time, got %+v", monday)
	}

	updated, err := classes.Update(ctx, monday[0].ID, entities.Patch{"location": "Room 101"})
	if err != nil || updated.Location != "Room 101" || updated.Subject != "Math" {
		t.Fatalf("update: %+v, %v", updated, err)
	}

	if err := classes.Delete(ctx, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := classes.GetByID(ctx, 3); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	next, _ := classes.Create(ctx, entities.Class{Subject: "Art", Day: "Friday", Time: "15:00 - 16:00"})
	if next.ID != 4 {
		t.Fatalf("deleted id must not be reused, got %d", next.ID)
	}
}

func TestClassesByDayOnline(t *testing.T) {
	ctx := context.Background()
	deps, _ := onlineDeps(t)
	classes := NewClassService(ctx, deps)

	classes.Create(ctx, entities.Class{Subject: "Chemistry", Day: "Thursday", Time: "10:00 - 11:30"})
	classes.Create(ctx, entities.Class{Subject: "Biology", Day: "Thursday", Time: "08:30 - 10:00"})
	classes.Create(ctx, entities.Class{Subject: "Music", Day: "Friday", Time: "12:00 - 13:00"})

	thursday, err := classes.GetByDay(ctx, "Thursday")
	if err != nil {
		t.Fatalf("by day: %v", err)
	}
	if len(thursday) != 2 || thursday[0].Subject != "Biology" {
		t.Fatalf("expected the API to filter by day, got %+v", thursday)
	}
}

func TestClassStartTime(t *testing.T) {
	tests := []struct {
		time string
		want string
	}{
		{"09:00 - 10:30", "09:00"},
		{"14:00", "14:00"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (entities.Class{Time: tt.time}).StartTime(); got != tt.want {
			t.Fatalf("StartTime(%q) = %q, want %q", tt.time, got, tt.want)
		}
	}
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

func openMemory(t *testing.T) (*Database, *MemoryPersister) {
	t.Helper()
	p := NewMemoryPersister()
	db, err := Open(context.Background(), p, DefaultDocument("user@example.com"), logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db, p
}

func TestOpenSeedsEmptyDocument(t *testing.T) {
	db, p := openMemory(t)

	if p.Saves() != 1 {
		t.Fatalf("expected the seed to be saved once, got %d", p.Saves())
	}
	user, err := db.Object(ResourceUser)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if user["email"] != "user@example.com" {
		t.Fatalf("unexpected user %v", user)
	}
	categories, err := db.List(ResourceCategories, nil)
	if err != nil || len(categories) != 6 {
		t.Fatalf("expected six categories, got %d (%v)", len(categories), err)
	}
	if classes, err := db.List(ResourceClasses, nil); err != nil || len(classes) != 0 {
		t.Fatalf("expected an empty class timetable, got %v (%v)", classes, err)
	}
}

func TestInsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	db, _ := openMemory(t)

	first, err := db.Insert(ctx, ResourceTasks, Record{"title": "Essay"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first["id"] != 1 {
		t.Fatalf("expected id 1, got %v", first["id"])
	}

	explicit, err := db.Insert(ctx, ResourceTasks, Record{"id": float64(40), "title": "Lab"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if explicit["id"] != 40 {
		t.Fatalf("expected body id to be kept, got %v", explicit["id"])
	}

	next, _ := db.Insert(ctx, ResourceTasks, Record{"title": "Reading"})
	if next["id"] != 41 {
		t.Fatalf("expected max+1, got %v", next["id"])
	}

	if _, err := db.Insert(ctx, ResourceTasks, Record{"id": 40, "title": "Duplicate"}); !errors.Is(err, entities.ErrConflict) {
		t.Fatalf("expected ErrConflict for a taken id, got %v", err)
	}
	items, _ := db.List(ResourceTasks, nil)
	if len(items) != 3 {
		t.Fatalf("rejected insert must not be stored, got %d records", len(items))
	}
}

func TestAppendIgnoresBodyID(t *testing.T) {
	ctx := context.Background()
	db, _ := openMemory(t)

	if _, err := db.Insert(ctx, ResourceNotifications, Record{"id": 1, "title": "Overdue"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var appended Record
	if err := db.Update(ctx, func(doc map[string]interface{}) error {
		appended = Append(doc, ResourceNotifications, Record{"id": 1, "title": "Email sent"})
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if appended["id"] != 2 {
		t.Fatalf("expected the next free id 2, got %v", appended["id"])
	}
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	db, _ := openMemory(t)

	db.Insert(ctx, ResourceNotifications, Record{"userId": 1, "isRead": false})
	db.Insert(ctx, ResourceNotifications, Record{"userId": 2, "isRead": false})
	db.Insert(ctx, ResourceNotifications, Record{"userId": 1, "isRead": true})

	tests := []struct {
		name   string
		filter ports.Filter
		want   int
	}{
		{"no filter", nil, 3},
		{"by user", ports.Filter{"userId": "1"}, 2},
		{"by user and flag", ports.Filter{"userId": "1", "isRead": "false"}, 1},
		{"control keys ignored", ports.Filter{"_sort": "id"}, 3},
		{"no match", ports.Filter{"userId": "9"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.List(ResourceNotifications, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d records, got %d", tt.want, len(got))
			}
		})
	}
}

func TestPatchKeepsID(t *testing.T) {
	ctx := context.Background()
	db, _ := openMemory(t)
	db.Insert(ctx, ResourceTasks, Record{"title": "Essay", "progress": 0})

	got, err := db.Patch(ctx, ResourceTasks, 1, Record{"id": 99, "progress": 50})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if got["id"] != 1 || got["progress"] != 50 || got["title"] != "Essay" {
		t.Fatalf("unexpected record %v", got)
	}
}

func TestMissingRecords(t *testing.T) {
	ctx := context.Background()
	db, _ := openMemory(t)

	if _, err := db.Get(ResourceTasks, 5); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := db.Delete(ctx, ResourceTasks, 5); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := db.List("widgets", nil); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected unknown collection to be not found, got %v", err)
	}
}

func TestFailedUpdateLeavesDocument(t *testing.T) {
	ctx := context.Background()
	db, p := openMemory(t)
	db.Insert(ctx, ResourceTasks, Record{"title": "Essay"})
	saves := p.Saves()

	boom := errors.New("boom")
	err := db.Update(ctx, func(doc map[string]interface{}) error {
		rec, err := Find(doc, ResourceTasks, 1)
		if err != nil {
			return err
		}
		rec["title"] = "changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := db.Get(ResourceTasks, 1)
	if got["title"] != "Essay" {
		t.Fatalf("document changed by failed update: %v", got)
	}
	if p.Saves() != saves {
		t.Fatal("failed update was persisted")
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	db, _ := openMemory(t)
	rec, _ := db.Insert(ctx, ResourceTasks, Record{"title": "Essay"})
	rec["title"] = "mutated"

	got, _ := db.Get(ResourceTasks, 1)
	if got["title"] != "Essay" {
		t.Fatalf("caller mutation leaked into document: %v", got)
	}
}

func TestFilePersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "db.json")

	db, err := Open(ctx, NewFilePersister(path), DefaultDocument("user@example.com"), logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Insert(ctx, ResourceTasks, Record{"title": "Essay"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var onDisk map[string]json.RawMessage
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("db.json is not a JSON object: %v", err)
	}

	reopened, err := Open(ctx, NewFilePersister(path), DefaultDocument("other@example.com"), logger.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	task, err := reopened.Get(ResourceTasks, 1)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if task["title"] != "Essay" {
		t.Fatalf("unexpected task %v", task)
	}
	user, _ := reopened.Object(ResourceUser)
	if user["email"] != "user@example.com" {
		t.Fatal("existing document was reseeded")
	}
}

func TestIDOf(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int
		ok   bool
	}{
		{3, 3, true},
		{float64(7), 7, true},
		{float64(7.5), 0, false},
		{json.Number("12"), 12, true},
		{"42", 42, true},
		{"abc", 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := IDOf(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("IDOf(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

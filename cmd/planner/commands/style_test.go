package commands

import (
	"strings"
	"testing"

	"github.com/taskmaster/planner/internal/domain/entities"
)

func TestRowPadsColumns(t *testing.T) {
	got := row([]int{4, 6}, "1", "high", "Read chapter 3")
	if !strings.HasPrefix(got, "1") || !strings.HasSuffix(got, "Read chapter 3") {
		t.Fatalf("unexpected row %q", got)
	}
	if idx := strings.Index(got, "high"); idx != 5 {
		t.Fatalf("second column starts at %d, want 5: %q", idx, got)
	}
}

func TestRenderTask(t *testing.T) {
	task := entities.Task{
		ID:       7,
		Title:    "Physics exam",
		DueDate:  "2026-10-20T00:00:00Z",
		Time:     "10:00",
		Priority: entities.PriorityHigh,
		Category: "Study",
		Progress: 40,
	}

	got := renderTask(task)
	for _, want := range []string{"7", "[ ]", "2026-10-20 10:00", "Study", "40%", "Physics exam"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered task %q misses %q", got, want)
		}
	}

	task.Completed = true
	if got := renderTask(task); !strings.Contains(got, "[x]") {
		t.Fatalf("completed task not checked: %q", got)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseID(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseID(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("parseID(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}

func TestIndent(t *testing.T) {
	if got := indent("a\nb", 2); got != "  a\n  b" {
		t.Fatalf("unexpected indent %q", got)
	}
}

func TestRenderClass(t *testing.T) {
	got := renderClass(entities.Class{ID: 3, Day: "Monday", Time: "09:00 - 10:30", Type: "Lecture", Location: "Room 101", Subject: "Math"}, "blue")
	for _, want := range []string{"3", "Monday", "09:00 - 10:30", "Lecture", "Room 101", "Math", "(blue)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered class %q misses %q", got, want)
		}
	}
}

package entities

import "testing"

func TestMergeOverlaysFields(t *testing.T) {
	task := Task{ID: 3, Title: "Essay", Priority: PriorityLow, Progress: 10}

	got, err := Merge(task, Patch{"progress": 60, "priority": "high"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got.Progress != 60 || got.Priority != PriorityHigh {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.ID != 3 || got.Title != "Essay" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if task.Progress != 10 {
		t.Fatal("merge must not modify its input")
	}
}

func TestMergeRejectsMistypedField(t *testing.T) {
	if _, err := Merge(Task{}, Patch{"progress": "lots"}); err == nil {
		t.Fatal("expected decode error for mistyped field")
	}
}

func TestMaxID(t *testing.T) {
	if got := MaxID([]Task{}); got != 0 {
		t.Fatalf("empty slice max id = %d", got)
	}
	if got := MaxID([]Task{{ID: 4}, {ID: 9}, {ID: 2}}); got != 9 {
		t.Fatalf("max id = %d, want 9", got)
	}
}

func TestSubjectCategory(t *testing.T) {
	c := Subject{ID: 2, Name: "Physics", Color: "blue"}.Category()
	if c.Description != "Category converted from subject 'Physics'" || c.ID != 2 {
		t.Fatalf("unexpected category %+v", c)
	}
}

func TestUserInitials(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"anna":          "A",
		"Ivan Petrov":   "IP",
		"мария иванова": "МИ",
	}
	for name, want := range tests {
		if got := (User{Name: name}).Initials(); got != want {
			t.Errorf("Initials(%q) = %q, want %q", name, got, want)
		}
	}
}

package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/taskmaster/planner/internal/domain/entities"
)

func TestWriteRoundTrip(t *testing.T) {
	x := NewExporter(time.UTC)
	x.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

	events := []entities.Event{
		{ID: 1, Title: "Exam", Type: "task", Date: "2024-05-11", Time: "09:30", ExternalID: "task-3"},
		{ID: 2, Title: "Holiday", Date: "2024-05-12T00:00:00Z"},
		{ID: 3, Title: "Broken", Date: "soon"},
	}

	var buf bytes.Buffer
	n, err := x.Write(&buf, events)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected two exported events, got %d", n)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	parsed := cal.Events()
	if len(parsed) != 2 {
		t.Fatalf("expected two VEVENTs, got %d", len(parsed))
	}

	exam := parsed[0]
	if got := exam.GetProperty(ical.ComponentPropertyUniqueId).Value; got != "task-3@planner" {
		t.Fatalf("unexpected uid %q", got)
	}
	if got := exam.GetProperty(ical.ComponentPropertySummary).Value; got != "Exam" {
		t.Fatalf("unexpected summary %q", got)
	}
	start, err := exam.GetStartAt()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if want := time.Date(2024, 5, 11, 9, 30, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("expected start %s, got %s", want, start)
	}
	end, _ := exam.GetEndAt()
	if end.Sub(start) != DefaultDuration {
		t.Fatalf("expected a one hour event, got %s", end.Sub(start))
	}

	holiday := parsed[1]
	if got := holiday.GetProperty(ical.ComponentPropertyUniqueId).Value; got != "event-2@planner" {
		t.Fatalf("unexpected uid %q", got)
	}
	if v := holiday.GetProperty(ical.ComponentPropertyDtStart).Value; strings.Contains(v, "T") {
		t.Fatalf("expected an all-day start, got %q", v)
	}
}

func TestClock(t *testing.T) {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		ok   bool
		hour int
	}{
		{"08:15", true, 8},
		{"18:00 - 19:30", true, 18},
		{"", false, 0},
		{"evening", false, 0},
	}

	for _, tt := range tests {
		got, ok := clock(day, tt.in)
		if ok != tt.ok || (ok && got.Hour() != tt.hour) {
			t.Errorf("clock(%q) = %s, %v", tt.in, got, ok)
		}
	}
}

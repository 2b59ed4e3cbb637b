// Package calendar exports planner events as an iCalendar feed
package calendar

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/taskmaster/planner/internal/domain/entities"
)

// ProductID identifies the planner in exported feeds
const ProductID = "-//taskmaster//planner//EN"

// DefaultDuration is the length of a timed event in the feed
const DefaultDuration = time.Hour

// Exporter converts events into VEVENTs
type Exporter struct {
	loc      *time.Location
	duration time.Duration
	now      func() time.Time
}

// NewExporter creates an exporter reading event dates in loc
func NewExporter(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.Local
	}
	return &Exporter{
		loc:      loc,
		duration: DefaultDuration,
		now:      time.Now,
	}
}

// Calendar builds the feed. Events with an unreadable date are skipped and returned.
func (x *Exporter) Calendar(events []entities.Event) (*ical.Calendar, []entities.Event) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetName("Planner")

	stamp := x.now().UTC()
	var skipped []entities.Event

	for _, e := range events {
		day, err := time.ParseInLocation("2006-01-02", firstN(e.Date, 10), x.loc)
		if err != nil {
			skipped = append(skipped, e)
			continue
		}

		ve := cal.AddEvent(UID(e))
		ve.SetDtStampTime(stamp)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Type != "" {
			ve.AddProperty(ical.ComponentPropertyCategories, strings.ToUpper(e.Type))
		}

		if start, ok := clock(day, e.Time); ok {
			ve.SetStartAt(start)
			ve.SetEndAt(start.Add(x.duration))
		} else {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}

	return cal, skipped
}

// Write serializes the feed for events to w
func (x *Exporter) Write(w io.Writer, events []entities.Event) (int, error) {
	cal, skipped := x.Calendar(events)
	if err := cal.SerializeTo(w); err != nil {
		return 0, fmt.Errorf("failed to write calendar: %w", err)
	}
	return len(events) - len(skipped), nil
}

// UID returns the stable identifier of an event in exported feeds
func UID(e entities.Event) string {
	if e.ExternalID != "" {
		return e.ExternalID + "@planner"
	}
	return "event-" + strconv.Itoa(e.ID) + "@planner"
}

// clock applies an "HH:MM" time of day to day
func clock(day time.Time, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", firstN(strings.TrimSpace(value), 5))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

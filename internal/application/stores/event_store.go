package stores

import (
	"context"
	"sort"
	"sync"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// EventStore caches the calendar events
type EventStore struct {
	mu      sync.RWMutex
	service ports.EventService
	events  []entities.Event
}

// NewEventStore creates a new event store
func NewEventStore(service ports.EventService) *EventStore {
	return &EventStore{service: service}
}

// Fetch reloads the snapshot
func (s *EventStore) Fetch(ctx context.Context) error {
	events, err := s.service.GetAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	return nil
}

// Events returns the cached events ordered by date and time
func (s *EventStore) Events() []entities.Event {
	s.mu.RLock()
	out := append([]entities.Event(nil), s.events...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// OnDate returns the cached events of one day (YYYY-MM-DD)
func (s *EventStore) OnDate(date string) []entities.Event {
	var out []entities.Event
	for _, e := range s.Events() {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

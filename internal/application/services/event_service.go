package services

import (
	"context"
	"fmt"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/storage"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// EventService handles calendar events
type EventService struct {
	events *storage.Collection[entities.Event]
}

// NewEventService creates a new event service
func NewEventService(ctx context.Context, deps Deps) *EventService {
	return &EventService{
		events: storage.NewCollection(ctx, storage.CollectionConfig[entities.Event]{
			Name:     "events",
			Remote:   storage.NewRemote[entities.Event](deps.Client, "/events"),
			Local:    storage.NewLocal[entities.Event](deps.Local, localstore.KeyEvents, nil),
			Resolver: storage.NewResolver(deps.Prober),
			Store:    deps.Local,
			Logger:   deps.Logger,
		}),
	}
}

// GetAll retrieves every event
func (s *EventService) GetAll(ctx context.Context) ([]entities.Event, error) {
	res, err := s.events.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return res.Value, nil
}

// GetByID retrieves an event by ID
func (s *EventService) GetByID(ctx context.Context, id int) (entities.Event, error) {
	res, err := s.events.Get(ctx, id)
	if err != nil {
		return entities.Event{}, fmt.Errorf("event %d: %w", id, err)
	}
	return res.Value, nil
}

// Create adds an event
func (s *EventService) Create(ctx context.Context, event entities.Event) (entities.Event, error) {
	res, err := s.events.Create(ctx, event)
	if err != nil {
		return entities.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return res.Value, nil
}

// Update merges patch into an event
func (s *EventService) Update(ctx context.Context, id int, patch entities.Patch) (entities.Event, error) {
	res, err := s.events.Update(ctx, id, patch)
	if err != nil {
		return entities.Event{}, fmt.Errorf("failed to update event %d: %w", id, err)
	}
	return res.Value.Current, nil
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, id int) error {
	if _, err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return nil
}

// FindByExternalID returns the first event linked to externalID
func (s *EventService) FindByExternalID(ctx context.Context, externalID string) (entities.Event, bool, error) {
	res, err := s.events.List(ctx, ports.Filter{"externalId": externalID})
	if err != nil {
		return entities.Event{}, false, fmt.Errorf("failed to find event %s: %w", externalID, err)
	}
	if len(res.Value) == 0 {
		return entities.Event{}, false, nil
	}
	return res.Value[0], true, nil
}

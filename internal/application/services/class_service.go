package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/storage"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// ClassService handles the weekly class timetable
type ClassService struct {
	classes *storage.Collection[entities.Class]
}

// NewClassService creates a new class service
func NewClassService(ctx context.Context, deps Deps) *ClassService {
	return &ClassService{
		classes: storage.NewCollection(ctx, storage.CollectionConfig[entities.Class]{
			Name:     "classes",
			Remote:   storage.NewRemote[entities.Class](deps.Client, "/classes"),
			Local:    storage.NewLocal[entities.Class](deps.Local, localstore.KeyClasses, nil),
			Resolver: storage.NewResolver(deps.Prober),
			Store:    deps.Local,
			Logger:   deps.Logger,
		}),
	}
}

// GetAll retrieves every class
func (s *ClassService) GetAll(ctx context.Context) ([]entities.Class, error) {
	res, err := s.classes.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return res.Value, nil
}

// GetByID retrieves a class by ID
func (s *ClassService) GetByID(ctx context.Context, id int) (entities.Class, error) {
	res, err := s.classes.Get(ctx, id)
	if err != nil {
		return entities.Class{}, fmt.Errorf("class %d: %w", id, err)
	}
	return res.Value, nil
}

// Create adds a class to the timetable
func (s *ClassService) Create(ctx context.Context, class entities.Class) (entities.Class, error) {
	res, err := s.classes.Create(ctx, class)
	if err != nil {
		return entities.Class{}, fmt.Errorf("failed to create class: %w", err)
	}
	return res.Value, nil
}

// Update merges patch into a class
func (s *ClassService) Update(ctx context.Context, id int, patch entities.Patch) (entities.Class, error) {
	res, err := s.classes.Update(ctx, id, patch)
	if err != nil {
		return entities.Class{}, fmt.Errorf("failed to update class %d: %w", id, err)
	}
	return res.Value.Current, nil
}

// Delete removes a class
func (s *ClassService) Delete(ctx context.Context, id int) error {
	if _, err := s.classes.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete class %d: %w", id, err)
	}
	return nil
}

// GetByDay returns the classes held on day, ordered by start time
func (s *ClassService) GetByDay(ctx context.Context, day string) ([]entities.Class, error) {
	res, err := s.classes.List(ctx, ports.Filter{"day": day})
	if err != nil {
		return nil, fmt.Errorf("failed to list classes for %s: %w", day, err)
	}
	SortClasses(res.Value)
	return res.Value, nil
}

// SortClasses orders classes by the start of their time range
func SortClasses(classes []entities.Class) {
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].StartTime() < classes[j].StartTime()
	})
}

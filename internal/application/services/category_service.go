package services

import (
	"context"
	"fmt"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/storage"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// DefaultCategories is the collection used before anything has been stored locally
func DefaultCategories() []entities.Category {
	return []entities.Category{
		{ID: 1, Name: "Study", Description: "Lectures, homework and exam preparation", Color: "blue"},
		{ID: 2, Name: "Work", Description: "Job and internship tasks", Color: "purple"},
		{ID: 3, Name: "Personal", Description: "Personal errands and plans", Color: "green"},
		{ID: 4, Name: "Home", Description: "Household chores", Color: "yellow"},
		{ID: 5, Name: "Health", Description: "Sport, doctors and wellbeing", Color: "red"},
		{ID: 6, Name: "Hobby", Description: "Leisure and hobbies", Color: "pink"},
	}
}

// subjectBackend reads categories from /categories and, when that fails,
// from the legacy /subjects collection.
type subjectBackend struct {
	*storage.RemoteBackend[entities.Category]
	subjects *storage.RemoteBackend[entities.Subject]
}

func (b subjectBackend) List(ctx context.Context, filter ports.Filter) ([]entities.Category, error) {
	categories, err := b.RemoteBackend.List(ctx, filter)
	if err == nil {
		return categories, nil
	}

	subjects, subjErr := b.subjects.List(ctx, filter)
	if subjErr != nil {
		return nil, err
	}
	out := make([]entities.Category, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, subject.Category())
	}
	return out, nil
}

func (b subjectBackend) Get(ctx context.Context, id int) (entities.Category, error) {
	category, err := b.RemoteBackend.Get(ctx, id)
	if err == nil {
		return category, nil
	}

	subject, subjErr := b.subjects.Get(ctx, id)
	if subjErr != nil {
		return entities.Category{}, err
	}
	return subject.Category(), nil
}

// CategoryService handles task categories
type CategoryService struct {
	categories *storage.Collection[entities.Category]
}

// NewCategoryService creates a new category service
func NewCategoryService(ctx context.Context, deps Deps) *CategoryService {
	remote := subjectBackend{
		RemoteBackend: storage.NewRemote[entities.Category](deps.Client, "/categories"),
		subjects:      storage.NewRemote[entities.Subject](deps.Client, "/subjects"),
	}

	return &CategoryService{
		categories: storage.NewCollection[entities.Category](ctx, storage.CollectionConfig[entities.Category]{
			Name:     "categories",
			Remote:   remote,
			Local:    storage.NewLocal(deps.Local, localstore.KeyCategories, DefaultCategories),
			Resolver: storage.NewResolver(deps.Prober),
			Store:    deps.Local,
			Logger:   deps.Logger,
		}),
	}
}

// GetAll retrieves every category
func (s *CategoryService) GetAll(ctx context.Context) ([]entities.Category, error) {
	res, err := s.categories.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return res.Value, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id int) (entities.Category, error) {
	res, err := s.categories.Get(ctx, id)
	if err != nil {
		return entities.Category{}, fmt.Errorf("category %d: %w", id, err)
	}
	return res.Value, nil
}

// Create adds a category
func (s *CategoryService) Create(ctx context.Context, category entities.Category) (entities.Category, error) {
	res, err := s.categories.Create(ctx, category)
	if err != nil {
		return entities.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return res.Value, nil
}

// Update merges patch into a category
func (s *CategoryService) Update(ctx context.Context, id int, patch entities.Patch) (entities.Category, error) {
	res, err := s.categories.Update(ctx, id, patch)
	if err != nil {
		return entities.Category{}, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return res.Value.Current, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if _, err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/storage"
	"github.com/taskmaster/planner/internal/application/cascade"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// TaskService handles task-related operations
type TaskService struct {
	tasks  *storage.Collection[entities.Task]
	bus    *cascade.Bus
	logger *logger.Logger
}

// NewTaskService creates a new task service. Every stored change is published on bus.
func NewTaskService(ctx context.Context, deps Deps, bus *cascade.Bus) *TaskService {
	resolver := storage.NewResolver(deps.Prober)
	tasks := storage.NewCollection(ctx, storage.CollectionConfig[entities.Task]{
		Name:     "tasks",
		Remote:   storage.NewRemote[entities.Task](deps.Client, "/tasks"),
		Local:    storage.NewLocal[entities.Task](deps.Local, localstore.KeyTasks, nil),
		Resolver: resolver,
		Store:    deps.Local,
		Logger:   deps.Logger,
	})

	return &TaskService{
		tasks:  tasks,
		bus:    bus,
		logger: tasks.Logger(),
	}
}

// UsingLocal reports whether the last operation was served from local storage
func (s *TaskService) UsingLocal() bool {
	return s.tasks.Resolver().UsingLocal()
}

// GetAll returns every task
func (s *TaskService) GetAll(ctx context.Context) ([]entities.Task, error) {
	res, err := s.tasks.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return res.Value, nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, id int) (entities.Task, error) {
	res, err := s.tasks.Get(ctx, id)
	if err != nil {
		return entities.Task{}, fmt.Errorf("task %d: %w", id, err)
	}
	return res.Value, nil
}

// Create stores a new task and mirrors it into the calendar
func (s *TaskService) Create(ctx context.Context, task entities.Task) (entities.Task, error) {
	res, err := s.tasks.Create(ctx, task)
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", res.Value.ID, "title", res.Value.Title, "source", res.Source)

	s.bus.Publish(ctx, cascade.Change{
		Kind:   cascade.TaskCreated,
		TaskID: res.Value.ID,
		Task:   res.Value,
		Source: res.Source,
	})

	return res.Value, nil
}

// Update merges patch onto the stored task
func (s *TaskService) Update(ctx context.Context, id int, patch entities.Patch) (entities.Task, error) {
	res, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to update task %d: %w", id, err)
	}

	prev := res.Value.Previous
	s.bus.Publish(ctx, cascade.Change{
		Kind:     cascade.TaskUpdated,
		TaskID:   id,
		Task:     res.Value.Current,
		Previous: &prev,
		Source:   res.Source,
	})

	return res.Value.Current, nil
}

// Delete removes a task and its calendar mirror
func (s *TaskService) Delete(ctx context.Context, id int) error {
	source, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	s.logger.Infow("Task deleted", "task_id", id, "source", source)

	s.bus.Publish(ctx, cascade.Change{
		Kind:   cascade.TaskDeleted,
		TaskID: id,
		Source: source,
	})

	return nil
}

// CompleteTask sets the completed flag of a task
func (s *TaskService) CompleteTask(ctx context.Context, id int, completed bool) (entities.Task, error) {
	return s.Update(ctx, id, entities.Patch{"completed": completed})
}

// UpdateProgress sets the progress of a task
func (s *TaskService) UpdateProgress(ctx context.Context, id, progress int) (entities.Task, error) {
	return s.Update(ctx, id, entities.Patch{"progress": progress})
}

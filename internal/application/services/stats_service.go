package services

import (
	"context"
	"fmt"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/storage"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// StatsService handles the dashboard counters
type StatsService struct {
	stats  *storage.Singleton[entities.Stats]
	logger *logger.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(deps Deps) *StatsService {
	return &StatsService{
		stats:  storage.NewSingleton[entities.Stats]("stats", "/stats", localstore.KeyStats, deps.Client, deps.Local, storage.NewResolver(deps.Prober), deps.Logger),
		logger: deps.Logger.WithComponent("stats"),
	}
}

// Get returns the current counters
func (s *StatsService) Get(ctx context.Context) (entities.Stats, error) {
	res, err := s.stats.Get(ctx)
	if err != nil {
		return entities.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return res.Value, nil
}

// Update merges patch onto the counters
func (s *StatsService) Update(ctx context.Context, patch entities.Patch) (entities.Stats, error) {
	res, err := s.stats.Patch(ctx, patch)
	if err != nil {
		return entities.Stats{}, fmt.Errorf("failed to update stats: %w", err)
	}
	return res.Value, nil
}

// ApplyCompletionDelta moves one task between active and completed.
// Completing decrements activeTasks, increments completedToday and, for
// high priority tasks, decrements urgentTasks. Reopening is the exact inverse.
func (s *StatsService) ApplyCompletionDelta(ctx context.Context, priority entities.Priority, completed bool) (entities.Stats, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return entities.Stats{}, err
	}

	delta := 1
	if completed {
		delta = -1
	}

	patch := entities.Patch{
		"activeTasks":    current.ActiveTasks + delta,
		"completedToday": current.CompletedToday - delta,
	}
	if priority == entities.PriorityHigh {
		patch["urgentTasks"] = current.UrgentTasks + delta
	}

	updated, err := s.Update(ctx, patch)
	if err != nil {
		return entities.Stats{}, err
	}

	s.logger.Debugw("Completion delta applied",
		"completed", completed,
		"priority", priority,
		"active_tasks", updated.ActiveTasks,
		"urgent_tasks", updated.UrgentTasks,
		"completed_today", updated.CompletedToday,
	)

	return updated, nil
}

// Recompute sets activeTasks and urgentTasks from a task set
func (s *StatsService) Recompute(ctx context.Context, tasks []entities.Task) (entities.Stats, error) {
	active, urgent := 0, 0
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		active++
		if task.IsUrgent() {
			urgent++
		}
	}

	return s.Update(ctx, entities.Patch{
		"activeTasks": active,
		"urgentTasks": urgent,
	})
}

package cascade

import (
	"context"
	"fmt"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

const defaultEventTime = "09:00"

// StatsHandler applies completion deltas to the dashboard counters when a
// task's completed flag flips. Writes served by the API are skipped because
// the API adjusts the counters itself when a task is patched.
func StatsHandler(stats ports.StatsService) HandlerFunc {
	return func(ctx context.Context, change Change) error {
		if change.Kind != TaskUpdated || change.Previous == nil {
			return nil
		}
		if change.Previous.Completed == change.Task.Completed {
			return nil
		}
		if change.Source == ports.SourceRemote {
			return nil
		}

		// priority is taken from the stored record before the write
		if _, err := stats.ApplyCompletionDelta(ctx, change.Previous.Priority, change.Task.Completed); err != nil {
			return fmt.Errorf("failed to apply completion delta: %w", err)
		}
		return nil
	}
}

// EventMirrorHandler keeps one calendar event per task, linked by external id
func EventMirrorHandler(events ports.EventService) HandlerFunc {
	return func(ctx context.Context, change Change) error {
		switch change.Kind {
		case TaskCreated:
			if _, err := events.Create(ctx, EventFromTask(change.Task)); err != nil {
				return fmt.Errorf("failed to create event for task %d: %w", change.TaskID, err)
			}
			return nil

		case TaskUpdated:
			mirror := EventFromTask(change.Task)
			existing, found, err := events.FindByExternalID(ctx, mirror.ExternalID)
			if err != nil {
				return fmt.Errorf("failed to look up event for task %d: %w", change.TaskID, err)
			}
			if !found {
				if _, err := events.Create(ctx, mirror); err != nil {
					return fmt.Errorf("failed to create event for task %d: %w", change.TaskID, err)
				}
				return nil
			}

			patch, err := entities.ToPatch(mirror)
			if err != nil {
				return err
			}
			delete(patch, "id")
			if _, err := events.Update(ctx, existing.ID, patch); err != nil {
				return fmt.Errorf("failed to update event %d: %w", existing.ID, err)
			}
			return nil

		case TaskDeleted:
			existing, found, err := events.FindByExternalID(ctx, entities.TaskExternalID(change.TaskID))
			if err != nil {
				return fmt.Errorf("failed to look up event for task %d: %w", change.TaskID, err)
			}
			if !found {
				return nil
			}
			if err := events.Delete(ctx, existing.ID); err != nil {
				return fmt.Errorf("failed to delete event %d: %w", existing.ID, err)
			}
		}
		return nil
	}
}

// EventFromTask builds the calendar event mirroring task
func EventFromTask(task entities.Task) entities.Event {
	event := entities.Event{
		Title:       task.Title,
		Type:        "task",
		Date:        task.DueDate,
		Time:        task.Time,
		Description: task.Description,
		ExternalID:  task.ExternalID(),
	}
	if event.Time == "" {
		event.Time = defaultEventTime
	}

	switch task.Priority {
	case entities.PriorityHigh:
		event.Icon = "fas fa-exclamation-circle"
		event.ColorClass = "bg-red-100 text-red-800"
	case entities.PriorityMedium:
		event.Icon = "fas fa-exclamation"
		event.ColorClass = "bg-yellow-100 text-yellow-800"
	default:
		event.Icon = "fas fa-tasks"
		event.ColorClass = "bg-green-100 text-green-800"
	}

	return event
}

// Register subscribes the stats and event mirror handlers
func Register(bus *Bus, stats ports.StatsService, events ports.EventService) {
	bus.Subscribe(TaskUpdated, "stats", StatsHandler(stats))
	bus.Subscribe(TaskCreated, "event-mirror", EventMirrorHandler(events))
	bus.Subscribe(TaskUpdated, "event-mirror", EventMirrorHandler(events))
	bus.Subscribe(TaskDeleted, "event-mirror", EventMirrorHandler(events))
}

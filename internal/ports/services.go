package ports

import (
	"context"

	"github.com/taskmaster/planner/internal/domain/entities"
)

// TaskService defines the task operations used by stores, cascades and the CLI
type TaskService interface {
	GetAll(ctx context.Context) ([]entities.Task, error)
	GetByID(ctx context.Context, id int) (entities.Task, error)
	Create(ctx context.Context, task entities.Task) (entities.Task, error)
	Update(ctx context.Context, id int, patch entities.Patch) (entities.Task, error)
	Delete(ctx context.Context, id int) error
	CompleteTask(ctx context.Context, id int, completed bool) (entities.Task, error)
	UpdateProgress(ctx context.Context, id, progress int) (entities.Task, error)
}

// EventService defines the calendar event operations
type EventService interface {
	GetAll(ctx context.Context) ([]entities.Event, error)
	GetByID(ctx context.Context, id int) (entities.Event, error)
	Create(ctx context.Context, event entities.Event) (entities.Event, error)
	Update(ctx context.Context, id int, patch entities.Patch) (entities.Event, error)
	Delete(ctx context.Context, id int) error
	FindByExternalID(ctx context.Context, externalID string) (entities.Event, bool, error)
}

// CategoryService defines the task category operations
type CategoryService interface {
	GetAll(ctx context.Context) ([]entities.Category, error)
	GetByID(ctx context.Context, id int) (entities.Category, error)
	Create(ctx context.Context, category entities.Category) (entities.Category, error)
	Update(ctx context.Context, id int, patch entities.Patch) (entities.Category, error)
	Delete(ctx context.Context, id int) error
}

// ClassService defines the timetable operations
type ClassService interface {
	GetAll(ctx context.Context) ([]entities.Class, error)
	GetByID(ctx context.Context, id int) (entities.Class, error)
	Create(ctx context.Context, class entities.Class) (entities.Class, error)
	Update(ctx context.Context, id int, patch entities.Patch) (entities.Class, error)
	Delete(ctx context.Context, id int) error
	GetByDay(ctx context.Context, day string) ([]entities.Class, error)
}

// StatsService defines the dashboard counter operations
type StatsService interface {
	Get(ctx context.Context) (entities.Stats, error)
	Update(ctx context.Context, patch entities.Patch) (entities.Stats, error)
	ApplyCompletionDelta(ctx context.Context, priority entities.Priority, completed bool) (entities.Stats, error)
}

// NotificationService defines the notification operations
type NotificationService interface {
	GetAll(ctx context.Context, userID int) ([]entities.Notification, error)
	Create(ctx context.Context, n entities.Notification) (entities.Notification, error)
	MarkAsRead(ctx context.Context, id int) (entities.Notification, error)
	MarkAllAsRead(ctx context.Context, userID int) error
	Delete(ctx context.Context, id int) error
	CreateTaskReminders(ctx context.Context, userID int, email string, tasks []entities.Task) ([]entities.Notification, error)
}

// ChatNotifier delivers a notification through the linked chat channel
type ChatNotifier interface {
	GetConfig(ctx context.Context, userID int) (*entities.TelegramConfig, error)
	SendNotification(ctx context.Context, userID int, title, message string, kind entities.NotificationType) bool
}

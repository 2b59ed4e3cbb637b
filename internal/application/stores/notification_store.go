package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// NotificationStore caches the notifications of the signed-in user
type NotificationStore struct {
	mu            sync.RWMutex
	service       ports.NotificationService
	tasks         ports.TaskService
	user          entities.User
	notifications []entities.Notification
	err           error
}

// NewNotificationStore creates a new notification store for user
func NewNotificationStore(service ports.NotificationService, tasks ports.TaskService, user entities.User) *NotificationStore {
	return &NotificationStore{service: service, tasks: tasks, user: user}
}

// Fetch reloads the snapshot
func (s *NotificationStore) Fetch(ctx context.Context) error {
	notifications, err := s.service.GetAll(ctx, s.user.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	s.notifications = notifications
	return nil
}

// Notifications returns a copy of the cached notifications
func (s *NotificationStore) Notifications() []entities.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Notification(nil), s.notifications...)
}

// Unread returns the unread notifications
func (s *NotificationStore) Unread() []entities.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.Notification
	for _, n := range s.notifications {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount returns the number of unread notifications
func (s *NotificationStore) UnreadCount() int {
	return len(s.Unread())
}

// Err returns the error of the last failed operation
func (s *NotificationStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// MarkAsRead flags one notification as read
func (s *NotificationStore) MarkAsRead(ctx context.Context, id int) error {
	updated, err := s.service.MarkAsRead(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i] = updated
		}
	}
	return nil
}

// MarkAllAsRead flags every notification of the user as read
func (s *NotificationStore) MarkAllAsRead(ctx context.Context) error {
	err := s.service.MarkAllAsRead(ctx, s.user.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	for i := range s.notifications {
		s.notifications[i].IsRead = true
	}
	return nil
}

// Delete removes a notification
func (s *NotificationStore) Delete(ctx context.Context, id int) error {
	err := s.service.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	out := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ID != id {
			out = append(out, n)
		}
	}
	s.notifications = out
	return nil
}

// CreateReminders runs the reminder sweep over every task and reloads the snapshot
func (s *NotificationStore) CreateReminders(ctx context.Context) ([]entities.Notification, error) {
	if s.user.ID == 0 || s.user.Email == "" {
		return nil, fmt.Errorf("cannot create reminders: no signed-in user with an email")
	}

	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	created, err := s.service.CreateTaskReminders(ctx, s.user.ID, s.user.Email, tasks)
	if err != nil {
		return created, err
	}

	return created, s.Fetch(ctx)
}

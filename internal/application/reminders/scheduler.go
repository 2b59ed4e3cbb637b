package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// Scheduler runs the reminder sweep for one user on a cron schedule
type Scheduler struct {
	cron          *cron.Cron
	tasks         ports.TaskService
	notifications ports.NotificationService
	user          entities.User
	timeout       time.Duration
	logger        *logger.Logger

	mu   sync.Mutex
	runs int
}

// New creates a scheduler. schedule uses the standard five-field cron syntax.
func New(schedule string, tasks ports.TaskService, notifications ports.NotificationService, user entities.User, log *logger.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:          cron.New(),
		tasks:         tasks,
		notifications: notifications,
		user:          user,
		timeout:       time.Minute,
		logger:        log.WithComponent("reminders"),
	}

	if _, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Errorw("Reminder sweep failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}

	return s, nil
}

// RunOnce loads the tasks and runs one reminder sweep
func (s *Scheduler) RunOnce(ctx context.Context) ([]entities.Notification, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	created, err := s.notifications.CreateTaskReminders(ctx, s.user.ID, s.user.Email, tasks)
	if err != nil {
		return created, fmt.Errorf("failed to create reminders: %w", err)
	}

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	s.logger.Infow("Reminder sweep finished", "user_id", s.user.ID, "notifications", len(created))
	return created, nil
}

// Runs returns the number of completed sweeps
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// Next returns the time of the next scheduled sweep
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Start runs the scheduler until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.logger.Infow("Reminder scheduler started", "next_run", s.Next())

	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info("Reminder scheduler stopped")
}

package services

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/remote"
	"github.com/taskmaster/planner/internal/adapters/storage"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

const importantMarker = "high priority"

// NotificationService handles user notifications and their simulated delivery
type NotificationService struct {
	notifications *storage.Collection[entities.Notification]
	client        *remote.Client
	chat          ports.ChatNotifier
	now           func() time.Time
	logger        *logger.Logger
}

// NewNotificationService creates a new notification service. chat may be nil,
// in which case reminders are not delivered to a chat.
func NewNotificationService(ctx context.Context, deps Deps, chat ports.ChatNotifier) *NotificationService {
	notifications := storage.NewCollection(ctx, storage.CollectionConfig[entities.Notification]{
		Name:     "notifications",
		Remote:   storage.NewRemote[entities.Notification](deps.Client, "/notifications"),
		Local:    storage.NewLocal[entities.Notification](deps.Local, localstore.KeyNotifications, nil),
		Resolver: storage.NewResolver(deps.Prober),
		Store:    deps.Local,
		Logger:   deps.Logger,
	})

	return &NotificationService{
		notifications: notifications,
		client:        deps.Client,
		chat:          chat,
		now:           deps.now,
		logger:        notifications.Logger(),
	}
}

// GetAll returns the notifications of a user
func (s *NotificationService) GetAll(ctx context.Context, userID int) ([]entities.Notification, error) {
	res, err := s.notifications.List(ctx, ports.Filter{"userId": strconv.Itoa(userID)})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return res.Value, nil
}

// Create stores a notification stamped with the current time
func (s *NotificationService) Create(ctx context.Context, n entities.Notification) (entities.Notification, error) {
	n.CreatedAt = s.now().Format(time.RFC3339)

	res, err := s.notifications.Create(ctx, n)
	if err != nil {
		return entities.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return res.Value, nil
}

// MarkAsRead flags one notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, id int) (entities.Notification, error) {
	res, err := s.notifications.Update(ctx, id, entities.Patch{"isRead": true})
	if err != nil {
		return entities.Notification{}, fmt.Errorf("failed to mark notification %d as read: %w", id, err)
	}
	return res.Value.Current, nil
}

// MarkAllAsRead flags every unread notification of a user as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int) error {
	local := s.notifications.Local()

	_, err := storage.Do(ctx, s.notifications.Resolver(), s.logger, "notifications", "mark-all",
		func(ctx context.Context) (struct{}, error) {
			path := "/notifications/mark-all/" + strconv.Itoa(userID)
			return struct{}{}, s.client.Do(ctx, http.MethodPatch, path, nil, entities.Patch{"isRead": true}, nil)
		},
		func(ctx context.Context) (struct{}, error) {
			items := local.Snapshot(ctx)
			for i := range items {
				if items[i].UserID == userID && !items[i].IsRead {
					items[i].IsRead = true
				}
			}
			local.Replace(ctx, items)
			return struct{}{}, nil
		},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

// Delete removes a notification
func (s *NotificationService) Delete(ctx context.Context, id int) error {
	if _, err := s.notifications.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification %d: %w", id, err)
	}
	return nil
}

// SendEmail asks the API to deliver an email. Offline the email is only logged.
// A failed delivery is recorded as a warning notification for the recipient.
func (s *NotificationService) SendEmail(ctx context.Context, email entities.EmailNotification) bool {
	if s.notifications.Resolver().UseLocal(ctx) {
		s.logger.Infow("Simulated email", "to", email.To, "subject", email.Subject)
		return true
	}

	var resp struct {
		Success   bool   `json:"success"`
		MessageID string `json:"messageId"`
	}
	err := s.client.Do(ctx, http.MethodPost, "/notifications/email", nil, email, &resp)
	if err == nil {
		s.logger.Infow("Email sent", "to", email.To, "message_id", resp.MessageID)
		return true
	}

	s.logger.Errorw("Failed to send email", "to", email.To, "subject", email.Subject, "error", err)

	user, lookupErr := remote.Get[entities.User](ctx, s.client, "/user", url.Values{"email": {email.To}})
	if lookupErr != nil || user.ID == 0 {
		s.logger.Warnw("Could not find email recipient", "to", email.To)
		return false
	}

	sent := false
	if _, err := s.Create(ctx, entities.Notification{
		UserID:    user.ID,
		Title:     "Email delivery failed",
		Message:   fmt.Sprintf("Could not send email %q to %s. Check your mail settings.", email.Subject, email.To),
		Type:      entities.NotificationWarning,
		EmailSent: &sent,
	}); err != nil {
		s.logger.Errorw("Failed to record email failure", "error", err)
	}

	return false
}

// CreateTaskReminders creates one notification (and email, when email is set)
// per non-empty reminder bucket, or a single informational notification when
// there is nothing to remind about. The created notifications are then
// delivered to the user's chat according to their settings.
func (s *NotificationService) CreateTaskReminders(ctx context.Context, userID int, email string, tasks []entities.Task) ([]entities.Notification, error) {
	buckets := ClassifyReminders(tasks, s.now())

	s.logger.Infow("Creating task reminders",
		"user_id", userID,
		"tasks", len(tasks),
		"tomorrow", len(buckets.Tomorrow),
		"urgent_today", len(buckets.UrgentToday),
		"overdue", len(buckets.Overdue),
		"important_week", len(buckets.ImportantWeek),
		"low_progress", len(buckets.LowProgress),
	)

	var reminders []reminder
	if buckets.Empty() {
		reminders = append(reminders, reminder{
			kind:    entities.NotificationInfo,
			title:   "No tasks need reminders",
			message: "You have no upcoming tasks that need attention. A good day for planning!",
		})
	}
	reminders = append(reminders, buildReminders(buckets)...)

	created := make([]entities.Notification, 0, len(reminders))
	for _, r := range reminders {
		n, err := s.Create(ctx, entities.Notification{
			UserID:  userID,
			Title:   r.title,
			Message: r.message,
			Type:    r.kind,
		})
		if err != nil {
			return created, err
		}
		created = append(created, n)

		if email != "" && len(r.lines) > 0 {
			s.SendEmail(ctx, r.email(email))
		}
	}

	s.deliverToChat(ctx, userID, created)

	return created, nil
}

func (s *NotificationService) deliverToChat(ctx context.Context, userID int, notifications []entities.Notification) {
	if s.chat == nil || len(notifications) == 0 {
		return
	}

	cfg, err := s.chat.GetConfig(ctx, userID)
	if err != nil {
		s.logger.Errorw("Failed to load chat configuration", "user_id", userID, "error", err)
		return
	}
	if cfg == nil || !cfg.Connected {
		s.logger.Debugw("Chat not connected", "user_id", userID)
		return
	}

	sent := 0
	for _, n := range FilterForChat(notifications, cfg.Settings) {
		if s.chat.SendNotification(ctx, userID, n.Title, n.Message, n.Type) {
			sent++
		}
	}
	s.logger.Infow("Reminders delivered to chat", "user_id", userID, "sent", sent)
}

// FilterForChat applies the user's chat settings to notifications
func FilterForChat(notifications []entities.Notification, settings entities.TelegramSettings) []entities.Notification {
	out := make([]entities.Notification, 0, len(notifications))
	for _, n := range notifications {
		if settings.Important && !isImportant(n) {
			continue
		}
		if !settings.Tasks && n.Type == entities.NotificationTask {
			continue
		}
		if !settings.Events && n.Type == entities.NotificationCalendar {
			continue
		}
		out = append(out, n)
	}
	return out
}

func isImportant(n entities.Notification) bool {
	switch n.Type {
	case entities.NotificationWarning:
		return true
	case entities.NotificationTask:
		return strings.Contains(strings.ToLower(n.Title), importantMarker)
	}
	return false
}

type reminder struct {
	kind    entities.NotificationType
	title   string
	message string
	icon    string
	color   string
	heading string
	footer  string
	lines   []string
}

func (r reminder) email(to string) entities.EmailNotification {
	var text, body strings.Builder

	text.WriteString(r.message + "\n\n" + r.heading + ":\n")
	for _, line := range r.lines {
		text.WriteString("- " + line + "\n")
	}

	fmt.Fprintf(&body, "<h2 style=\"color:%s;\">%s %s</h2>\n", r.color, r.icon, html.EscapeString(r.title))
	fmt.Fprintf(&body, "<p>%s</p>\n<h3>%s:</h3>\n<ul>\n", html.EscapeString(r.message), html.EscapeString(r.heading))
	for _, line := range r.lines {
		fmt.Fprintf(&body, "<li>%s</li>\n", html.EscapeString(line))
	}
	body.WriteString("</ul>\n")
	if r.footer != "" {
		fmt.Fprintf(&body, "<p>%s</p>\n", html.EscapeString(r.footer))
	}

	return entities.EmailNotification{
		To:      to,
		Subject: r.icon + " " + r.title,
		Text:    strings.TrimRight(text.String(), "\n"),
		HTML:    body.String(),
	}
}

// buildReminders renders the non-empty buckets in delivery order:
// overdue, urgent today, tomorrow, important this week, low progress.
func buildReminders(b ReminderBuckets) []reminder {
	var out []reminder

	if n := len(b.Overdue); n > 0 {
		r := reminder{
			kind:    entities.NotificationWarning,
			title:   fmt.Sprintf("Overdue tasks (%d)", n),
			message: fmt.Sprintf("You have %d overdue tasks that need immediate attention!", n),
			icon:    "⚠️",
			color:   "#e53e3e",
			heading: "Overdue tasks",
		}
		for _, t := range b.Overdue {
			r.lines = append(r.lines, fmt.Sprintf("%s (Priority: %s, was due: %s)", t.Title, priorityText(t.Priority), t.DueDate))
		}
		out = append(out, r)
	}

	if n := len(b.UrgentToday); n > 0 {
		r := reminder{
			kind:    entities.NotificationWarning,
			title:   fmt.Sprintf("Urgent tasks for today (%d)", n),
			message: fmt.Sprintf("You have %d urgent tasks to finish today!", n),
			icon:    "🔥",
			color:   "#e53e3e",
			heading: "Urgent tasks",
		}
		for _, t := range b.UrgentToday {
			r.lines = append(r.lines, fmt.Sprintf("%s (time: %s)", t.Title, timeText(t.Time)))
		}
		out = append(out, r)
	}

	if n := len(b.Tomorrow); n > 0 {
		r := reminder{
			kind:    entities.NotificationTask,
			title:   fmt.Sprintf("Tasks for tomorrow (%d)", n),
			message: fmt.Sprintf("You have %d tasks planned for tomorrow. Don't forget to prepare!", n),
			icon:    "📅",
			color:   "#3182ce",
			heading: "Tasks",
		}
		for _, t := range b.Tomorrow {
			r.lines = append(r.lines, fmt.Sprintf("%s (Priority: %s, time: %s)", t.Title, priorityText(t.Priority), timeText(t.Time)))
		}
		out = append(out, r)
	}

	if n := len(b.ImportantWeek); n > 0 {
		r := reminder{
			kind:    entities.NotificationTask,
			title:   fmt.Sprintf("Important tasks this week (%d)", n),
			message: fmt.Sprintf("You have %d high priority tasks planned for the coming week.", n),
			icon:    "📊",
			color:   "#805ad5",
			heading: "Important tasks this week",
		}
		for _, t := range b.ImportantWeek {
			r.lines = append(r.lines, fmt.Sprintf("%s (due: %s)", t.Title, t.DueDate))
		}
		out = append(out, r)
	}

	if n := len(b.LowProgress); n > 0 {
		r := reminder{
			kind:    entities.NotificationWarning,
			title:   fmt.Sprintf("Tasks with low progress (%d)", n),
			message: fmt.Sprintf("You have %d tasks with low progress that are due soon.", n),
			icon:    "⏳",
			color:   "#d69e2e",
			heading: "Tasks with low progress",
			footer:  "Give these tasks some attention to finish them on time.",
		}
		for _, t := range b.LowProgress {
			r.lines = append(r.lines, fmt.Sprintf("%s (Progress: %d%%, days left: %d)", t.Title, t.Progress, t.DaysUntilDue))
		}
		out = append(out, r)
	}

	return out
}

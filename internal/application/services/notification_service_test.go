package services

import (
	"context"
	"strings"
	"testing"

	"github.com/taskmaster/planner/internal/domain/entities"
)

type recordingChat struct {
	cfg  *entities.TelegramConfig
	sent []entities.NotificationType
}

func (r *recordingChat) GetConfig(ctx context.Context, userID int) (*entities.TelegramConfig, error) {
	return r.cfg, nil
}

func (r *recordingChat) SendNotification(ctx context.Context, userID int, title, message string, kind entities.NotificationType) bool {
	r.sent = append(r.sent, kind)
	return true
}

func TestClassifyReminders(t *testing.T) {
	tasks := []entities.Task{
		{ID: 1, Title: "tomorrow", DueDate: day(1), Priority: entities.PriorityLow, Progress: 80},
		{ID: 2, Title: "urgent", DueDate: day(0), Priority: entities.PriorityHigh, Progress: 10},
		{ID: 3, Title: "overdue", DueDate: day(-2), Priority: entities.PriorityMedium},
		{ID: 4, Title: "week", DueDate: day(6), Priority: entities.PriorityHigh, Progress: 90},
		{ID: 5, Title: "done", DueDate: day(0), Priority: entities.PriorityHigh, Completed: true},
		{ID: 6, Title: "no date", DueDate: "someday"},
		{ID: 7, Title: "far", DueDate: day(30), Priority: entities.PriorityHigh},
		{ID: 8, Title: "soon", DueDate: day(3), Progress: 0},
	}

	b := ClassifyReminders(tasks, fixedNow)

	ids := func(ts []entities.Task) []int {
		var out []int
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}
	check := func(name string, got []int, want ...int) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("%s = %v, want %v", name, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s = %v, want %v", name, got, want)
			}
		}
	}

	check("tomorrow", ids(b.Tomorrow), 1)
	check("urgent today", ids(b.UrgentToday), 2)
	check("overdue", ids(b.Overdue), 3)
	check("important week", ids(b.ImportantWeek), 4)

	var low []int
	for _, d := range b.LowProgress {
		low = append(low, d.ID)
	}
	check("low progress", low, 2, 8)
	if b.LowProgress[1].DaysUntilDue != 3 {
		t.Fatalf("expected 3 days until due, got %d", b.LowProgress[1].DaysUntilDue)
	}
}

func TestClassifyRemindersAcceptsTimestamps(t *testing.T) {
	tomorrowNoon := fixedNow.AddDate(0, 0, 1).Format("2006-01-02") + "T12:00:00" + fixedNow.Format("Z07:00")

	b := ClassifyReminders([]entities.Task{{ID: 1, DueDate: tomorrowNoon, Progress: 100}}, fixedNow)
	if len(b.Tomorrow) != 1 {
		t.Fatalf("timestamp due date should land in tomorrow bucket, got %+v", b)
	}
}

func TestRemindersForEmptyListCreateOneInfo(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(ctx, offlineDeps(t), nil)

	created, err := svc.CreateTaskReminders(ctx, 1, "user@example.com", nil)
	if err != nil {
		t.Fatalf("reminders: %v", err)
	}
	if len(created) != 1 || created[0].Type != entities.NotificationInfo {
		t.Fatalf("expected one info notification, got %+v", created)
	}

	all, _ := svc.GetAll(ctx, 1)
	if len(all) != 1 {
		t.Fatalf("expected one stored notification, got %d", len(all))
	}
}

func TestRemindersTomorrowOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(ctx, offlineDeps(t), nil)

	created, err := svc.CreateTaskReminders(ctx, 1, "", []entities.Task{
		{ID: 1, Title: "Lab report", DueDate: day(1), Priority: entities.PriorityHigh, Progress: 75},
	})
	if err != nil {
		t.Fatalf("reminders: %v", err)
	}

	// tomorrow and important-this-week, nothing overdue or urgent today
	if len(created) != 2 {
		t.Fatalf("expected 2 notifications, got %+v", created)
	}
	if !strings.HasPrefix(created[0].Title, "Tasks for tomorrow (1)") || created[0].Type != entities.NotificationTask {
		t.Fatalf("unexpected first notification %+v", created[0])
	}
	for _, n := range created {
		if strings.HasPrefix(n.Title, "Overdue") || strings.HasPrefix(n.Title, "Urgent") {
			t.Fatalf("tomorrow task must not be overdue or urgent: %+v", n)
		}
	}
}

func TestRemindersOverlappingBuckets(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(ctx, offlineDeps(t), nil)

	created, err := svc.CreateTaskReminders(ctx, 1, "user@example.com", []entities.Task{
		{ID: 1, Title: "Exam prep", DueDate: day(0), Priority: entities.PriorityHigh, Progress: 20},
	})
	if err != nil {
		t.Fatalf("reminders: %v", err)
	}

	if len(created) != 2 {
		t.Fatalf("expected urgent and low progress notifications, got %+v", created)
	}
	if !strings.HasPrefix(created[0].Title, "Urgent tasks for today") || !strings.HasPrefix(created[1].Title, "Tasks with low progress") {
		t.Fatalf("unexpected order %q, %q", created[0].Title, created[1].Title)
	}
	for _, n := range created {
		if n.Type != entities.NotificationWarning || n.CreatedAt == "" || n.IsRead {
			t.Fatalf("unexpected notification %+v", n)
		}
	}
}

func TestRemindersDeliveredToChat(t *testing.T) {
	ctx := context.Background()
	tasks := []entities.Task{
		{ID: 1, Title: "Overdue essay", DueDate: day(-1)},
		{ID: 2, Title: "Tomorrow reading", DueDate: day(1), Progress: 90},
	}

	tests := []struct {
		name     string
		cfg      *entities.TelegramConfig
		wantSent int
	}{
		{"not linked", nil, 0},
		{"disconnected", &entities.TelegramConfig{Connected: false, Settings: entities.TelegramSettings{Tasks: true, Events: true}}, 0},
		{"everything", &entities.TelegramConfig{Connected: true, Settings: entities.TelegramSettings{Tasks: true, Events: true}}, 2},
		{"tasks muted", &entities.TelegramConfig{Connected: true, Settings: entities.TelegramSettings{Tasks: false, Events: true}}, 1},
		{"important only", &entities.TelegramConfig{Connected: true, Settings: entities.TelegramSettings{Tasks: true, Events: true, Important: true}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &recordingChat{cfg: tt.cfg}
			svc := NewNotificationService(ctx, offlineDeps(t), chat)

			if _, err := svc.CreateTaskReminders(ctx, 1, "", tasks); err != nil {
				t.Fatalf("reminders: %v", err)
			}
			if len(chat.sent) != tt.wantSent {
				t.Fatalf("sent %v, want %d messages", chat.sent, tt.wantSent)
			}
		})
	}
}

func TestFilterForChatImportant(t *testing.T) {
	notifications := []entities.Notification{
		{Title: "Overdue tasks (1)", Type: entities.NotificationWarning},
		{Title: "Tasks for tomorrow (2)", Type: entities.NotificationTask},
		{Title: "Essay raised to high priority", Type: entities.NotificationTask},
		{Title: "Lecture moved", Type: entities.NotificationCalendar},
		{Title: "No tasks need reminders", Type: entities.NotificationInfo},
	}

	got := FilterForChat(notifications, entities.TelegramSettings{Tasks: true, Events: true, Important: true})
	if len(got) != 2 || got[0].Type != entities.NotificationWarning || got[1].Title != "Essay raised to high priority" {
		t.Fatalf("unexpected important filter result %+v", got)
	}

	got = FilterForChat(notifications, entities.TelegramSettings{Tasks: true, Events: false})
	for _, n := range got {
		if n.Type == entities.NotificationCalendar {
			t.Fatalf("calendar notifications must be dropped when events are off: %+v", got)
		}
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 notifications, got %d", len(got))
	}
}

func TestMarkAsReadAndMarkAll(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(ctx, offlineDeps(t), nil)

	for i := 0; i < 3; i++ {
		svc.Create(ctx, entities.Notification{UserID: 1, Title: "n", Type: entities.NotificationInfo})
	}
	svc.Create(ctx, entities.Notification{UserID: 2, Title: "other user", Type: entities.NotificationInfo})

	n, err := svc.MarkAsRead(ctx, 1)
	if err != nil || !n.IsRead {
		t.Fatalf("mark as read: %+v, %v", n, err)
	}
	if _, err := svc.MarkAsRead(ctx, 42); err == nil {
		t.Fatal("expected error for missing notification")
	}

	if err := svc.MarkAllAsRead(ctx, 1); err != nil {
		t.Fatalf("mark all: %v", err)
	}
	mine, _ := svc.GetAll(ctx, 1)
	for _, n := range mine {
		if !n.IsRead {
			t.Fatalf("notification %d still unread", n.ID)
		}
	}
	theirs, _ := svc.GetAll(ctx, 2)
	if len(theirs) != 1 || theirs[0].IsRead {
		t.Fatalf("other user's notification must stay unread: %+v", theirs)
	}
}

func TestSendEmailOffline(t *testing.T) {
	svc := NewNotificationService(context.Background(), offlineDeps(t), nil)
	if !svc.SendEmail(context.Background(), entities.EmailNotification{To: "user@example.com", Subject: "hi"}) {
		t.Fatal("offline email should be simulated as sent")
	}
}

func TestImportantOnlyDropsWeeklyReminder(t *testing.T) {
	buckets := ClassifyReminders([]entities.Task{
		{ID: 1, Title: "Project demo", DueDate: day(5), Priority: entities.PriorityHigh, Progress: 80},
	}, fixedNow)

	var weekly []entities.Notification
	for _, r := range buildReminders(buckets) {
		weekly = append(weekly, entities.Notification{Title: r.title, Type: r.kind})
	}
	if len(weekly) != 1 || !strings.HasPrefix(weekly[0].Title, "Important tasks this week") {
		t.Fatalf("expected one weekly reminder, got %+v", weekly)
	}

	if got := FilterForChat(weekly, entities.TelegramSettings{Tasks: true, Events: true, Important: true}); len(got) != 0 {
		t.Fatalf("weekly reminder must not pass the important-only filter, got %+v", got)
	}
}

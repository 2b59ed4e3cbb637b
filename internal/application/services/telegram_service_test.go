package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/taskmaster/planner/internal/domain/entities"
)

func TestTelegramOfflineLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewTelegramService(offlineDeps(t))

	if cfg, err := svc.GetConfig(ctx, 1); err != nil || cfg != nil {
		t.Fatalf("expected no config, got %+v, %v", cfg, err)
	}
	if svc.SendNotification(ctx, 1, "title", "message", entities.NotificationInfo) {
		t.Fatal("unlinked user must not receive messages")
	}

	cfg, err := svc.Connect(ctx, 1, "123456")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if !cfg.Connected || !strings.HasPrefix(cfg.Username, "@user") || cfg.ChatID == "" {
		t.Fatalf("unexpected demo config %+v", cfg)
	}
	if !cfg.Settings.Tasks || !cfg.Settings.Events || cfg.Settings.Important {
		t.Fatalf("unexpected default settings %+v", cfg.Settings)
	}

	if !svc.SendNotification(ctx, 1, "Overdue", "Hurry", entities.NotificationWarning) {
		t.Fatal("linked user should receive warnings")
	}

	if _, err := svc.UpdateSettings(ctx, 1, entities.TelegramSettings{Tasks: false, Events: true}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if svc.SendNotification(ctx, 1, "Tomorrow", "Prepare", entities.NotificationTask) {
		t.Fatal("task notifications are muted")
	}
	if !svc.SendNotification(ctx, 1, "Lecture", "Room 4", entities.NotificationCalendar) {
		t.Fatal("calendar notifications are enabled")
	}

	if err := svc.Disconnect(ctx, 1); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if cfg, _ := svc.GetConfig(ctx, 1); cfg != nil {
		t.Fatalf("config should be removed, got %+v", cfg)
	}
}

func TestTelegramUpdateSettingsWithoutLink(t *testing.T) {
	svc := NewTelegramService(offlineDeps(t))

	_, err := svc.UpdateSettings(context.Background(), 5, entities.TelegramSettings{})
	if !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

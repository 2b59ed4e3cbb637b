package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/remote"
	"github.com/taskmaster/planner/internal/adapters/storage"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// TelegramService links users to a chat and delivers notifications there.
// Delivery is simulated: the API only records the messages.
type TelegramService struct {
	client   *remote.Client
	local    *localstore.Store
	resolver *storage.Resolver
	logger   *logger.Logger
}

// NewTelegramService creates a new telegram service
func NewTelegramService(deps Deps) *TelegramService {
	return &TelegramService{
		client:   deps.Client,
		local:    deps.Local,
		resolver: storage.NewResolver(deps.Prober),
		logger:   deps.Logger.WithComponent("telegram"),
	}
}

func (s *TelegramService) configs(ctx context.Context) []entities.TelegramConfig {
	return localstore.Load(ctx, s.local, localstore.KeyTelegram, []entities.TelegramConfig{})
}

func (s *TelegramService) localConfig(ctx context.Context, userID int) *entities.TelegramConfig {
	for _, c := range s.configs(ctx) {
		if c.UserID == userID {
			cfg := c
			return &cfg
		}
	}
	return nil
}

// GetConfig returns the chat link of a user, or nil when there is none
func (s *TelegramService) GetConfig(ctx context.Context, userID int) (*entities.TelegramConfig, error) {
	res, err := storage.Do(ctx, s.resolver, s.logger, "telegram", "get-config",
		func(ctx context.Context) (*entities.TelegramConfig, error) {
			cfg, err := remote.Get[entities.TelegramConfig](ctx, s.client, "/telegram/config/"+strconv.Itoa(userID), nil)
			if err != nil {
				return nil, err
			}
			return &cfg, nil
		},
		func(ctx context.Context) (*entities.TelegramConfig, error) {
			return s.localConfig(ctx, userID), nil
		},
	)
	return res.Value, err
}

// Connect links a chat using the code from the bot. Offline, a demo link is created.
func (s *TelegramService) Connect(ctx context.Context, userID int, code string) (entities.TelegramConfig, error) {
	if s.resolver.UseLocal(ctx) {
		cfg := entities.TelegramConfig{
			UserID:    userID,
			ChatID:    strconv.FormatInt(rand.Int63n(1_000_000_000), 10),
			Username:  "@user" + strconv.Itoa(rand.Intn(10000)),
			Connected: true,
			Settings:  entities.TelegramSettings{Tasks: true, Events: true, Important: false},
		}
		s.saveLocal(ctx, cfg)
		s.logger.Infow("Demo Telegram link created", "user_id", userID, "username", cfg.Username)
		return cfg, nil
	}

	cfg, err := remote.Send[entities.TelegramConfig](ctx, s.client, http.MethodPost, "/telegram/connect", map[string]interface{}{
		"userId": userID,
		"token":  code,
	})
	if err != nil {
		s.logger.Errorw("Failed to connect Telegram", "user_id", userID, "error", err)
		return entities.TelegramConfig{}, fmt.Errorf("could not connect Telegram, check the code and try again: %w", err)
	}
	return cfg, nil
}

// Disconnect removes the chat link of a user
func (s *TelegramService) Disconnect(ctx context.Context, userID int) error {
	if s.resolver.UseLocal(ctx) {
		configs := s.configs(ctx)
		out := configs[:0]
		for _, c := range configs {
			if c.UserID != userID {
				out = append(out, c)
			}
		}
		localstore.Save(ctx, s.local, localstore.KeyTelegram, out)
		return nil
	}

	if err := s.client.Do(ctx, http.MethodPost, "/telegram/disconnect", nil, map[string]int{"userId": userID}, nil); err != nil {
		s.logger.Errorw("Failed to disconnect Telegram", "user_id", userID, "error", err)
		return fmt.Errorf("could not disconnect Telegram: %w", err)
	}
	return nil
}

// UpdateSettings replaces the delivery settings of a user
func (s *TelegramService) UpdateSettings(ctx context.Context, userID int, settings entities.TelegramSettings) (entities.TelegramConfig, error) {
	if s.resolver.UseLocal(ctx) {
		cfg := s.localConfig(ctx, userID)
		if cfg == nil {
			return entities.TelegramConfig{}, fmt.Errorf("telegram configuration for user %d: %w", userID, entities.ErrNotFound)
		}
		cfg.Settings = settings
		s.saveLocal(ctx, *cfg)
		return *cfg, nil
	}

	cfg, err := remote.Send[entities.TelegramConfig](ctx, s.client, http.MethodPatch, "/telegram/settings/"+strconv.Itoa(userID), map[string]interface{}{
		"settings": settings,
	})
	if err != nil {
		s.logger.Errorw("Failed to update Telegram settings", "user_id", userID, "error", err)
		return entities.TelegramConfig{}, fmt.Errorf("could not update Telegram settings: %w", err)
	}
	return cfg, nil
}

func (s *TelegramService) saveLocal(ctx context.Context, cfg entities.TelegramConfig) {
	configs := s.configs(ctx)
	replaced := false
	for i, c := range configs {
		if c.UserID == cfg.UserID {
			configs[i] = cfg
			replaced = true
			break
		}
	}
	if !replaced {
		configs = append(configs, cfg)
	}
	localstore.Save(ctx, s.local, localstore.KeyTelegram, configs)
}

// SendMessage sends a chat message and reports whether it was accepted
func (s *TelegramService) SendMessage(ctx context.Context, msg entities.TelegramMessage) bool {
	if s.resolver.UseLocal(ctx) {
		s.logger.Infow("Simulated Telegram message", "chat_id", msg.ChatID, "text", msg.Text)
		return true
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := s.client.Do(ctx, http.MethodPost, "/telegram/send", nil, msg, &resp); err != nil {
		s.logger.Errorw("Failed to send Telegram message", "chat_id", msg.ChatID, "error", err)
		return false
	}
	return resp.Success
}

// SendNotification formats a notification for the user's chat and sends it.
// It returns false when the user has no link or has muted this kind.
func (s *TelegramService) SendNotification(ctx context.Context, userID int, title, message string, kind entities.NotificationType) bool {
	cfg, err := s.GetConfig(ctx, userID)
	if err != nil && !errors.Is(err, entities.ErrNotFound) {
		s.logger.Errorw("Failed to load Telegram configuration", "user_id", userID, "error", err)
		return false
	}
	if cfg == nil || !cfg.Connected {
		s.logger.Debugw("Telegram not connected", "user_id", userID)
		return false
	}

	switch {
	case kind == entities.NotificationTask && !cfg.Settings.Tasks:
		return false
	case kind == entities.NotificationCalendar && !cfg.Settings.Events:
		return false
	}

	return s.SendMessage(ctx, entities.TelegramMessage{
		ChatID:    cfg.ChatID,
		Text:      "<b>" + html.EscapeString(title) + "</b>\n\n" + html.EscapeString(message),
		ParseMode: "HTML",
	})
}

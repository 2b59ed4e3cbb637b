package localstore

import (
	"context"
	"encoding/json"

	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// Keys of the planner collections in the local store
const (
	KeyPrefix            = "intellect_planner_"
	KeyTasks             = KeyPrefix + "tasks"
	KeyEvents            = KeyPrefix + "events"
	KeyCategories        = KeyPrefix + "categories"
	KeyClasses           = KeyPrefix + "classes"
	KeyNotifications     = KeyPrefix + "notifications"
	KeyStats             = KeyPrefix + "stats"
	KeyTelegram          = KeyPrefix + "telegram"
	KeyAIRecommendations = KeyPrefix + "ai_recommendations"
	KeyAIChat            = KeyPrefix + "ai_chat"
	KeyUser              = KeyPrefix + "user"
	KeyToken             = "token"
)

// CounterKey returns the key holding the next id of a collection
func CounterKey(collection string) string {
	return collection + "_next_id"
}

// Store is the planner's local persistence. It never returns errors:
// failed reads yield the caller's default and failed writes are logged.
type Store struct {
	kv     ports.KeyValueStore
	logger *logger.Logger
}

// New creates a new local store over a key/value backend
func New(kv ports.KeyValueStore, log *logger.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: log.WithComponent("localstore"),
	}
}

// Load decodes the JSON document stored under key, or returns def
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Errorw("Failed to read local storage", "key", key, "error", err)
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Errorw("Failed to decode local storage value", "key", key, "error", err)
		return def
	}
	return v
}

// Save stores value under key as JSON
func Save[T any](ctx context.Context, s *Store, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Errorw("Failed to encode local storage value", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		s.logger.Errorw("Failed to write local storage", "key", key, "error", err)
	}
}

// Remove deletes key
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Errorw("Failed to remove local storage key", "key", key, "error", err)
	}
}

// GetString returns a raw string value, empty when absent
func (s *Store) GetString(ctx context.Context, key string) string {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Errorw("Failed to read local storage", "key", key, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return raw
}

// SetString stores a raw string value
func (s *Store) SetString(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.Errorw("Failed to write local storage", "key", key, "error", err)
	}
}

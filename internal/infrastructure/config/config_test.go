package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Fatalf("expected port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Client.APIURL != "http://localhost:3000/api" {
		t.Fatalf("unexpected api url %q", cfg.Client.APIURL)
	}
	if cfg.Server.LatencyMin != 200*time.Millisecond || cfg.Server.LatencyMax != 500*time.Millisecond {
		t.Fatalf("unexpected latency bounds %s..%s", cfg.Server.LatencyMin, cfg.Server.LatencyMax)
	}
	if cfg.Store.Driver != "file" {
		t.Fatalf("expected file store, got %q", cfg.Store.Driver)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PLANNER_API_URL", "http://planner.test/api")
	t.Setenv("PLANNER_OFFLINE", "true")
	t.Setenv("SERVER_PORT", "4100")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}

	if cfg.Client.APIURL != "http://planner.test/api" {
		t.Fatalf("api url not overridden: %q", cfg.Client.APIURL)
	}
	if !cfg.Client.Offline {
		t.Fatal("offline flag not overridden")
	}
	if cfg.Server.Port != 4100 {
		t.Fatalf("port not overridden: %d", cfg.Server.Port)
	}
}

func TestValidateRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	if _, err := Default(); err == nil {
		t.Fatal("expected unknown store driver to be rejected")
	}
}

func TestRedisStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if got := cfg.Redis.Addr(); got != "cache:6380" {
		t.Fatalf("unexpected redis address %q", got)
	}
	if cfg.Redis.Key != "planner:document" {
		t.Fatalf("unexpected redis key %q", cfg.Redis.Key)
	}
}

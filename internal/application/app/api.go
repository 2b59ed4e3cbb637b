package app

import (
	"context"
	"fmt"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/database"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// OpenDocument opens the mock API document on the configured store.
// The returned close function releases the underlying connection.
func OpenDocument(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repository.Database, func() error, error) {
	var (
		persister ports.DocumentPersister
		closer    = func() error { return nil }
	)

	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.OpenPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate("up"); err != nil {
			db.Close()
			return nil, nil, err
		}
		persister = repository.NewPostgresPersister(db)
		closer = db.Close
		log.Infow("Using postgres document store", "host", cfg.Database.Host, "database", cfg.Database.Name)
	case "redis":
		rp, err := repository.NewRedisPersister(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		persister = rp
		closer = rp.Close
		log.Infow("Using redis document store", "addr", cfg.Redis.Addr(), "key", cfg.Redis.Key)
	case "file":
		persister = repository.NewFilePersister(cfg.Store.Path)
		log.Infow("Using file document store", "path", cfg.Store.Path)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	doc, err := repository.Open(ctx, persister, repository.DefaultDocument(cfg.Demo.Email), log)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return doc, closer, nil
}

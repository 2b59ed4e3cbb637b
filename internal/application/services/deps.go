package services

import (
	"time"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/adapters/remote"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/probe"
)

// Deps holds the collaborators shared by every service
type Deps struct {
	Client *remote.Client
	Local  *localstore.Store
	Prober probe.Prober
	Logger *logger.Logger
	// Clock defaults to time.Now
	Clock func() time.Time
}

func (d Deps) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

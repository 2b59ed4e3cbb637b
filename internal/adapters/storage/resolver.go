package storage

import (
	"context"
	"sync/atomic"

	"github.com/taskmaster/planner/internal/infrastructure/probe"
)

// Resolver picks the backend for each operation by probing the API
type Resolver struct {
	prober     probe.Prober
	usingLocal atomic.Bool
}

// NewResolver creates a resolver over prober
func NewResolver(prober probe.Prober) *Resolver {
	return &Resolver{prober: prober}
}

// UseLocal probes the API and reports whether the local backend must serve
func (r *Resolver) UseLocal(ctx context.Context) bool {
	local := !r.prober.Reachable(ctx)
	r.usingLocal.Store(local)
	return local
}

// UsingLocal returns the result of the last probe
func (r *Resolver) UsingLocal() bool {
	return r.usingLocal.Load()
}

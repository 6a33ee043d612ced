package config

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MrWong99/phonomatch/pkg/pronounce"
)

// ErrPronouncerNotRegistered is returned by [Registry.Create] when no
// factory has been registered under the requested pronouncer kind.
var ErrPronouncerNotRegistered = errors.New("config: pronouncer not registered")

// PronouncerFactory constructs a pronouncer from its configuration block.
type PronouncerFactory func(ctx context.Context, cfg PronouncerConfig) (pronounce.Pronouncer, error)

// Registry maps pronouncer kinds to their constructor functions. It is safe
// for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[PronouncerKind]PronouncerFactory
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{factories: make(map[PronouncerKind]PronouncerFactory)}
}

// Register adds a pronouncer factory under the given kind, replacing any
// previous registration.
func (r *Registry) Register(kind PronouncerKind, factory PronouncerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Create instantiates the pronouncer selected by cfg.Kind.
func (r *Registry) Create(ctx context.Context, cfg PronouncerConfig) (pronounce.Pronouncer, error) {
	r.mu.RLock()
	factory, ok := r.factories[cfg.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPronouncerNotRegistered, cfg.Kind)
	}

	p, err := factory(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: create pronouncer %q: %w", cfg.Kind, err)
	}
	return p, nil
}

// Kinds returns the registered pronouncer kinds.
func (r *Registry) Kinds() []PronouncerKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]PronouncerKind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	return kinds
}

package ingest

import (
	"context"

	"aquaponics/internal/repository"
)

// Registry is the immutable set of provisioned device ids, loaded once at
// startup. Ingestion consults it to drop messages from unknown devices.
type Registry struct {
	known map[string]struct{}
}

// LoadRegistry reads the device table once and freezes the result.
func LoadRegistry(ctx context.Context, devices repository.Devices) (*Registry, error) {
	ids, err := devices.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return &Registry{known: known}, nil
}

// NewRegistry builds a registry from explicit ids, for tests and seeding.
func NewRegistry(ids ...string) *Registry {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return &Registry{known: known}
}

// Knows reports whether the device is provisioned.
func (r *Registry) Knows(deviceID string) bool {
	_, ok := r.known[deviceID]
	return ok
}

package service

import (
	"context"

	"aquaponics/internal/ingest"
	"aquaponics/internal/models"
	"aquaponics/internal/repository"
)

// ReadingsService serves "current value" queries: sensor readings straight
// from the cache, the switch count from the store (its reset semantics live
// in stored state, so there is no in-memory copy to consult).
type ReadingsService struct {
	cache    *ingest.Cache
	switches repository.Switches
}

func NewReadingsService(cache *ingest.Cache, switches repository.Switches) *ReadingsService {
	return &ReadingsService{cache: cache, switches: switches}
}

func (s *ReadingsService) Latest(deviceID string) (models.LatestReading, bool) {
	return s.cache.Get(deviceID)
}

func (s *ReadingsService) SwitchCount(ctx context.Context, deviceID string) (int, error) {
	return s.switches.Count(ctx, deviceID)
}

package service

import (
	"context"

	"aquaponics/internal/ingest"
	"aquaponics/internal/models"
	"aquaponics/internal/repository"
)

// DeviceCredential is one provisioned device as configured, with its
// plaintext password still unhashed.
type DeviceCredential struct {
	DeviceID string `mapstructure:"device_id"`
	Login    string `mapstructure:"login"`
	Password string `mapstructure:"password"`
}

type Authorization interface {
	ProvisionDevices(ctx context.Context, creds []DeviceCredential) error
	Login(ctx context.Context, login, password string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Readings exposes the low-latency current state of a device: the cache for
// sensors, the store for the daily switch count.
type Readings interface {
	Latest(deviceID string) (models.LatestReading, bool)
	SwitchCount(ctx context.Context, deviceID string) (int, error)
}

// History exposes the stored hourly aggregates.
type History interface {
	Humidity(ctx context.Context, f HistoryFilter) ([]models.DataPoint, error)
	Light(ctx context.Context, f HistoryFilter) ([]models.DataPoint, error)
}

type Service struct {
	Authorization
	Readings
	History
}

// AuthConfig carries the token policy.
type AuthConfig struct {
	SigningKey string
	TokenTTL   string // duration string, e.g. "1h"
}

func NewService(repos *repository.Repository, cache *ingest.Cache, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Devices, auth),
		Readings:      NewReadingsService(cache, repos.Switches),
		History:       NewHistoryService(repos.Samples),
	}
}

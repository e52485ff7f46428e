package repository

import (
	"context"
	"database/sql"
	"time"

	"aquaponics/internal/models"
	dbinit "aquaponics/internal/repository/db"
)

// Devices holds the provisioned device set and its credentials.
type Devices interface {
	Seed(ctx context.Context, deviceID, login, passwordHash string) error
	GetByLogin(ctx context.Context, login string) (*models.Device, error)
	ListIDs(ctx context.Context) ([]string, error)
}

// Samples is the write/read surface for the hourly aggregate tables
// (humidity and light). Table selection is by sensor kind name.
type Samples interface {
	Insert(ctx context.Context, table, deviceID string, value float64, hourStart time.Time) error
	Range(ctx context.Context, table string, q RangeQuery) ([]models.DataPoint, error)
}

// Switches is the durable state of the daily light-switch counter.
type Switches interface {
	Get(ctx context.Context, deviceID string) (*models.SwitchCounter, error)
	Insert(ctx context.Context, deviceID string, count int, resetDate string) error
	Reset(ctx context.Context, deviceID string, resetDate string) error
	Increment(ctx context.Context, deviceID string) error
	Count(ctx context.Context, deviceID string) (int, error)
}

// RangeQuery bounds a history read. Start/End are TEXT timestamps in the
// store's layout; UTCShift applies the fixed display offset in the
// projection.
type RangeQuery struct {
	DeviceID string
	Start    string
	End      string
	Limit    int
	UTCShift bool
}

type Repository struct {
	Devices  Devices
	Samples  Samples
	Switches Switches
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Devices:  NewDeviceSQLite(db),
		Samples:  NewSampleSQLite(db),
		Switches: NewSwitchSQLite(db),
	}
}

// InitDB re-exports the sqlite bootstrap so callers wire one package.
func InitDB(path string) (*sql.DB, error) {
	return dbinit.InitDB(path)
}

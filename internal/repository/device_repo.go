package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aquaponics/internal/models"
)

type DeviceSQLite struct {
	db *sql.DB
}

func NewDeviceSQLite(db *sql.DB) *DeviceSQLite {
	return &DeviceSQLite{db: db}
}

// Ensure implementation of the Devices interface at compile time.
var _ Devices = (*DeviceSQLite)(nil)

const (
	insertDeviceSQL    = `INSERT OR IGNORE INTO devices (device_id, login, password_hash) VALUES (?, ?, ?)`
	selectDeviceSQL    = `SELECT device_id, login, password_hash FROM devices WHERE login = ?`
	selectDeviceIDsSQL = `SELECT device_id FROM devices`
)

// Seed inserts a provisioned device, keeping an existing row untouched so
// restarts don't rehash credentials already in the store.
func (r *DeviceSQLite) Seed(ctx context.Context, deviceID, login, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx, insertDeviceSQL, deviceID, login, passwordHash); err != nil {
		return fmt.Errorf("seed device %q: %w", deviceID, err)
	}
	return nil
}

// GetByLogin fetches a device by login. Returns (nil, nil) if not found.
func (r *DeviceSQLite) GetByLogin(ctx context.Context, login string) (*models.Device, error) {
	var d models.Device
	err := r.db.QueryRowContext(ctx, selectDeviceSQL, login).Scan(&d.DeviceID, &d.Login, &d.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select device by login %q: %w", login, err)
	}
	return &d, nil
}

// ListIDs returns every provisioned device id, for the ingestion registry.
func (r *DeviceSQLite) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectDeviceIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("select device ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aquaponics/internal/models"
)

type SwitchSQLite struct {
	db *sql.DB
}

func NewSwitchSQLite(db *sql.DB) *SwitchSQLite {
	return &SwitchSQLite{db: db}
}

var _ Switches = (*SwitchSQLite)(nil)

const (
	selectSwitchSQL    = `SELECT device_id, count, last_reset_date FROM light_switches WHERE device_id = ?`
	insertSwitchSQL    = `INSERT INTO light_switches (device_id, count, last_reset_date) VALUES (?, ?, ?)`
	resetSwitchSQL     = `UPDATE light_switches SET count = 1, last_reset_date = ? WHERE device_id = ?`
	incrementSwitchSQL = `UPDATE light_switches SET count = count + 1 WHERE device_id = ?`
	selectCountSQL     = `SELECT count FROM light_switches WHERE device_id = ?`
)

// Get fetches the counter row for a device. Returns (nil, nil) if absent.
func (r *SwitchSQLite) Get(ctx context.Context, deviceID string) (*models.SwitchCounter, error) {
	var c models.SwitchCounter
	err := r.db.QueryRowContext(ctx, selectSwitchSQL, deviceID).Scan(&c.DeviceID, &c.Count, &c.LastResetDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select light_switches for %q: %w", deviceID, err)
	}
	return &c, nil
}

func (r *SwitchSQLite) Insert(ctx context.Context, deviceID string, count int, resetDate string) error {
	if _, err := r.db.ExecContext(ctx, insertSwitchSQL, deviceID, count, resetDate); err != nil {
		return fmt.Errorf("insert light_switches for %q: %w", deviceID, err)
	}
	return nil
}

func (r *SwitchSQLite) Reset(ctx context.Context, deviceID string, resetDate string) error {
	if _, err := r.db.ExecContext(ctx, resetSwitchSQL, resetDate, deviceID); err != nil {
		return fmt.Errorf("reset light_switches for %q: %w", deviceID, err)
	}
	return nil
}

func (r *SwitchSQLite) Increment(ctx context.Context, deviceID string) error {
	if _, err := r.db.ExecContext(ctx, incrementSwitchSQL, deviceID); err != nil {
		return fmt.Errorf("increment light_switches for %q: %w", deviceID, err)
	}
	return nil
}

// Count returns the current activation count, 0 when the device has no row.
func (r *SwitchSQLite) Count(ctx context.Context, deviceID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, selectCountSQL, deviceID).Scan(&n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("select count for %q: %w", deviceID, err)
	}
	return n, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aquaponics/internal/models"
)

type SampleSQLite struct {
	db *sql.DB
}

func NewSampleSQLite(db *sql.DB) *SampleSQLite {
	return &SampleSQLite{db: db}
}

var _ Samples = (*SampleSQLite)(nil)

// Tables the sample repo is allowed to touch. Table names are interpolated
// into SQL, so anything else must be refused.
const (
	TableHumidity = "humidity"
	TableLight    = "light"
)

func validTable(table string) bool {
	return table == TableHumidity || table == TableLight
}

// utcShiftProjection rewrites stored local timestamps for display with the
// fixed three-hour offset the dashboard expects.
const utcShiftProjection = `strftime('%Y-%m-%d %H:%M:%S', datetime(timestamp, '-3 hours'))`

// Insert stores one hourly aggregate, timestamped at the hour's start.
func (r *SampleSQLite) Insert(ctx context.Context, table, deviceID string, value float64, hourStart time.Time) error {
	if !validTable(table) {
		return fmt.Errorf("unknown sample table %q", table)
	}
	q := fmt.Sprintf(`INSERT INTO %s (device_id, value, timestamp) VALUES (?, ?, ?)`, table)
	_, err := r.db.ExecContext(ctx, q, deviceID, value, hourStart.UTC().Format(models.TimeLayout))
	if err != nil {
		return fmt.Errorf("insert %s sample for %q: %w", table, deviceID, err)
	}
	return nil
}

// Range returns stored aggregates for a device bounded by [Start, End],
// ordered ascending by timestamp and capped at Limit rows.
func (r *SampleSQLite) Range(ctx context.Context, table string, q RangeQuery) ([]models.DataPoint, error) {
	if !validTable(table) {
		return nil, fmt.Errorf("unknown sample table %q", table)
	}

	projection := "timestamp"
	if q.UTCShift {
		projection = utcShiftProjection
	}
	query := fmt.Sprintf(
		`SELECT value, %s as timestamp FROM %s WHERE device_id = ? AND timestamp BETWEEN ? AND ? ORDER BY timestamp ASC LIMIT ?`,
		projection, table,
	)

	rows, err := r.db.QueryContext(ctx, query, q.DeviceID, q.Start, q.End, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("select %s range for %q: %w", table, q.DeviceID, err)
	}
	defer rows.Close()

	out := make([]models.DataPoint, 0, 64)
	for rows.Next() {
		var p models.DataPoint
		if err := rows.Scan(&p.Value, &p.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

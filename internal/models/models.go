package models

import "time"

// Device is a provisioned field device. The registry of devices is loaded
// once at startup and never mutated by ingestion.
type Device struct {
	DeviceID     string `json:"device_id"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"` // don't expose hash
}

// LatestReading is the last-known state of one device. Ephemeral: it lives
// only in the in-process cache and dies with the process.
type LatestReading struct {
	DeviceID string  `json:"device_id"`
	Humidity float64 `json:"humidity"`
	Light    float64 `json:"light"`
	Water    int     `json:"water"` // 0 absent, 1 present
}

// DataPoint is one stored hourly aggregate, as returned by history queries.
// Timestamp is the hour's start in the store's TEXT layout.
type DataPoint struct {
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
}

// SwitchCounter tracks light activations per device since the last daily
// reset. Count reflects activations since LastResetDate.
type SwitchCounter struct {
	DeviceID      string `json:"device_id"`
	Count         int    `json:"count"`
	LastResetDate string `json:"last_reset_date"` // YYYY-MM-DD
}

// TimeLayout is the TEXT timestamp layout used in the sqlite tables.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar-date layout used by the switch counter.
const DateLayout = "2006-01-02"

// HourStart truncates t to the start of its hour in UTC.
func HourStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

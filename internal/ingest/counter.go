package ingest

import (
	"context"
	"sync"
	"time"

	"aquaponics/internal/models"
	"aquaponics/internal/repository"
)

// Counter maintains the per-device daily activation count against the
// store. The read-modify-write is serialized per device so concurrent edges
// for the same device never lose an increment.
type Counter struct {
	switches repository.Switches

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCounter(switches repository.Switches) *Counter {
	return &Counter{
		switches: switches,
		locks:    make(map[string]*sync.Mutex),
	}
}

// deviceLock returns the mutex owning deviceID's counter state.
func (c *Counter) deviceLock(deviceID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[deviceID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[deviceID] = l
	}
	return l
}

// RecordActivation applies one activation edge: first edge ever inserts
// {1, today}; first edge of a new calendar day resets to {1, today};
// otherwise the count is incremented. "Today" is the process-local UTC date
// at the moment the edge is processed.
func (c *Counter) RecordActivation(ctx context.Context, deviceID string) error {
	l := c.deviceLock(deviceID)
	l.Lock()
	defer l.Unlock()

	today := time.Now().UTC().Format(models.DateLayout)

	row, err := c.switches.Get(ctx, deviceID)
	if err != nil {
		return err
	}
	switch {
	case row == nil:
		return c.switches.Insert(ctx, deviceID, 1, today)
	case row.LastResetDate != today:
		return c.switches.Reset(ctx, deviceID, today)
	default:
		return c.switches.Increment(ctx, deviceID)
	}
}

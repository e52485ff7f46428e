package ingest

import (
	"sync"

	"aquaponics/internal/models"
)

// Cache is the process-wide latest-value map: deviceId → last-known
// readings. It is a derived, ephemeral view — it never shrinks and never
// persists; restart starts empty.
type Cache struct {
	mu       sync.RWMutex
	readings map[string]*models.LatestReading
}

func NewCache() *Cache {
	return &Cache{readings: make(map[string]*models.LatestReading)}
}

// get returns the entry for a device, creating a zeroed one on first
// sighting. Caller must hold mu.
func (c *Cache) get(deviceID string) *models.LatestReading {
	r, ok := c.readings[deviceID]
	if !ok {
		r = &models.LatestReading{DeviceID: deviceID}
		c.readings[deviceID] = r
	}
	return r
}

// SetHumidity upserts the device's latest humidity reading.
func (c *Cache) SetHumidity(deviceID string, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.get(deviceID).Humidity = v
}

// SetLight upserts the device's latest light reading.
func (c *Cache) SetLight(deviceID string, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.get(deviceID).Light = v
}

// SetWater upserts the device's latest water-presence flag.
func (c *Cache) SetWater(deviceID string, v int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.get(deviceID).Water = v
}

// Get returns a copy of the device's latest readings and whether the device
// has ever reported.
func (c *Cache) Get(deviceID string) (models.LatestReading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.readings[deviceID]
	if !ok {
		return models.LatestReading{}, false
	}
	return *r, true
}

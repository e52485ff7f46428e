package ingest

import (
	"context"
	"math"
	"sync"
	"time"

	"aquaponics/internal/models"
)

// Sink receives sealed-bucket means for persistence.
type Sink interface {
	Enqueue(WriteRequest) bool
}

type bucketKey struct {
	deviceID string
	kind     string
}

type bucket struct {
	hourStart time.Time
	values    []float64
}

// Buffer accumulates numeric samples into per-(device, kind) hour buckets.
// A bucket is sealed the instant a sample with a different hour arrives for
// its key: the mean of its values, rounded to one decimal, goes to the sink
// timestamped at the hour's start. Run provides a periodic sweep so the last
// partial hour of a quiet sensor is not lost.
type Buffer struct {
	mu      sync.Mutex
	buckets map[bucketKey]*bucket
	sink    Sink
}

func NewBuffer(sink Sink) *Buffer {
	return &Buffer{
		buckets: make(map[bucketKey]*bucket),
		sink:    sink,
	}
}

// roundMean averages vs and rounds to one decimal place.
func roundMean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return math.Round(sum/float64(len(vs))*10) / 10
}

// flushLocked seals b and hands its mean to the sink. Caller must hold mu.
func (f *Buffer) flushLocked(key bucketKey, b *bucket) {
	if len(b.values) == 0 {
		return
	}
	f.sink.Enqueue(WriteRequest{
		Table:     key.kind,
		DeviceID:  key.deviceID,
		Value:     roundMean(b.values),
		HourStart: b.hourStart,
	})
}

// Add appends a sample to its key's live bucket, rolling the bucket over
// first when the sample's hour differs from the bucket's.
func (f *Buffer) Add(deviceID, kind string, value float64, at time.Time) {
	key := bucketKey{deviceID: deviceID, kind: kind}
	hour := models.HourStart(at)

	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.buckets[key]
	if !ok || !b.hourStart.Equal(hour) {
		if ok {
			f.flushLocked(key, b)
		}
		b = &bucket{hourStart: hour}
		f.buckets[key] = b
	}
	b.values = append(b.values, value)
}

// sweep flushes and removes every bucket whose hour has passed. A later
// sample for a swept key starts a fresh bucket in the current hour, so a
// single hour still persists at most one mean per key.
func (f *Buffer) sweep(now time.Time) {
	hour := models.HourStart(now)

	f.mu.Lock()
	defer f.mu.Unlock()

	for key, b := range f.buckets {
		if b.hourStart.Before(hour) {
			f.flushLocked(key, b)
			delete(f.buckets, key)
		}
	}
}

// Run sweeps stale buckets at the given interval until ctx is canceled.
func (f *Buffer) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			f.sweep(now)
		}
	}
}

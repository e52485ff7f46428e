package ingest

import (
	"context"
	"time"

	"aquaponics/internal/logger"
	"aquaponics/internal/repository"
)

// WriteRequest is one pending insert into an aggregate table.
type WriteRequest struct {
	Table     string
	DeviceID  string
	Value     float64
	HourStart time.Time
}

// queueDepth bounds the persistence queue. Enqueue never blocks ingestion:
// when the queue is full the request is dropped and logged.
const queueDepth = 256

// Writer is the strictly serialized write path into the durable store. A
// single worker drains a FIFO queue, so at most one insert is in flight at
// any time and slow storage never backs up message delivery.
type Writer struct {
	samples repository.Samples
	queue   chan WriteRequest
	log     *logger.Logger
}

func NewWriter(samples repository.Samples, log *logger.Logger) *Writer {
	return &Writer{
		samples: samples,
		queue:   make(chan WriteRequest, queueDepth),
		log:     log,
	}
}

// Enqueue submits a write request without blocking. Returns false when the
// queue is saturated and the request was dropped.
func (w *Writer) Enqueue(req WriteRequest) bool {
	select {
	case w.queue <- req:
		return true
	default:
		w.log.Errorw("persistence queue full, dropping write",
			"table", req.Table, "device_id", req.DeviceID, "hour", req.HourStart)
		return false
	}
}

// Run drains the queue until ctx is canceled. A failed insert is logged and
// abandoned; the worker proceeds to the next request.
func (w *Writer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.queue:
			if err := w.samples.Insert(ctx, req.Table, req.DeviceID, req.Value, req.HourStart); err != nil {
				w.log.Errorw("sample insert failed",
					"table", req.Table, "device_id", req.DeviceID, "hour", req.HourStart, "err", err)
			}
		}
	}
}

package ingest

import (
	"testing"
	"time"
)

// recordingSink captures sealed-bucket writes in order.
type recordingSink struct {
	reqs []WriteRequest
}

func (s *recordingSink) Enqueue(req WriteRequest) bool {
	s.reqs = append(s.reqs, req)
	return true
}

func at(hour, min int) time.Time {
	return time.Date(2026, 8, 31, hour, min, 0, 0, time.UTC)
}

func TestBuffer_RolloverPersistsRoundedMean(t *testing.T) {
	sink := &recordingSink{}
	b := NewBuffer(sink)

	b.Add("dev1", KindHumidity, 10, at(9, 5))
	b.Add("dev1", KindHumidity, 11, at(9, 20))
	b.Add("dev1", KindHumidity, 12.5, at(9, 55))

	if len(sink.reqs) != 0 {
		t.Fatalf("no writes expected before rollover, got %d", len(sink.reqs))
	}

	// first sample of the next hour seals the 09:00 bucket
	b.Add("dev1", KindHumidity, 50, at(10, 1))

	if len(sink.reqs) != 1 {
		t.Fatalf("expected 1 write after rollover, got %d", len(sink.reqs))
	}
	req := sink.reqs[0]
	if req.Table != KindHumidity || req.DeviceID != "dev1" {
		t.Errorf("unexpected write target: %+v", req)
	}
	// mean(10, 11, 12.5) = 11.1666... → 11.2
	if req.Value != 11.2 {
		t.Errorf("mean = %v, want 11.2", req.Value)
	}
	if !req.HourStart.Equal(at(9, 0)) {
		t.Errorf("hour start = %v, want %v", req.HourStart, at(9, 0))
	}
}

func TestBuffer_KeysAreIndependent(t *testing.T) {
	sink := &recordingSink{}
	b := NewBuffer(sink)

	b.Add("dev1", KindHumidity, 10, at(9, 0))
	b.Add("dev1", KindLight, 600, at(9, 0))
	b.Add("dev2", KindHumidity, 70, at(9, 0))

	// rolling dev1/humidity must not seal the other keys
	b.Add("dev1", KindHumidity, 20, at(10, 0))

	if len(sink.reqs) != 1 {
		t.Fatalf("expected 1 write, got %d", len(sink.reqs))
	}
	if sink.reqs[0].DeviceID != "dev1" || sink.reqs[0].Table != KindHumidity {
		t.Errorf("wrong key sealed: %+v", sink.reqs[0])
	}
}

func TestBuffer_SweepFlushesStaleBuckets(t *testing.T) {
	sink := &recordingSink{}
	b := NewBuffer(sink)

	b.Add("dev1", KindLight, 100, at(9, 40))
	b.Add("dev1", KindLight, 200, at(9, 50))

	// sweep within the same hour must not flush
	b.sweep(at(9, 59))
	if len(sink.reqs) != 0 {
		t.Fatalf("sweep flushed a live bucket: %+v", sink.reqs)
	}

	// once the hour turns, the quiet sensor's bucket is persisted
	b.sweep(at(10, 0))
	if len(sink.reqs) != 1 {
		t.Fatalf("expected 1 write after sweep, got %d", len(sink.reqs))
	}
	if sink.reqs[0].Value != 150 {
		t.Errorf("mean = %v, want 150", sink.reqs[0].Value)
	}
	if !sink.reqs[0].HourStart.Equal(at(9, 0)) {
		t.Errorf("hour start = %v, want %v", sink.reqs[0].HourStart, at(9, 0))
	}
}

func TestBuffer_NoDoublePersistAfterSweep(t *testing.T) {
	sink := &recordingSink{}
	b := NewBuffer(sink)

	b.Add("dev1", KindLight, 100, at(9, 40))
	b.sweep(at(10, 0))

	// a later sample opens a fresh bucket in the current hour; rolling it
	// over must not re-persist 09:00
	b.Add("dev1", KindLight, 300, at(10, 5))
	b.Add("dev1", KindLight, 400, at(11, 0))

	if len(sink.reqs) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(sink.reqs))
	}
	if !sink.reqs[1].HourStart.Equal(at(10, 0)) {
		t.Errorf("second write hour = %v, want %v", sink.reqs[1].HourStart, at(10, 0))
	}
	if sink.reqs[1].Value != 300 {
		t.Errorf("second write value = %v, want 300", sink.reqs[1].Value)
	}
}

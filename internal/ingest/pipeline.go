package ingest

import (
	"context"
	"time"

	"aquaponics/internal/logger"
)

// counterTimeout bounds the counter's store round-trip so a stuck write
// cannot pin a device's lock forever.
const counterTimeout = 5 * time.Second

// Pipeline ties the ingestion components together: route, normalize, then
// update the cache, the hour buffer, or the daily counter. Every failure is
// isolated to the message that triggered it.
type Pipeline struct {
	registry *Registry
	cache    *Cache
	buffer   *Buffer
	counter  *Counter
	log      *logger.Logger
}

func NewPipeline(registry *Registry, cache *Cache, buffer *Buffer, counter *Counter, log *logger.Logger) *Pipeline {
	return &Pipeline{
		registry: registry,
		cache:    cache,
		buffer:   buffer,
		counter:  counter,
		log:      log,
	}
}

// HandleMessage processes one transport message. It never returns an error:
// ingestion has no synchronous caller to report to, so rejects are logged
// and dropped.
func (p *Pipeline) HandleMessage(topic string, payload []byte) {
	route, err := ParseTopic(topic)
	if err != nil {
		p.log.Warnw("message rejected", "topic", topic, "err", err)
		return
	}

	// Uniform policy: every ingestion path checks the registry.
	if !p.registry.Knows(route.DeviceID) {
		p.log.Warnw("unknown device", "device_id", route.DeviceID, "topic", topic)
		return
	}

	msg := string(payload)

	switch route.Kind {
	case KindWater:
		level := NormalizeWater(msg)
		p.cache.SetWater(route.DeviceID, level)
		p.log.Debugw("water level", "device_id", route.DeviceID, "water", level)

	case KindSwitch:
		if !IsActivation(msg) {
			return
		}
		p.log.Debugw("light switch activation", "device_id", route.DeviceID)
		ctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
		defer cancel()
		if err := p.counter.RecordActivation(ctx, route.DeviceID); err != nil {
			p.log.Errorw("switch counter update failed", "device_id", route.DeviceID, "err", err)
		}

	case KindHumidity, KindLight:
		value, err := NormalizeNumeric(msg)
		if err != nil {
			p.log.Warnw("message rejected", "topic", topic, "err", err)
			return
		}
		now := time.Now().UTC()
		if route.Kind == KindHumidity {
			p.cache.SetHumidity(route.DeviceID, value)
		} else {
			p.cache.SetLight(route.DeviceID, value)
		}
		p.buffer.Add(route.DeviceID, route.Kind, value, now)
		p.log.Debugw("sample accepted", "device_id", route.DeviceID, "kind", route.Kind, "value", value)

	default:
		p.log.Warnw("unknown sensor kind", "topic", topic, "kind", route.Kind)
	}
}

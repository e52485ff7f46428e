package ingest

import (
	"fmt"
	"strings"
)

// Sensor kinds as they appear in the topic's third segment.
const (
	KindHumidity = "humidity"
	KindLight    = "light"
	KindWater    = "water"
	KindSwitch   = "VklSvet"
)

// Route is a parsed topic: which device spoke and what it spoke about.
type Route struct {
	DeviceID string
	Kind     string
}

const topicSegments = 3 // namespace/deviceId/sensorKind

// ParseTopic splits a transport topic into its route. Topics that do not
// have exactly three segments are rejected.
func ParseTopic(topic string) (Route, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != topicSegments {
		return Route{}, fmt.Errorf("invalid topic format: %q", topic)
	}
	return Route{DeviceID: parts[1], Kind: parts[2]}, nil
}

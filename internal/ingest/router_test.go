package ingest

import "testing"

func TestParseTopic_Valid(t *testing.T) {
	r, err := ParseTopic("aquaponics/dev1/humidity")
	if err != nil {
		t.Fatalf("ParseTopic: %v", err)
	}
	if r.DeviceID != "dev1" {
		t.Errorf("expected device dev1, got %q", r.DeviceID)
	}
	if r.Kind != KindHumidity {
		t.Errorf("expected kind humidity, got %q", r.Kind)
	}
}

func TestParseTopic_RejectsWrongShape(t *testing.T) {
	for _, topic := range []string{
		"aquaponics/dev1",
		"aquaponics/dev1/humidity/extra",
		"",
		"humidity",
	} {
		if _, err := ParseTopic(topic); err == nil {
			t.Errorf("expected error for topic %q", topic)
		}
	}
}

package ingest

import "testing"

func TestCache_FirstWriteInitializesOtherFields(t *testing.T) {
	c := NewCache()

	c.SetHumidity("dev1", 42.5)

	r, ok := c.Get("dev1")
	if !ok {
		t.Fatal("expected dev1 to be present")
	}
	if r.Humidity != 42.5 {
		t.Errorf("humidity = %v, want 42.5", r.Humidity)
	}
	if r.Light != 0 || r.Water != 0 {
		t.Errorf("expected zeroed light/water, got %v/%v", r.Light, r.Water)
	}
}

func TestCache_UpdatePreservesOtherFields(t *testing.T) {
	c := NewCache()

	c.SetHumidity("dev1", 10)
	c.SetLight("dev1", 500)
	c.SetWater("dev1", 1)
	c.SetHumidity("dev1", 11)

	r, _ := c.Get("dev1")
	if r.Humidity != 11 || r.Light != 500 || r.Water != 1 {
		t.Errorf("unexpected reading: %+v", r)
	}
}

func TestCache_UnknownDevice(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("ghost"); ok {
		t.Fatal("expected not-found for a device that never reported")
	}
}

func TestCache_GetReturnsCopy(t *testing.T) {
	c := NewCache()
	c.SetWater("dev1", 1)

	r, _ := c.Get("dev1")
	r.Water = 0

	again, _ := c.Get("dev1")
	if again.Water != 1 {
		t.Error("mutating the returned reading must not affect the cache")
	}
}

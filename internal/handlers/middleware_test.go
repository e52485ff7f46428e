package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aquaponics/internal/models"
	"aquaponics/internal/service"
)

func getWithToken(r http.Handler, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_MissingToken(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	w := getWithToken(r, "/humidity?device_id=dev1", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", w.Code)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: "dev1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/humidity?device_id=dev1", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", w.Code)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuth{parseErr: errors.New("token is expired")}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := getWithToken(r, "/humidity?device_id=dev1", "expired")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", w.Code)
	}
}

func TestMiddleware_CrossDeviceAccessForbidden(t *testing.T) {
	// Valid token for dev1, query for dev2: always 403, data existence is
	// irrelevant.
	readings := &mockReadings{reading: models.LatestReading{Humidity: 50}, found: true}
	r := newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: "dev1"},
		Readings:      readings,
	})

	for _, path := range []string{
		"/humidity?device_id=dev2",
		"/lightlevel?device_id=dev2",
		"/waterlevel?device_id=dev2",
		"/lightswitches?device_id=dev2",
		"/data/humidity?device_id=dev2",
		"/data/light?device_id=dev2",
	} {
		w := getWithToken(r, path, "tok")
		if w.Code != http.StatusForbidden {
			t.Errorf("%s: status=%d, want 403", path, w.Code)
		}
	}
	if readings.lastLatestDevice != "" {
		t.Error("service must not be consulted for a cross-device request")
	}
}

func TestMiddleware_MissingDeviceParamForbidden(t *testing.T) {
	r := newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: "dev1"},
		Readings:      &mockReadings{found: true},
	})

	w := getWithToken(r, "/humidity", "tok")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", w.Code)
	}
}

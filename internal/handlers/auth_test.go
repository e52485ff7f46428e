package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aquaponics/internal/service"
)

func postLogin(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	auth := &mockAuth{loginToken: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postLogin(r, `{"login":"device1","password":"123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}
	if auth.lastLogin != "device1" || auth.lastPassword != "123" {
		t.Errorf("credentials not passed through: %q/%q", auth.lastLogin, auth.lastPassword)
	}
}

func TestLogin_FailureIsUndifferentiated(t *testing.T) {
	// Unknown login and wrong password must produce the identical response.
	var bodies []string
	for _, failure := range []error{service.ErrUnknownLogin, service.ErrInvalidPassword} {
		auth := &mockAuth{loginErr: failure}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := postLogin(r, `{"login":"device1","password":"nope"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("err=%v: status=%d, want 401", failure, w.Code)
		}
		bodies = append(bodies, w.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Errorf("login failure bodies differ: %q vs %q", bodies[0], bodies[1])
	}
}

func TestLogin_MissingFields(t *testing.T) {
	auth := &mockAuth{loginErr: errors.New("should not be called")}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postLogin(r, `{"login":"device1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if auth.lastLogin != "" {
		t.Error("service must not be called for an invalid body")
	}
}

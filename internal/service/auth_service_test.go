package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"aquaponics/internal/models"
)

// mockDeviceRepo is a lightweight in-test mock for repository.Devices.
type mockDeviceRepo struct {
	devices map[string]*models.Device

	seedCalls []string
}

func newMockDeviceRepo() *mockDeviceRepo {
	return &mockDeviceRepo{devices: make(map[string]*models.Device)}
}

func (m *mockDeviceRepo) Seed(_ context.Context, deviceID, login, passwordHash string) error {
	m.seedCalls = append(m.seedCalls, deviceID)
	m.devices[login] = &models.Device{DeviceID: deviceID, Login: login, PasswordHash: passwordHash}
	return nil
}

func (m *mockDeviceRepo) GetByLogin(_ context.Context, login string) (*models.Device, error) {
	return m.devices[login], nil
}

func (m *mockDeviceRepo) ListIDs(context.Context) ([]string, error) {
	var ids []string
	for _, d := range m.devices {
		ids = append(ids, d.DeviceID)
	}
	return ids, nil
}

func newTestAuth(repo *mockDeviceRepo) *AuthService {
	return NewAuthService(repo, AuthConfig{SigningKey: "test-signing-key", TokenTTL: "1h"})
}

func seedDevice(t *testing.T, repo *mockDeviceRepo, deviceID, login, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	_ = repo.Seed(context.Background(), deviceID, login, string(hash))
}

func TestAuthService_LoginAndParseTokenRoundTrip(t *testing.T) {
	repo := newMockDeviceRepo()
	seedDevice(t, repo, "dev1", "device1", "123")
	svc := newTestAuth(repo)

	token, err := svc.Login(context.Background(), "device1", "123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	deviceID, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if deviceID != "dev1" {
		t.Errorf("deviceID = %q, want dev1", deviceID)
	}
}

func TestAuthService_UnknownLogin(t *testing.T) {
	svc := newTestAuth(newMockDeviceRepo())

	_, err := svc.Login(context.Background(), "nobody", "123")
	if !errors.Is(err, ErrUnknownLogin) {
		t.Fatalf("expected ErrUnknownLogin, got %v", err)
	}
}

func TestAuthService_WrongPassword(t *testing.T) {
	repo := newMockDeviceRepo()
	seedDevice(t, repo, "dev1", "device1", "123")
	svc := newTestAuth(repo)

	_, err := svc.Login(context.Background(), "device1", "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_ExpiredTokenFailsClosed(t *testing.T) {
	repo := newMockDeviceRepo()
	seedDevice(t, repo, "dev1", "device1", "123")
	svc := newTestAuth(repo)
	svc.tokenTTL = -time.Minute // issue already-expired tokens

	token, err := svc.Login(context.Background(), "device1", "123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestAuthService_TamperedTokenRejected(t *testing.T) {
	repo := newMockDeviceRepo()
	seedDevice(t, repo, "dev1", "device1", "123")
	svc := newTestAuth(repo)

	token, err := svc.Login(context.Background(), "device1", "123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := NewAuthService(repo, AuthConfig{SigningKey: "other-key", TokenTTL: "1h"})
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("expected token signed with a different key to be rejected")
	}
	if _, err := svc.ParseToken("not.a.token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}

func TestAuthService_ProvisionHashesPasswords(t *testing.T) {
	repo := newMockDeviceRepo()
	svc := newTestAuth(repo)

	creds := []DeviceCredential{
		{DeviceID: "dev1", Login: "device1", Password: "123"},
		{DeviceID: "dev2", Login: "device2", Password: "456"},
	}
	if err := svc.ProvisionDevices(context.Background(), creds); err != nil {
		t.Fatalf("ProvisionDevices: %v", err)
	}
	if len(repo.seedCalls) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(repo.seedCalls))
	}

	stored := repo.devices["device1"]
	if stored.PasswordHash == "123" {
		t.Error("password must be hashed before seeding")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_ProvisionRejectsEmptyPassword(t *testing.T) {
	svc := newTestAuth(newMockDeviceRepo())

	err := svc.ProvisionDevices(context.Background(), []DeviceCredential{
		{DeviceID: "dev1", Login: "device1", Password: ""},
	})
	if err == nil {
		t.Fatal("expected error for empty password")
	}
}

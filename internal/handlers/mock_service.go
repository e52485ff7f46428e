package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"aquaponics/internal/models"
	"aquaponics/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken string
	loginErr   error
	parseID    string
	parseErr   error

	lastLogin      string
	lastPassword   string
	lastParseToken string
}

func (m *mockAuth) ProvisionDevices(ctx context.Context, creds []service.DeviceCredential) error {
	return nil
}

func (m *mockAuth) Login(ctx context.Context, login, password string) (string, error) {
	m.lastLogin = login
	m.lastPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	if m.parseErr != nil {
		return "", m.parseErr
	}
	return m.parseID, nil
}

type mockReadings struct {
	reading  models.LatestReading
	found    bool
	count    int
	countErr error

	lastLatestDevice string
	lastCountDevice  string
}

func (m *mockReadings) Latest(deviceID string) (models.LatestReading, bool) {
	m.lastLatestDevice = deviceID
	return m.reading, m.found
}

func (m *mockReadings) SwitchCount(ctx context.Context, deviceID string) (int, error) {
	m.lastCountDevice = deviceID
	return m.count, m.countErr
}

type mockHistory struct {
	points []models.DataPoint
	err    error

	lastKind   string
	lastFilter service.HistoryFilter
}

func (m *mockHistory) Humidity(ctx context.Context, f service.HistoryFilter) ([]models.DataPoint, error) {
	m.lastKind = "humidity"
	m.lastFilter = f
	return m.points, m.err
}

func (m *mockHistory) Light(ctx context.Context, f service.HistoryFilter) ([]models.DataPoint, error) {
	m.lastKind = "light"
	m.lastFilter = f
	return m.points, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

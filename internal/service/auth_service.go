package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"aquaponics/internal/repository"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows. Handlers collapse login failures into one
// undifferentiated client error; only logs carry the distinction.
var (
	ErrUnknownLogin    = errors.New("unknown login")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthService verifies device credentials and issues bearer tokens bound to
// a device identity.
type AuthService struct {
	devices    repository.Devices
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(devices repository.Devices, cfg AuthConfig) *AuthService {
	ttl := defaultTokenTTL
	if cfg.TokenTTL != "" {
		if d, err := time.ParseDuration(cfg.TokenTTL); err == nil && d > 0 {
			ttl = d
		}
	}
	return &AuthService{
		devices:    devices,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
	}
}

// ProvisionDevices hashes each configured password and seeds the device
// table. Existing rows are left untouched.
func (s *AuthService) ProvisionDevices(ctx context.Context, creds []DeviceCredential) error {
	for _, c := range creds {
		hash, err := hashPassword(c.Password)
		if err != nil {
			return fmt.Errorf("provision device %q: %w", c.DeviceID, err)
		}
		if err := s.devices.Seed(ctx, c.DeviceID, c.Login, hash); err != nil {
			return err
		}
	}
	return nil
}

// Claims bind a token to one device.
type Claims struct {
	jwt.RegisteredClaims
	DeviceID string `json:"device_id"`
}

// Login validates credentials and returns a signed token bound to the
// device.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	d, err := s.devices.GetByLogin(ctx, login)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", ErrUnknownLogin
	}
	if err := verifyPassword(d.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}
	return s.issueToken(d.DeviceID)
}

// ParseToken verifies signature and expiry and returns the bound deviceID.
// Expired or malformed tokens fail closed.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.DeviceID == "" {
		return "", ErrInvalidToken
	}
	return claims.DeviceID, nil
}

func (s *AuthService) issueToken(deviceID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		DeviceID: deviceID,
	})
	return token.SignedString(s.signingKey)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

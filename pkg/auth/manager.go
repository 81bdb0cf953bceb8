package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/barangay-connect/backend/internal/config"
)

const (
	AudienceAccess       = "access"
	AudienceRegistration = "registration"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and parses the JWTs of account holders and of registration sessions.
type TokenManager interface {
	NewJWT(accountID uuid.UUID) (string, time.Duration, error)
	Parse(accessToken string) (uuid.UUID, error)
	NewRegistrationToken(sessionID uuid.UUID) (string, time.Duration, error)
	ParseRegistrationToken(token string) (uuid.UUID, error)
}

type Manager struct {
	signingKey           string
	accessTokenTTL       time.Duration
	registrationTokenTTL time.Duration
	now                  func() time.Time
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.AccessTokenTTL == 0 {
		return nil, errors.New("empty access token ttl")
	}

	if cfg.RegistrationTokenTTL == 0 {
		return nil, errors.New("empty registration token ttl")
	}

	return &Manager{
		signingKey:           cfg.SigningKey,
		accessTokenTTL:       cfg.AccessTokenTTL,
		registrationTokenTTL: cfg.RegistrationTokenTTL,
		now:                  time.Now,
	}, nil
}

func (m *Manager) NewJWT(accountID uuid.UUID) (string, time.Duration, error) {
	return m.sign(accountID, AudienceAccess, m.accessTokenTTL)
}

func (m *Manager) Parse(accessToken string) (uuid.UUID, error) {
	return m.parse(accessToken, AudienceAccess)
}

func (m *Manager) NewRegistrationToken(sessionID uuid.UUID) (string, time.Duration, error) {
	return m.sign(sessionID, AudienceRegistration, m.registrationTokenTTL)
}

func (m *Manager) ParseRegistrationToken(token string) (uuid.UUID, error) {
	return m.parse(token, AudienceRegistration)
}

func (m *Manager) sign(subject uuid.UUID, audience string, ttl time.Duration) (string, time.Duration, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject.String(),
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString([]byte(m.signingKey))
	if err != nil {
		return "", 0, fmt.Errorf("sign jwt failed: %w", err)
	}

	return signed, ttl, nil
}

func (m *Manager) parse(raw string, audience string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(m.signingKey), nil
	},
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}

	return id, nil
}

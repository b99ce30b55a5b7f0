// Package session carries a page's AppState between requests as a signed token.
//
// The token lives in the page, not on the server: a reload without it starts over on
// the welcome screen, which is how the app has always behaved.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/amigo/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired state token")
	ErrMissingToken = errors.New("state token required")
)

// Claims represents the custom JWT claims for a page's state.
type Claims struct {
	State models.AppState `json:"st"`
	jwt.RegisteredClaims
}

// Manager signs and validates state tokens.
type Manager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// NewManager creates a new token manager with the given secret and token duration.
// secretKey should be a strong random string (e.g., 32 bytes).
func NewManager(secretKey string, tokenDuration time.Duration) *Manager {
	return &Manager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// Encode signs st for origin.
func (m *Manager) Encode(origin string, st models.AppState) (string, error) {
	now := m.now()
	claims := &Claims{
		State: st,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   origin,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Decode validates a token issued to origin and returns its state.
func (m *Manager) Decode(origin, tokenString string) (models.AppState, error) {
	if tokenString == "" {
		return models.AppState{}, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithSubject(origin),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return models.AppState{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.State.Session.Stage.Valid() {
		return models.AppState{}, ErrInvalidToken
	}

	return claims.State, nil
}

// Restore is Decode for page handlers: anything that does not decode is a fresh page.
func (m *Manager) Restore(origin, tokenString string) models.AppState {
	st, err := m.Decode(origin, tokenString)
	if err != nil {
		return models.NewAppState()
	}
	return st
}

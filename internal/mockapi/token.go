package mockapi

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vitalsalud/citas-core/internal/models"
)

// Claims carried by access tokens issued at login
type Claims struct {
	UserID uint        `json:"user_id"`
	Guard  string      `json:"guard"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrRevokedToken = errors.New("token has been revoked")
)

// TokenManager issues and validates HS256 access tokens. Logout
// revokes the token's jti so a stolen bearer cannot outlive the
// session that minted it.
type TokenManager struct {
	secret []byte
	ttl    time.Duration

	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: make(map[string]struct{}),
	}
}

// Issue mints a signed token for the given user identity.
func (m *TokenManager) Issue(userID uint, guard string, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Guard:  guard,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a bearer token and returns its claims.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	m.mu.RLock()
	_, gone := m.revoked[claims.ID]
	m.mu.RUnlock()
	if gone {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke marks the token's jti as spent.
func (m *TokenManager) Revoke(tokenString string) {
	claims, err := m.Validate(tokenString)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.revoked[claims.ID] = struct{}{}
	m.mu.Unlock()
}

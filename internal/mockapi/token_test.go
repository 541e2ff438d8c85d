package mockapi

import (
	"errors"
	"testing"
	"time"

	"github.com/vitalsalud/citas-core/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(7, models.GuardDoctor, models.RoleDoctor)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != 7 || claims.Guard != models.GuardDoctor || claims.Role != models.RoleDoctor {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("token missing jti")
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(1, models.GuardAdmin, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpiryRejected(t *testing.T) {
	m := NewTokenManager("secret", 1)

	token, err := m.Issue(1, models.GuardPaciente, models.RolePaciente)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenRevocation(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	first, err := m.Issue(1, models.GuardDoctor, models.RoleDoctor)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	second, err := m.Issue(1, models.GuardDoctor, models.RoleDoctor)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	m.Revoke(first)

	if _, err := m.Validate(first); !errors.Is(err, ErrRevokedToken) {
		t.Errorf("expected ErrRevokedToken, got %v", err)
	}
	// Revocation is per token, not per user
	if _, err := m.Validate(second); err != nil {
		t.Errorf("second token should stay valid, got %v", err)
	}
}

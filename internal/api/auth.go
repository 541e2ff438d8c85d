package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/events"
	"github.com/vitalsalud/citas-core/internal/models"
	"github.com/vitalsalud/citas-core/internal/storage"
)

// AuthService handles login, registration, logout and profile calls. It
// is the only writer of the session store: on every successful mutation it
// persists token and user info together and broadcasts tokenUpdated.
type AuthService struct {
	client *Client
	store  storage.Store
	bus    *events.Bus
}

// NewAuthService creates a new auth service
func NewAuthService(client *Client, store storage.Store, bus *events.Bus) *AuthService {
	return &AuthService{client: client, store: store, bus: bus}
}

// Login authenticates against api/login and persists the session. The
// navigation role comes from the user's rol relation when present, else
// from the guard, else defaults to paciente.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserInfo, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.client.Post(ctx, "api/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if resp.AccessToken == "" || resp.User == nil {
		return nil, fmt.Errorf("login response missing token or user")
	}

	role := models.ResolveRole(resp.User, resp.Guard)

	info := models.UserInfo{
		ID:    resp.User.ID,
		Name:  resp.User.Name,
		Email: resp.User.Email,
		RolID: resp.User.RolID,
		Rol:   resp.User.Rol,
		Role:  role,
		Guard: resp.Guard,
	}

	if err := s.persistSession(ctx, resp.AccessToken, &info); err != nil {
		return nil, err
	}

	log.Info().Str("role", string(role)).Str("guard", resp.Guard).Msg("Login successful")
	s.bus.Emit(events.EventTokenUpdated)
	return &info, nil
}

// Register creates an account via api/addUser; it does not log in
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := s.client.Post(ctx, "api/addUser", req, &resp); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &resp, nil
}

// Logout invalidates the token server-side on a best-effort basis, then
// always clears the local session and broadcasts the change.
func (s *AuthService) Logout(ctx context.Context) error {
	token, err := s.store.Get(ctx, storage.KeyUserToken)
	if err == nil && token != "" {
		if err := s.client.Post(ctx, "api/logout", struct{}{}, nil); err != nil {
			log.Warn().Err(err).Msg("Backend logout failed, clearing local session anyway")
		}
	}

	if err := s.store.Delete(ctx, storage.KeyUserToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := s.store.Delete(ctx, storage.KeyUserInfo); err != nil {
		return fmt.Errorf("failed to clear user info: %w", err)
	}

	s.bus.Emit(events.EventTokenUpdated)
	return nil
}

// UserInfo reads the cached user info from the session store. A missing
// or unreadable blob yields nil, never an error: callers treat that as an
// anonymous session.
func (s *AuthService) UserInfo(ctx context.Context) *models.UserInfo {
	raw, err := s.store.Get(ctx, storage.KeyUserInfo)
	if err != nil || raw == "" {
		return nil
	}
	var info models.UserInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		log.Warn().Err(err).Msg("Stored user info is not valid JSON")
		return nil
	}
	return &info
}

// Profile fetches the authenticated user's profile from the backend
func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	var resp models.ProfileResponse
	if err := s.client.Get(ctx, "api/mi-perfil", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return resp.User, nil
}

// UpdateProfile pushes profile changes and merges the server's user back
// into the cached user info, preserving role and guard.
func (s *AuthService) UpdateProfile(ctx context.Context, changes map[string]interface{}) (*models.User, error) {
	var resp models.ProfileResponse
	if err := s.client.Put(ctx, "api/actualizar-perfil", changes, &resp); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if resp.User != nil {
		info := s.UserInfo(ctx)
		if info == nil {
			info = &models.UserInfo{}
		}
		info.ID = resp.User.ID
		info.Name = resp.User.Name
		info.Email = resp.User.Email
		if resp.User.RolID != 0 {
			info.RolID = resp.User.RolID
		}
		if resp.User.Rol != nil {
			info.Rol = resp.User.Rol
		}
		if err := s.writeUserInfo(ctx, info); err != nil {
			log.Warn().Err(err).Msg("Failed to refresh cached user info")
		} else {
			s.bus.Emit(events.EventTokenUpdated)
		}
	}

	return resp.User, nil
}

// persistSession writes token and user info together; a half-written
// session must not survive, so the token is rolled back if the info write
// fails.
func (s *AuthService) persistSession(ctx context.Context, token string, info *models.UserInfo) error {
	if err := s.store.Set(ctx, storage.KeyUserToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.writeUserInfo(ctx, info); err != nil {
		if delErr := s.store.Delete(ctx, storage.KeyUserToken); delErr != nil {
			log.Error().Err(delErr).Msg("Failed to roll back token after user info write failure")
		}
		return err
	}
	return nil
}

func (s *AuthService) writeUserInfo(ctx context.Context, info *models.UserInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode user info: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyUserInfo, string(payload)); err != nil {
		return fmt.Errorf("failed to persist user info: %w", err)
	}
	return nil
}

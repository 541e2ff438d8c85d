package api

import (
	"context"
	"fmt"

	"github.com/vitalsalud/citas-core/internal/models"
)

// UsuariosService calls the admin-scoped user resource
type UsuariosService struct {
	client *Client
}

// NewUsuariosService creates a new usuarios service
func NewUsuariosService(client *Client) *UsuariosService {
	return &UsuariosService{client: client}
}

// List fetches all user accounts
func (s *UsuariosService) List(ctx context.Context) ([]models.User, error) {
	var resp models.UsersResponse
	if err := s.client.Get(ctx, "api/users", &resp); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return resp.Users, nil
}

// Get fetches a user by ID
func (s *UsuariosService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.client.Get(ctx, fmt.Sprintf("api/userById/%d", id), &user); err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// Create adds a user account
func (s *UsuariosService) Create(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := s.client.Post(ctx, "api/addUser", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &resp, nil
}

// Update modifies a user account
func (s *UsuariosService) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/updateUser/%d", id), changes, &resp); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return &resp, nil
}

// UpdateProfileAdmin lets an admin edit another user's profile
func (s *UsuariosService) UpdateProfileAdmin(ctx context.Context, id uint, changes map[string]interface{}) (*models.ProfileResponse, error) {
	var resp models.ProfileResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/actualizar-perfil-admin/%d", id), changes, &resp); err != nil {
		return nil, fmt.Errorf("failed to update profile of user %d: %w", id, err)
	}
	return &resp, nil
}

// Delete removes a user account
func (s *UsuariosService) Delete(ctx context.Context, id uint) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("api/deleteUser/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

package api

import (
	"context"
	"fmt"

	"github.com/vitalsalud/citas-core/internal/models"
)

// RolesService calls the role resource
type RolesService struct {
	client *Client
}

// NewRolesService creates a new roles service
func NewRolesService(client *Client) *RolesService {
	return &RolesService{client: client}
}

// List fetches all roles
func (s *RolesService) List(ctx context.Context) ([]models.Rol, error) {
	var resp models.RolesResponse
	if err := s.client.Get(ctx, "api/roles", &resp); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return resp.Roles, nil
}

// Get fetches a role by ID
func (s *RolesService) Get(ctx context.Context, id uint) (*models.Rol, error) {
	var rol models.Rol
	if err := s.client.Get(ctx, fmt.Sprintf("api/rolById/%d", id), &rol); err != nil {
		return nil, fmt.Errorf("failed to get role %d: %w", id, err)
	}
	return &rol, nil
}

// Create adds a role
func (s *RolesService) Create(ctx context.Context, rol models.Rol) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Post(ctx, "api/addRol", rol, &resp); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return &resp, nil
}

// Update modifies a role. Plural path segment is the backend's routing.
func (s *RolesService) Update(ctx context.Context, id uint, rol models.Rol) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/updateRoles/%d", id), rol, &resp); err != nil {
		return nil, fmt.Errorf("failed to update role %d: %w", id, err)
	}
	return &resp, nil
}

// Delete removes a role
func (s *RolesService) Delete(ctx context.Context, id uint) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("api/deleteRol/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete role %d: %w", id, err)
	}
	return nil
}

package api

import (
	"context"
	"fmt"

	"github.com/vitalsalud/citas-core/internal/models"
)

// EspecialidadesService calls the specialty resource
type EspecialidadesService struct {
	client *Client
}

// NewEspecialidadesService creates a new especialidades service
func NewEspecialidadesService(client *Client) *EspecialidadesService {
	return &EspecialidadesService{client: client}
}

// List fetches all specialties. The capitalized path is the backend's.
func (s *EspecialidadesService) List(ctx context.Context) ([]models.Especialidad, error) {
	var resp models.EspecialidadesResponse
	if err := s.client.Get(ctx, "api/Especialidades", &resp); err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return resp.Especialidades, nil
}

// Get fetches a specialty by ID
func (s *EspecialidadesService) Get(ctx context.Context, id uint) (*models.Especialidad, error) {
	var especialidad models.Especialidad
	if err := s.client.Get(ctx, fmt.Sprintf("api/especialidadById/%d", id), &especialidad); err != nil {
		return nil, fmt.Errorf("failed to get specialty %d: %w", id, err)
	}
	return &especialidad, nil
}

// Create adds a specialty
func (s *EspecialidadesService) Create(ctx context.Context, especialidad models.Especialidad) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Post(ctx, "api/addEspecialidad", especialidad, &resp); err != nil {
		return nil, fmt.Errorf("failed to create specialty: %w", err)
	}
	return &resp, nil
}

// Update modifies a specialty
func (s *EspecialidadesService) Update(ctx context.Context, id uint, especialidad models.Especialidad) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/updateEspecialidad/%d", id), especialidad, &resp); err != nil {
		return nil, fmt.Errorf("failed to update specialty %d: %w", id, err)
	}
	return &resp, nil
}

// Delete removes a specialty
func (s *EspecialidadesService) Delete(ctx context.Context, id uint) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("api/deleteEspecialidad/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete specialty %d: %w", id, err)
	}
	return nil
}

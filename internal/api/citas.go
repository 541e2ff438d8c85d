package api

import (
	"context"
	"fmt"

	"github.com/vitalsalud/citas-core/internal/models"
)

// CitasService calls the admin-scoped appointment resource
type CitasService struct {
	client *Client
}

// NewCitasService creates a new citas service
func NewCitasService(client *Client) *CitasService {
	return &CitasService{client: client}
}

// List fetches all appointments
func (s *CitasService) List(ctx context.Context) ([]models.Cita, error) {
	var resp models.CitasResponse
	if err := s.client.Get(ctx, "api/citas", &resp); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return resp.Citas, nil
}

// Get fetches an appointment by ID
func (s *CitasService) Get(ctx context.Context, id uint) (*models.Cita, error) {
	var cita models.Cita
	if err := s.client.Get(ctx, fmt.Sprintf("api/citaById/%d", id), &cita); err != nil {
		return nil, fmt.Errorf("failed to get appointment %d: %w", id, err)
	}
	return &cita, nil
}

// Create adds an appointment on behalf of a patient
func (s *CitasService) Create(ctx context.Context, cita models.Cita) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Post(ctx, "api/addCita", cita, &resp); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return &resp, nil
}

// Update modifies an appointment
func (s *CitasService) Update(ctx context.Context, id uint, cita models.Cita) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/updateCita/%d", id), cita, &resp); err != nil {
		return nil, fmt.Errorf("failed to update appointment %d: %w", id, err)
	}
	return &resp, nil
}

// Delete removes an appointment
func (s *CitasService) Delete(ctx context.Context, id uint) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("api/deleteCita/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", id, err)
	}
	return nil
}

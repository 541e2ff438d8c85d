package api

import (
	"context"
	"fmt"

	"github.com/vitalsalud/citas-core/internal/models"
)

// ConsultoriosService calls the office resource
type ConsultoriosService struct {
	client *Client
}

// NewConsultoriosService creates a new consultorios service
func NewConsultoriosService(client *Client) *ConsultoriosService {
	return &ConsultoriosService{client: client}
}

// List fetches all offices
func (s *ConsultoriosService) List(ctx context.Context) ([]models.Consultorio, error) {
	var resp models.ConsultoriosResponse
	if err := s.client.Get(ctx, "api/consultorios", &resp); err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	return resp.Consultorios, nil
}

// Get fetches an office by ID
func (s *ConsultoriosService) Get(ctx context.Context, id uint) (*models.Consultorio, error) {
	var consultorio models.Consultorio
	if err := s.client.Get(ctx, fmt.Sprintf("api/consultorioById/%d", id), &consultorio); err != nil {
		return nil, fmt.Errorf("failed to get office %d: %w", id, err)
	}
	return &consultorio, nil
}

// Create adds an office
func (s *ConsultoriosService) Create(ctx context.Context, consultorio models.Consultorio) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Post(ctx, "api/addConsultorio", consultorio, &resp); err != nil {
		return nil, fmt.Errorf("failed to create office: %w", err)
	}
	return &resp, nil
}

// Update modifies an office
func (s *ConsultoriosService) Update(ctx context.Context, id uint, consultorio models.Consultorio) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/updateConsultorio/%d", id), consultorio, &resp); err != nil {
		return nil, fmt.Errorf("failed to update office %d: %w", id, err)
	}
	return &resp, nil
}

// Delete removes an office
func (s *ConsultoriosService) Delete(ctx context.Context, id uint) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("api/deleteConsultorio/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete office %d: %w", id, err)
	}
	return nil
}

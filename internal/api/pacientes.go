package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vitalsalud/citas-core/internal/models"
)

// PacientesService calls the patient resource and the patient-scoped
// booking endpoints.
type PacientesService struct {
	client *Client
}

// NewPacientesService creates a new pacientes service
func NewPacientesService(client *Client) *PacientesService {
	return &PacientesService{client: client}
}

// List fetches all patients
func (s *PacientesService) List(ctx context.Context) ([]models.Paciente, error) {
	var resp models.PacientesResponse
	if err := s.client.Get(ctx, "api/pacientes", &resp); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return resp.Pacientes, nil
}

// Get fetches a patient by ID
func (s *PacientesService) Get(ctx context.Context, id uint) (*models.Paciente, error) {
	var paciente models.Paciente
	if err := s.client.Get(ctx, fmt.Sprintf("api/pacienteById/%d", id), &paciente); err != nil {
		return nil, fmt.Errorf("failed to get patient %d: %w", id, err)
	}
	return &paciente, nil
}

// Create adds a patient. The misspelled path is what the backend routes.
func (s *PacientesService) Create(ctx context.Context, paciente models.Paciente) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Post(ctx, "api/addPaciete", paciente, &resp); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return &resp, nil
}

// Update modifies a patient
func (s *PacientesService) Update(ctx context.Context, id uint, paciente models.Paciente) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/updatePaciente/%d", id), paciente, &resp); err != nil {
		return nil, fmt.Errorf("failed to update patient %d: %w", id, err)
	}
	return &resp, nil
}

// Delete removes a patient
func (s *PacientesService) Delete(ctx context.Context, id uint) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("api/deletePaciente/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete patient %d: %w", id, err)
	}
	return nil
}

// MisCitas fetches the authenticated patient's appointments
func (s *PacientesService) MisCitas(ctx context.Context) ([]models.Cita, error) {
	var resp models.CitasResponse
	if err := s.client.Get(ctx, "api/mis-citas", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch my appointments: %w", err)
	}
	return resp.Citas, nil
}

// SolicitarCita submits an appointment request
func (s *PacientesService) SolicitarCita(ctx context.Context, req models.SolicitarCitaRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Post(ctx, "api/solicitar-cita", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to request appointment: %w", err)
	}
	return &resp, nil
}

// DoctoresDisponibles fetches doctors currently accepting appointments
func (s *PacientesService) DoctoresDisponibles(ctx context.Context) ([]models.Doctor, error) {
	var resp models.DoctoresDisponiblesResponse
	if err := s.client.Get(ctx, "api/doctores-disponibles", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch available doctors: %w", err)
	}
	return resp.DoctoresDisponibles, nil
}

// HorariosDisponibles fetches a doctor's open slots, optionally scoped to
// a date ("YYYY-MM-DD"). An empty fecha returns all open slots.
func (s *PacientesService) HorariosDisponibles(ctx context.Context, doctorID uint, fecha string) ([]models.Horario, error) {
	path := fmt.Sprintf("api/horarios-disponibles/%d", doctorID)
	if fecha != "" {
		path += "?fecha=" + url.QueryEscape(fecha)
	}

	var resp models.HorariosDisponiblesResponse
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch available slots: %w", err)
	}
	return resp.HorariosDisponibles, nil
}

// ConsultoriosDisponibles fetches the offices a doctor can attend in
func (s *PacientesService) ConsultoriosDisponibles(ctx context.Context, doctorID uint) ([]models.Consultorio, error) {
	var resp models.ConsultoriosDisponiblesResponse
	if err := s.client.Get(ctx, fmt.Sprintf("api/consultorios-disponibles/%d", doctorID), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch available offices: %w", err)
	}
	return resp.ConsultoriosDisponibles, nil
}

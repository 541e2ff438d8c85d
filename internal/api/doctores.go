package api

import (
	"context"
	"fmt"

	"github.com/vitalsalud/citas-core/internal/models"
)

// DoctoresService calls the doctor resource and the doctor-scoped
// endpoints (own appointments, own schedule, own office).
type DoctoresService struct {
	client *Client
}

// NewDoctoresService creates a new doctores service
func NewDoctoresService(client *Client) *DoctoresService {
	return &DoctoresService{client: client}
}

// List fetches all doctors
func (s *DoctoresService) List(ctx context.Context) ([]models.Doctor, error) {
	var resp models.DoctoresResponse
	if err := s.client.Get(ctx, "api/doctores", &resp); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return resp.Doctores, nil
}

// Get fetches a doctor by ID. The capitalized path segment is the
// backend's, not a typo to fix.
func (s *DoctoresService) Get(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.client.Get(ctx, fmt.Sprintf("api/DoctorById/%d", id), &doctor); err != nil {
		return nil, fmt.Errorf("failed to get doctor %d: %w", id, err)
	}
	return &doctor, nil
}

// Create adds a doctor
func (s *DoctoresService) Create(ctx context.Context, doctor models.Doctor) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Post(ctx, "api/addDoctor", doctor, &resp); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return &resp, nil
}

// Update modifies a doctor
func (s *DoctoresService) Update(ctx context.Context, id uint, doctor models.Doctor) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/updateDoctor/%d", id), doctor, &resp); err != nil {
		return nil, fmt.Errorf("failed to update doctor %d: %w", id, err)
	}
	return &resp, nil
}

// Delete removes a doctor
func (s *DoctoresService) Delete(ctx context.Context, id uint) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("api/deleteDoctor/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete doctor %d: %w", id, err)
	}
	return nil
}

// MisCitas fetches the authenticated doctor's appointments
func (s *DoctoresService) MisCitas(ctx context.Context) ([]models.Cita, error) {
	var resp models.CitasResponse
	if err := s.client.Get(ctx, "api/mis-citas", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch my appointments: %w", err)
	}
	return resp.Citas, nil
}

// MisCitasPendientes fetches appointments waiting for the doctor's approval
func (s *DoctoresService) MisCitasPendientes(ctx context.Context) ([]models.Cita, error) {
	var resp models.CitasPendientesResponse
	if err := s.client.Get(ctx, "api/mis-citas-pendientes", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch pending appointments: %w", err)
	}
	return resp.CitasPendientes, nil
}

// AprobarCita moves a pending appointment to Programada
func (s *DoctoresService) AprobarCita(ctx context.Context, id uint) error {
	if err := s.client.Put(ctx, fmt.Sprintf("api/aprobar-cita/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to approve appointment %d: %w", id, err)
	}
	return nil
}

// RechazarCita moves an appointment to Rechazada
func (s *DoctoresService) RechazarCita(ctx context.Context, id uint) error {
	if err := s.client.Put(ctx, fmt.Sprintf("api/rechazar-cita/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to reject appointment %d: %w", id, err)
	}
	return nil
}

// CompletarCita moves an appointment to Completada
func (s *DoctoresService) CompletarCita(ctx context.Context, id uint) error {
	if err := s.client.Put(ctx, fmt.Sprintf("api/completar-cita/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to complete appointment %d: %w", id, err)
	}
	return nil
}

// MisHorarios fetches the authenticated doctor's schedule slots
func (s *DoctoresService) MisHorarios(ctx context.Context) ([]models.Horario, error) {
	var resp models.MisHorariosResponse
	if err := s.client.Get(ctx, "api/mis-horarios", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch my schedule: %w", err)
	}
	return resp.MisHorarios, nil
}

// MiConsultorio fetches the office assigned to the authenticated doctor
func (s *DoctoresService) MiConsultorio(ctx context.Context) (*models.Consultorio, error) {
	var resp models.MiConsultorioResponse
	if err := s.client.Get(ctx, "api/mi-consultorio", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch my office: %w", err)
	}
	return resp.MiConsultorio, nil
}

// CreateHorario adds a schedule slot for the authenticated doctor
func (s *DoctoresService) CreateHorario(ctx context.Context, horario models.Horario) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Post(ctx, "api/addHorario", horario, &resp); err != nil {
		return nil, fmt.Errorf("failed to create schedule slot: %w", err)
	}
	return &resp, nil
}

// UpdateHorario modifies a schedule slot
func (s *DoctoresService) UpdateHorario(ctx context.Context, id uint, horario models.Horario) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.client.Put(ctx, fmt.Sprintf("api/updateHorario/%d", id), horario, &resp); err != nil {
		return nil, fmt.Errorf("failed to update schedule slot %d: %w", id, err)
	}
	return &resp, nil
}

// DeleteHorario removes a schedule slot
func (s *DoctoresService) DeleteHorario(ctx context.Context, id uint) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("api/deleteHorario/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete schedule slot %d: %w", id, err)
	}
	return nil
}

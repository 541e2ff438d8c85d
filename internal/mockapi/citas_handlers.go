package mockapi

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/models"
)

func (s *Server) handleListCitas(w http.ResponseWriter, r *http.Request) {
	citas, err := s.store.ListCitas(r.Context())
	if err != nil {
		s.storeError(w, err, "Citas no encontradas")
		return
	}
	s.respondJSON(w, http.StatusOK, models.CitasResponse{Citas: citas})
}

func (s *Server) handleGetCita(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	cita, err := s.store.CitaByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}
	s.respondJSON(w, http.StatusOK, cita)
}

func (s *Server) handleAddCita(w http.ResponseWriter, r *http.Request) {
	var cita models.Cita
	if !s.decodeBody(w, r, &cita) {
		return
	}
	if cita.Estado == "" {
		cita.Estado = models.CitaProgramada
	}
	if err := s.store.CreateCita(r.Context(), &cita); err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Cita creada correctamente")
}

func (s *Server) handleUpdateCita(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	cita, err := s.store.CitaByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}

	var req models.Cita
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.FechaHora != "" {
		cita.FechaHora = req.FechaHora
	}
	if req.Estado != "" {
		cita.Estado = req.Estado
	}
	if req.Novedad != "" {
		cita.Novedad = req.Novedad
	}
	if req.DoctorID != 0 {
		cita.DoctorID = req.DoctorID
		cita.Doctor = nil
	}
	if req.ConsultorioID != 0 {
		cita.ConsultorioID = req.ConsultorioID
		cita.Consultorio = nil
	}

	if err := s.store.UpdateCita(r.Context(), cita); err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}
	s.respondMessage(w, http.StatusOK, "Cita actualizada correctamente")
}

func (s *Server) handleDeleteCita(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteCita(r.Context(), id); err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}
	s.respondMessage(w, http.StatusOK, "Cita eliminada correctamente")
}

// handleMisCitas serves both realms: a doctor token sees the doctor's
// agenda, any other token sees the patient's own appointments.
func (s *Server) handleMisCitas(w http.ResponseWriter, r *http.Request) {
	if s.claims(r).Role == models.RoleDoctor {
		doctor, err := s.currentDoctor(r)
		if err != nil {
			s.storeError(w, err, "Doctor no encontrado")
			return
		}
		citas, err := s.store.CitasByDoctor(r.Context(), doctor.ID)
		if err != nil {
			s.storeError(w, err, "Citas no encontradas")
			return
		}
		s.respondJSON(w, http.StatusOK, models.CitasResponse{Citas: citas})
		return
	}

	paciente, err := s.currentPaciente(r)
	if err != nil {
		s.storeError(w, err, "Paciente no encontrado")
		return
	}
	citas, err := s.store.CitasByPaciente(r.Context(), paciente.ID)
	if err != nil {
		s.storeError(w, err, "Citas no encontradas")
		return
	}
	s.respondJSON(w, http.StatusOK, models.CitasResponse{Citas: citas})
}

func (s *Server) handleMisCitasPendientes(w http.ResponseWriter, r *http.Request) {
	doctor, err := s.currentDoctor(r)
	if err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}
	citas, err := s.store.CitasByDoctor(r.Context(), doctor.ID, models.CitaPorAprobar)
	if err != nil {
		s.storeError(w, err, "Citas no encontradas")
		return
	}
	s.respondJSON(w, http.StatusOK, models.CitasPendientesResponse{CitasPendientes: citas})
}

func (s *Server) handleAprobarCita(w http.ResponseWriter, r *http.Request) {
	s.transitionCita(w, r, models.CitaProgramada, "Cita aprobada correctamente")
}

func (s *Server) handleRechazarCita(w http.ResponseWriter, r *http.Request) {
	s.transitionCita(w, r, models.CitaRechazada, "Cita rechazada correctamente")
}

func (s *Server) handleCompletarCita(w http.ResponseWriter, r *http.Request) {
	s.transitionCita(w, r, models.CitaCompletada, "Cita completada correctamente")
}

func (s *Server) transitionCita(w http.ResponseWriter, r *http.Request, estado, message string) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	cita, err := s.store.CitaByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}

	cita.Estado = estado
	if err := s.store.UpdateCita(r.Context(), cita); err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}

	log.Info().Uint("cita_id", id).Str("estado", estado).Msg("Appointment state changed")
	s.respondMessage(w, http.StatusOK, message)
}

// handleSolicitarCita books an appointment for the authenticated
// patient. A non-rejected appointment already holding the doctor's slot
// yields a conflict.
func (s *Server) handleSolicitarCita(w http.ResponseWriter, r *http.Request) {
	paciente, err := s.currentPaciente(r)
	if err != nil {
		s.storeError(w, err, "Paciente no encontrado")
		return
	}

	var req models.SolicitarCitaRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.DoctorID == 0 || req.FechaHora == "" {
		s.respondMessage(w, http.StatusUnprocessableEntity, "Doctor y fecha son obligatorios")
		return
	}

	if _, err := s.store.DoctorByID(r.Context(), req.DoctorID); err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}

	taken, err := s.store.CitaConflict(r.Context(), req.DoctorID, req.FechaHora)
	if err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}
	if taken {
		s.respondMessage(w, http.StatusConflict, "El doctor ya tiene una cita en ese horario")
		return
	}

	novedad := req.Novedad
	if novedad == "" {
		novedad = models.NovedadPorDefecto
	}

	cita := models.Cita{
		FechaHora:     req.FechaHora,
		Estado:        models.CitaPorAprobar,
		Novedad:       novedad,
		PacienteID:    paciente.ID,
		DoctorID:      req.DoctorID,
		ConsultorioID: req.ConsultorioID,
	}
	if err := s.store.CreateCita(r.Context(), &cita); err != nil {
		s.storeError(w, err, "Cita no encontrada")
		return
	}

	log.Info().
		Uint("paciente_id", paciente.ID).
		Uint("doctor_id", req.DoctorID).
		Str("fecha_hora", req.FechaHora).
		Msg("Appointment requested")
	s.respondMessage(w, http.StatusCreated, "Cita solicitada correctamente")
}

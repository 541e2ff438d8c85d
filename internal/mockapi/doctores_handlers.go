package mockapi

import (
	"net/http"

	"github.com/vitalsalud/citas-core/internal/models"
)

func (s *Server) handleListDoctores(w http.ResponseWriter, r *http.Request) {
	doctores, err := s.store.ListDoctores(r.Context())
	if err != nil {
		s.storeError(w, err, "Doctores no encontrados")
		return
	}
	s.respondJSON(w, http.StatusOK, models.DoctoresResponse{Doctores: doctores})
}

func (s *Server) handleGetDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	doctor, err := s.store.DoctorByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}
	s.respondJSON(w, http.StatusOK, doctor)
}

func (s *Server) handleAddDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor models.Doctor
	if !s.decodeBody(w, r, &doctor) {
		return
	}
	if err := s.store.CreateDoctor(r.Context(), &doctor); err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Doctor creado correctamente")
}

func (s *Server) handleUpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	doctor, err := s.store.DoctorByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}

	var req models.Doctor
	if !s.decodeBody(w, r, &req) {
		return
	}
	doctor.Nombres = req.Nombres
	doctor.Apellidos = req.Apellidos
	doctor.Email = req.Email
	doctor.Telefono = req.Telefono
	if req.EspecialidadID != 0 {
		doctor.EspecialidadID = req.EspecialidadID
		doctor.Especialidad = nil
	}

	if err := s.store.UpdateDoctor(r.Context(), doctor); err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Doctor actualizado correctamente")
}

func (s *Server) handleDeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteDoctor(r.Context(), id); err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Doctor eliminado correctamente")
}

// --- Doctor session routes ---

func (s *Server) handleMisHorarios(w http.ResponseWriter, r *http.Request) {
	doctor, err := s.currentDoctor(r)
	if err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}
	horarios, err := s.store.HorariosByDoctor(r.Context(), doctor.ID)
	if err != nil {
		s.storeError(w, err, "Horarios no encontrados")
		return
	}
	s.respondJSON(w, http.StatusOK, models.MisHorariosResponse{MisHorarios: horarios})
}

func (s *Server) handleMiConsultorio(w http.ResponseWriter, r *http.Request) {
	doctor, err := s.currentDoctor(r)
	if err != nil {
		s.storeError(w, err, "Doctor no encontrado")
		return
	}
	consultorio, err := s.store.ConsultorioDeDoctor(r.Context(), doctor.ID)
	if err != nil {
		s.storeError(w, err, "Consultorio no asignado")
		return
	}
	s.respondJSON(w, http.StatusOK, models.MiConsultorioResponse{MiConsultorio: consultorio})
}

func (s *Server) handleAddHorario(w http.ResponseWriter, r *http.Request) {
	var horario models.Horario
	if !s.decodeBody(w, r, &horario) {
		return
	}

	// A doctor creates slots for themselves; the id in the payload is
	// only honored for admin callers.
	if s.claims(r).Role == models.RoleDoctor {
		doctor, err := s.currentDoctor(r)
		if err != nil {
			s.storeError(w, err, "Doctor no encontrado")
			return
		}
		horario.DoctorID = doctor.ID
	}
	if horario.Estado == "" {
		horario.Estado = models.HorarioActivo
	}

	if err := s.store.CreateHorario(r.Context(), &horario); err != nil {
		s.storeError(w, err, "Horario no encontrado")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Horario creado correctamente")
}

func (s *Server) handleUpdateHorario(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	horario, err := s.store.HorarioByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Horario no encontrado")
		return
	}

	var req models.Horario
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.HoraInicio != "" {
		horario.HoraInicio = req.HoraInicio
	}
	if req.HoraFin != "" {
		horario.HoraFin = req.HoraFin
	}
	if req.Estado != "" {
		horario.Estado = req.Estado
	}
	if req.Fecha != "" {
		horario.Fecha = req.Fecha
	}

	if err := s.store.UpdateHorario(r.Context(), horario); err != nil {
		s.storeError(w, err, "Horario no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Horario actualizado correctamente")
}

func (s *Server) handleDeleteHorario(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteHorario(r.Context(), id); err != nil {
		s.storeError(w, err, "Horario no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Horario eliminado correctamente")
}

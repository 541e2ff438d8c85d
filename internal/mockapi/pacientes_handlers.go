package mockapi

import (
	"net/http"

	"github.com/vitalsalud/citas-core/internal/models"
)

func (s *Server) handleListPacientes(w http.ResponseWriter, r *http.Request) {
	pacientes, err := s.store.ListPacientes(r.Context())
	if err != nil {
		s.storeError(w, err, "Pacientes no encontrados")
		return
	}
	s.respondJSON(w, http.StatusOK, models.PacientesResponse{Pacientes: pacientes})
}

func (s *Server) handleGetPaciente(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	paciente, err := s.store.PacienteByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Paciente no encontrado")
		return
	}
	s.respondJSON(w, http.StatusOK, paciente)
}

func (s *Server) handleAddPaciente(w http.ResponseWriter, r *http.Request) {
	var paciente models.Paciente
	if !s.decodeBody(w, r, &paciente) {
		return
	}
	if err := s.store.CreatePaciente(r.Context(), &paciente); err != nil {
		s.storeError(w, err, "Paciente no encontrado")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Paciente creado correctamente")
}

func (s *Server) handleUpdatePaciente(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	paciente, err := s.store.PacienteByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Paciente no encontrado")
		return
	}

	var req models.Paciente
	if !s.decodeBody(w, r, &req) {
		return
	}
	paciente.Nombres = req.Nombres
	paciente.Apellidos = req.Apellidos
	paciente.Email = req.Email
	paciente.Telefono = req.Telefono

	if err := s.store.UpdatePaciente(r.Context(), paciente); err != nil {
		s.storeError(w, err, "Paciente no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Paciente actualizado correctamente")
}

func (s *Server) handleDeletePaciente(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeletePaciente(r.Context(), id); err != nil {
		s.storeError(w, err, "Paciente no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Paciente eliminado correctamente")
}

// --- Booking availability routes ---

// handleDoctoresDisponibles lists doctors with at least one active slot
func (s *Server) handleDoctoresDisponibles(w http.ResponseWriter, r *http.Request) {
	doctores, err := s.store.ListDoctores(r.Context())
	if err != nil {
		s.storeError(w, err, "Doctores no encontrados")
		return
	}

	disponibles := make([]models.Doctor, 0, len(doctores))
	for _, doctor := range doctores {
		horarios, err := s.store.HorariosByDoctor(r.Context(), doctor.ID)
		if err != nil {
			s.storeError(w, err, "Horarios no encontrados")
			return
		}
		for _, h := range horarios {
			if h.Estado == models.HorarioActivo {
				disponibles = append(disponibles, doctor)
				break
			}
		}
	}

	s.respondJSON(w, http.StatusOK, models.DoctoresDisponiblesResponse{DoctoresDisponibles: disponibles})
}

// handleHorariosDisponibles lists a doctor's active slots, optionally
// narrowed to a single date via ?fecha=YYYY-MM-DD.
func (s *Server) handleHorariosDisponibles(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := s.urlID(w, r, "doctorID")
	if !ok {
		return
	}

	horarios, err := s.store.HorariosByDoctor(r.Context(), doctorID)
	if err != nil {
		s.storeError(w, err, "Horarios no encontrados")
		return
	}

	fecha := r.URL.Query().Get("fecha")
	disponibles := make([]models.Horario, 0, len(horarios))
	for _, h := range horarios {
		if h.Estado != models.HorarioActivo {
			continue
		}
		if fecha != "" && h.Fecha != "" && h.Fecha != fecha {
			continue
		}
		disponibles = append(disponibles, h)
	}

	s.respondJSON(w, http.StatusOK, models.HorariosDisponiblesResponse{HorariosDisponibles: disponibles})
}

// handleConsultoriosDisponibles lists the offices bookable with a
// doctor: their assigned office when one exists, every office otherwise.
func (s *Server) handleConsultoriosDisponibles(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := s.urlID(w, r, "doctorID")
	if !ok {
		return
	}

	if consultorio, err := s.store.ConsultorioDeDoctor(r.Context(), doctorID); err == nil {
		s.respondJSON(w, http.StatusOK, models.ConsultoriosDisponiblesResponse{
			ConsultoriosDisponibles: []models.Consultorio{*consultorio},
		})
		return
	}

	consultorios, err := s.store.ListConsultorios(r.Context())
	if err != nil {
		s.storeError(w, err, "Consultorios no encontrados")
		return
	}
	s.respondJSON(w, http.StatusOK, models.ConsultoriosDisponiblesResponse{
		ConsultoriosDisponibles: consultorios,
	})
}

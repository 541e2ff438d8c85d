package mockapi

import (
	"net/http"

	"github.com/vitalsalud/citas-core/internal/models"
)

// --- Users ---

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.storeError(w, err, "Usuarios no encontrados")
		return
	}
	s.respondJSON(w, http.StatusOK, models.UsersResponse{Users: users})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	user, err := s.store.UserByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}
	s.respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	user, err := s.store.UserByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		RolID *uint   `json:"rol_id"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.RolID != nil {
		user.RolID = *req.RolID
		user.Rol = nil
	}

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Usuario actualizado correctamente")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Usuario eliminado correctamente")
}

// --- Roles ---

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.store.ListRoles(r.Context())
	if err != nil {
		s.storeError(w, err, "Roles no encontrados")
		return
	}
	s.respondJSON(w, http.StatusOK, models.RolesResponse{Roles: roles})
}

func (s *Server) handleGetRol(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	rol, err := s.store.RolByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Rol no encontrado")
		return
	}
	s.respondJSON(w, http.StatusOK, rol)
}

func (s *Server) handleAddRol(w http.ResponseWriter, r *http.Request) {
	var rol models.Rol
	if !s.decodeBody(w, r, &rol) {
		return
	}
	if err := s.store.CreateRol(r.Context(), &rol); err != nil {
		s.storeError(w, err, "Rol no encontrado")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Rol creado correctamente")
}

func (s *Server) handleUpdateRol(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	rol, err := s.store.RolByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Rol no encontrado")
		return
	}

	var req models.Rol
	if !s.decodeBody(w, r, &req) {
		return
	}
	rol.Rol = req.Rol

	if err := s.store.UpdateRol(r.Context(), rol); err != nil {
		s.storeError(w, err, "Rol no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Rol actualizado correctamente")
}

func (s *Server) handleDeleteRol(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteRol(r.Context(), id); err != nil {
		s.storeError(w, err, "Rol no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Rol eliminado correctamente")
}

// --- Especialidades ---

func (s *Server) handleListEspecialidades(w http.ResponseWriter, r *http.Request) {
	especialidades, err := s.store.ListEspecialidades(r.Context())
	if err != nil {
		s.storeError(w, err, "Especialidades no encontradas")
		return
	}
	s.respondJSON(w, http.StatusOK, models.EspecialidadesResponse{Especialidades: especialidades})
}

func (s *Server) handleGetEspecialidad(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	especialidad, err := s.store.EspecialidadByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Especialidad no encontrada")
		return
	}
	s.respondJSON(w, http.StatusOK, especialidad)
}

func (s *Server) handleAddEspecialidad(w http.ResponseWriter, r *http.Request) {
	var especialidad models.Especialidad
	if !s.decodeBody(w, r, &especialidad) {
		return
	}
	if err := s.store.CreateEspecialidad(r.Context(), &especialidad); err != nil {
		s.storeError(w, err, "Especialidad no encontrada")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Especialidad creada correctamente")
}

func (s *Server) handleUpdateEspecialidad(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	especialidad, err := s.store.EspecialidadByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Especialidad no encontrada")
		return
	}

	var req models.Especialidad
	if !s.decodeBody(w, r, &req) {
		return
	}
	especialidad.Especialidad = req.Especialidad

	if err := s.store.UpdateEspecialidad(r.Context(), especialidad); err != nil {
		s.storeError(w, err, "Especialidad no encontrada")
		return
	}
	s.respondMessage(w, http.StatusOK, "Especialidad actualizada correctamente")
}

func (s *Server) handleDeleteEspecialidad(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteEspecialidad(r.Context(), id); err != nil {
		s.storeError(w, err, "Especialidad no encontrada")
		return
	}
	s.respondMessage(w, http.StatusOK, "Especialidad eliminada correctamente")
}

// --- Consultorios ---

func (s *Server) handleListConsultorios(w http.ResponseWriter, r *http.Request) {
	consultorios, err := s.store.ListConsultorios(r.Context())
	if err != nil {
		s.storeError(w, err, "Consultorios no encontrados")
		return
	}
	s.respondJSON(w, http.StatusOK, models.ConsultoriosResponse{Consultorios: consultorios})
}

func (s *Server) handleGetConsultorio(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	consultorio, err := s.store.ConsultorioByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Consultorio no encontrado")
		return
	}
	s.respondJSON(w, http.StatusOK, consultorio)
}

func (s *Server) handleAddConsultorio(w http.ResponseWriter, r *http.Request) {
	var consultorio models.Consultorio
	if !s.decodeBody(w, r, &consultorio) {
		return
	}
	if err := s.store.CreateConsultorio(r.Context(), &consultorio); err != nil {
		s.storeError(w, err, "Consultorio no encontrado")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Consultorio creado correctamente")
}

func (s *Server) handleUpdateConsultorio(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	consultorio, err := s.store.ConsultorioByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Consultorio no encontrado")
		return
	}

	var req models.Consultorio
	if !s.decodeBody(w, r, &req) {
		return
	}
	consultorio.Codigo = req.Codigo
	consultorio.Ubicacion = req.Ubicacion
	consultorio.Piso = req.Piso

	if err := s.store.UpdateConsultorio(r.Context(), consultorio); err != nil {
		s.storeError(w, err, "Consultorio no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Consultorio actualizado correctamente")
}

func (s *Server) handleDeleteConsultorio(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteConsultorio(r.Context(), id); err != nil {
		s.storeError(w, err, "Consultorio no encontrado")
		return
	}
	s.respondMessage(w, http.StatusOK, "Consultorio eliminado correctamente")
}

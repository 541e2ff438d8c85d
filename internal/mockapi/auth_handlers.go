package mockapi

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// guardForRole maps a navigation role back to the API guard issued with
// its tokens.
func guardForRole(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return models.GuardAdmin
	case models.RoleDoctor:
		return models.GuardDoctor
	default:
		return models.GuardPaciente
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	user, err := s.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		s.respondMessage(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.respondMessage(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	role := models.ResolveRole(user, "")
	guard := guardForRole(role)

	token, err := s.tokens.Issue(user.ID, guard, role)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		s.respondMessage(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	log.Info().Str("email", user.Email).Str("guard", guard).Msg("User logged in")
	s.respondJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		Guard:       guard,
		User:        user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	s.tokens.Revoke(strings.TrimPrefix(header, "Bearer "))
	s.respondMessage(w, http.StatusOK, "Sesión cerrada correctamente")
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		s.respondMessage(w, http.StatusUnprocessableEntity, "Email y contraseña son obligatorios")
		return
	}

	if _, err := s.store.UserByEmail(r.Context(), req.Email); err == nil {
		s.respondMessage(w, http.StatusConflict, "El correo ya está registrado")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		s.respondMessage(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	rolID, err := s.resolveRolID(r, req)
	if err != nil {
		s.storeError(w, err, "Rol no encontrado")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		RolID:    rolID,
	}
	if err := s.store.CreateUser(r.Context(), &user); err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}

	created, err := s.store.UserByID(r.Context(), user.ID)
	if err != nil {
		created = &user
	}

	s.respondJSON(w, http.StatusCreated, models.RegisterResponse{
		Message: "Usuario creado correctamente",
		User:    created,
	})
}

// resolveRolID picks the role for a new account: an explicit rol_id
// wins, then a rol name match, then the paciente role.
func (s *Server) resolveRolID(r *http.Request, req models.RegisterRequest) (uint, error) {
	if req.RolID != 0 {
		if _, err := s.store.RolByID(r.Context(), req.RolID); err != nil {
			return 0, err
		}
		return req.RolID, nil
	}

	name := req.Rol
	if name == "" {
		name = string(models.RolePaciente)
	}

	roles, err := s.store.ListRoles(r.Context())
	if err != nil {
		return 0, err
	}
	for _, rol := range roles {
		if strings.EqualFold(rol.Rol, name) {
			return rol.ID, nil
		}
	}

	rol := models.Rol{Rol: name}
	if err := s.store.CreateRol(r.Context(), &rol); err != nil {
		return 0, err
	}
	return rol.ID, nil
}

func (s *Server) handleMiPerfil(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}
	s.respondJSON(w, http.StatusOK, models.ProfileResponse{User: user})
}

// profileUpdate carries the editable profile fields
type profileUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *Server) handleActualizarPerfil(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}
	s.applyProfileUpdate(w, r, user)
}

func (s *Server) handleActualizarPerfilAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "id")
	if !ok {
		return
	}
	user, err := s.store.UserByID(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}
	s.applyProfileUpdate(w, r, user)
}

func (s *Server) applyProfileUpdate(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req profileUpdate
	if !s.decodeBody(w, r, &req) {
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Msg("Failed to hash password")
			s.respondMessage(w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		user.Password = string(hash)
	}

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		s.storeError(w, err, "Usuario no encontrado")
		return
	}

	s.respondJSON(w, http.StatusOK, models.ProfileResponse{
		Message: "Perfil actualizado correctamente",
		User:    user,
	})
}

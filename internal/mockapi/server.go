package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/middleware"
	"github.com/vitalsalud/citas-core/internal/models"
)

type claimsContextKey string

const claimsKey claimsContextKey = "claims"

// Server is a stand-in for the appointment backend, used for local
// development and integration tests. It speaks the backend's exact wire
// contract, wrapper keys and all.
type Server struct {
	store  Store
	tokens *TokenManager
}

// NewServer creates a server over the given store
func NewServer(store Store, tokens *TokenManager) *Server {
	return &Server{store: store, tokens: tokens}
}

// Router builds the full route surface
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Guard)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth-Guard"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/login", s.handleLogin)
		r.Post("/addUser", s.handleAddUser)

		// Everything else requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/logout", s.handleLogout)
			r.Get("/mi-perfil", s.handleMiPerfil)
			r.Put("/actualizar-perfil", s.handleActualizarPerfil)

			// Users and roles
			r.Get("/users", s.handleListUsers)
			r.Get("/userById/{id}", s.handleGetUser)
			r.Put("/updateUser/{id}", s.handleUpdateUser)
			r.Put("/actualizar-perfil-admin/{id}", s.handleActualizarPerfilAdmin)
			r.Delete("/deleteUser/{id}", s.handleDeleteUser)
			r.Get("/roles", s.handleListRoles)
			r.Get("/rolById/{id}", s.handleGetRol)
			r.Post("/addRol", s.handleAddRol)
			r.Put("/updateRoles/{id}", s.handleUpdateRol)
			r.Delete("/deleteRol/{id}", s.handleDeleteRol)

			// Specialties
			r.Get("/Especialidades", s.handleListEspecialidades)
			r.Get("/especialidadById/{id}", s.handleGetEspecialidad)
			r.Post("/addEspecialidad", s.handleAddEspecialidad)
			r.Put("/updateEspecialidad/{id}", s.handleUpdateEspecialidad)
			r.Delete("/deleteEspecialidad/{id}", s.handleDeleteEspecialidad)

			// Doctors
			r.Get("/doctores", s.handleListDoctores)
			r.Get("/DoctorById/{id}", s.handleGetDoctor)
			r.Post("/addDoctor", s.handleAddDoctor)
			r.Put("/updateDoctor/{id}", s.handleUpdateDoctor)
			r.Delete("/deleteDoctor/{id}", s.handleDeleteDoctor)

			// Patients
			r.Get("/pacientes", s.handleListPacientes)
			r.Get("/pacienteById/{id}", s.handleGetPaciente)
			r.Post("/addPaciete", s.handleAddPaciente)
			r.Put("/updatePaciente/{id}", s.handleUpdatePaciente)
			r.Delete("/deletePaciente/{id}", s.handleDeletePaciente)

			// Offices
			r.Get("/consultorios", s.handleListConsultorios)
			r.Get("/consultorioById/{id}", s.handleGetConsultorio)
			r.Post("/addConsultorio", s.handleAddConsultorio)
			r.Put("/updateConsultorio/{id}", s.handleUpdateConsultorio)
			r.Delete("/deleteConsultorio/{id}", s.handleDeleteConsultorio)

			// Appointments
			r.Get("/citas", s.handleListCitas)
			r.Get("/citaById/{id}", s.handleGetCita)
			r.Post("/addCita", s.handleAddCita)
			r.Put("/updateCita/{id}", s.handleUpdateCita)
			r.Delete("/deleteCita/{id}", s.handleDeleteCita)

			// Doctor session routes
			r.Get("/mis-citas", s.handleMisCitas)
			r.Get("/mis-citas-pendientes", s.handleMisCitasPendientes)
			r.Put("/aprobar-cita/{id}", s.handleAprobarCita)
			r.Put("/rechazar-cita/{id}", s.handleRechazarCita)
			r.Put("/completar-cita/{id}", s.handleCompletarCita)
			r.Get("/mis-horarios", s.handleMisHorarios)
			r.Get("/mi-consultorio", s.handleMiConsultorio)
			r.Post("/addHorario", s.handleAddHorario)
			r.Put("/updateHorario/{id}", s.handleUpdateHorario)
			r.Delete("/deleteHorario/{id}", s.handleDeleteHorario)

			// Patient booking routes
			r.Post("/solicitar-cita", s.handleSolicitarCita)
			r.Get("/doctores-disponibles", s.handleDoctoresDisponibles)
			r.Get("/horarios-disponibles/{doctorID}", s.handleHorariosDisponibles)
			r.Get("/consultorios-disponibles/{doctorID}", s.handleConsultoriosDisponibles)
		})
	})

	return r
}

// requireAuth validates the bearer token and stores its claims in the
// request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.respondMessage(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		claims, err := s.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected bearer token")
			s.respondMessage(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claims returns the authenticated token claims; requireAuth guarantees
// they are present on protected routes.
func (s *Server) claims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(claimsKey).(*Claims)
	return claims
}

// currentUser loads the account behind the request's token
func (s *Server) currentUser(r *http.Request) (*models.User, error) {
	claims := s.claims(r)
	if claims == nil {
		return nil, ErrInvalidToken
	}
	return s.store.UserByID(r.Context(), claims.UserID)
}

// currentDoctor resolves the doctor record sharing the account's email
func (s *Server) currentDoctor(r *http.Request) (*models.Doctor, error) {
	user, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	return s.store.DoctorByEmail(r.Context(), user.Email)
}

// currentPaciente resolves the patient record sharing the account's email
func (s *Server) currentPaciente(r *http.Request) (*models.Paciente, error) {
	user, err := s.currentUser(r)
	if err != nil {
		return nil, err
	}
	return s.store.PacienteByEmail(r.Context(), user.Email)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.MessageResponse{Message: message})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Datos inválidos")
		return false
	}
	return true
}

func (s *Server) urlID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Identificador inválido")
		return 0, false
	}
	return uint(id), true
}

// storeError maps store failures onto the wire contract
func (s *Server) storeError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, ErrNotFound) {
		s.respondMessage(w, http.StatusNotFound, notFoundMsg)
		return
	}
	log.Error().Err(err).Msg("Store operation failed")
	s.respondMessage(w, http.StatusInternalServerError, "Error interno del servidor")
}

package mockapi

import (
	"context"
	"fmt"

	"github.com/vitalsalud/citas-core/internal/models"
)

// ErrNotFound is returned when an entity does not exist
var ErrNotFound = fmt.Errorf("record not found")

// Store is the persistence surface of the mock backend. Two
// implementations exist: in-memory (default, used by the integration
// tests) and Postgres via GORM for a longer-lived dev environment.
type Store interface {
	// Users and roles
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	CreateRol(ctx context.Context, rol *models.Rol) error
	RolByID(ctx context.Context, id uint) (*models.Rol, error)
	ListRoles(ctx context.Context) ([]models.Rol, error)
	UpdateRol(ctx context.Context, rol *models.Rol) error
	DeleteRol(ctx context.Context, id uint) error

	// Catalog
	CreateEspecialidad(ctx context.Context, e *models.Especialidad) error
	EspecialidadByID(ctx context.Context, id uint) (*models.Especialidad, error)
	ListEspecialidades(ctx context.Context) ([]models.Especialidad, error)
	UpdateEspecialidad(ctx context.Context, e *models.Especialidad) error
	DeleteEspecialidad(ctx context.Context, id uint) error

	CreateDoctor(ctx context.Context, d *models.Doctor) error
	DoctorByID(ctx context.Context, id uint) (*models.Doctor, error)
	DoctorByEmail(ctx context.Context, email string) (*models.Doctor, error)
	ListDoctores(ctx context.Context) ([]models.Doctor, error)
	UpdateDoctor(ctx context.Context, d *models.Doctor) error
	DeleteDoctor(ctx context.Context, id uint) error

	CreatePaciente(ctx context.Context, p *models.Paciente) error
	PacienteByID(ctx context.Context, id uint) (*models.Paciente, error)
	PacienteByEmail(ctx context.Context, email string) (*models.Paciente, error)
	ListPacientes(ctx context.Context) ([]models.Paciente, error)
	UpdatePaciente(ctx context.Context, p *models.Paciente) error
	DeletePaciente(ctx context.Context, id uint) error

	CreateConsultorio(ctx context.Context, c *models.Consultorio) error
	ConsultorioByID(ctx context.Context, id uint) (*models.Consultorio, error)
	ListConsultorios(ctx context.Context) ([]models.Consultorio, error)
	UpdateConsultorio(ctx context.Context, c *models.Consultorio) error
	DeleteConsultorio(ctx context.Context, id uint) error
	AsignarConsultorio(ctx context.Context, doctorID, consultorioID uint) error
	ConsultorioDeDoctor(ctx context.Context, doctorID uint) (*models.Consultorio, error)

	// Schedule
	CreateHorario(ctx context.Context, h *models.Horario) error
	HorarioByID(ctx context.Context, id uint) (*models.Horario, error)
	HorariosByDoctor(ctx context.Context, doctorID uint) ([]models.Horario, error)
	UpdateHorario(ctx context.Context, h *models.Horario) error
	DeleteHorario(ctx context.Context, id uint) error

	// Appointments
	CreateCita(ctx context.Context, c *models.Cita) error
	CitaByID(ctx context.Context, id uint) (*models.Cita, error)
	ListCitas(ctx context.Context) ([]models.Cita, error)
	CitasByPaciente(ctx context.Context, pacienteID uint) ([]models.Cita, error)
	CitasByDoctor(ctx context.Context, doctorID uint, estados ...string) ([]models.Cita, error)
	UpdateCita(ctx context.Context, c *models.Cita) error
	DeleteCita(ctx context.Context, id uint) error
	// CitaConflict reports an existing non-rejected appointment for the
	// doctor at the exact instant
	CitaConflict(ctx context.Context, doctorID uint, fechaHora string) (bool, error)
}

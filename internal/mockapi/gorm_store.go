package mockapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitalsalud/citas-core/internal/database"
	"github.com/vitalsalud/citas-core/internal/models"
	"gorm.io/gorm"
)

// GormStore implements Store on top of the shared GORM connection. It
// backs the mock API when a Postgres DSN is configured.
type GormStore struct{}

// NewGormStore creates a new GORM-backed store; database.Connect must
// have run first.
func NewGormStore() *GormStore {
	return &GormStore{}
}

func wrapGormErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// --- Users ---

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := database.DB.WithContext(ctx).Create(user).Error; err != nil {
		return wrapGormErr("failed to create user", err)
	}
	return nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).Preload("Rol").
		Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapGormErr("failed to get user by email", err)
	}
	return &user, nil
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).Preload("Rol").First(&user, id).Error; err != nil {
		return nil, wrapGormErr("failed to get user", err)
	}
	return &user, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := database.DB.WithContext(ctx).Preload("Rol").Order("id").Find(&users).Error; err != nil {
		return nil, wrapGormErr("failed to list users", err)
	}
	return users, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, user *models.User) error {
	if err := database.DB.WithContext(ctx).Save(user).Error; err != nil {
		return wrapGormErr("failed to update user", err)
	}
	return nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id uint) error {
	if err := database.DB.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return wrapGormErr("failed to delete user", err)
	}
	return nil
}

// --- Roles ---

func (s *GormStore) CreateRol(ctx context.Context, rol *models.Rol) error {
	if err := database.DB.WithContext(ctx).Create(rol).Error; err != nil {
		return wrapGormErr("failed to create role", err)
	}
	return nil
}

func (s *GormStore) RolByID(ctx context.Context, id uint) (*models.Rol, error) {
	var rol models.Rol
	if err := database.DB.WithContext(ctx).First(&rol, id).Error; err != nil {
		return nil, wrapGormErr("failed to get role", err)
	}
	return &rol, nil
}

func (s *GormStore) ListRoles(ctx context.Context) ([]models.Rol, error) {
	var roles []models.Rol
	if err := database.DB.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, wrapGormErr("failed to list roles", err)
	}
	return roles, nil
}

func (s *GormStore) UpdateRol(ctx context.Context, rol *models.Rol) error {
	if err := database.DB.WithContext(ctx).Save(rol).Error; err != nil {
		return wrapGormErr("failed to update role", err)
	}
	return nil
}

func (s *GormStore) DeleteRol(ctx context.Context, id uint) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Rol{}, id).Error; err != nil {
		return wrapGormErr("failed to delete role", err)
	}
	return nil
}

// --- Especialidades ---

func (s *GormStore) CreateEspecialidad(ctx context.Context, e *models.Especialidad) error {
	if err := database.DB.WithContext(ctx).Create(e).Error; err != nil {
		return wrapGormErr("failed to create specialty", err)
	}
	return nil
}

func (s *GormStore) EspecialidadByID(ctx context.Context, id uint) (*models.Especialidad, error) {
	var e models.Especialidad
	if err := database.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, wrapGormErr("failed to get specialty", err)
	}
	return &e, nil
}

func (s *GormStore) ListEspecialidades(ctx context.Context) ([]models.Especialidad, error) {
	var out []models.Especialidad
	if err := database.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, wrapGormErr("failed to list specialties", err)
	}
	return out, nil
}

func (s *GormStore) UpdateEspecialidad(ctx context.Context, e *models.Especialidad) error {
	if err := database.DB.WithContext(ctx).Save(e).Error; err != nil {
		return wrapGormErr("failed to update specialty", err)
	}
	return nil
}

func (s *GormStore) DeleteEspecialidad(ctx context.Context, id uint) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Especialidad{}, id).Error; err != nil {
		return wrapGormErr("failed to delete specialty", err)
	}
	return nil
}

// --- Doctores ---

func (s *GormStore) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	if err := database.DB.WithContext(ctx).Create(d).Error; err != nil {
		return wrapGormErr("failed to create doctor", err)
	}
	return nil
}

func (s *GormStore) DoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := database.DB.WithContext(ctx).Preload("Especialidad").First(&d, id).Error; err != nil {
		return nil, wrapGormErr("failed to get doctor", err)
	}
	return &d, nil
}

func (s *GormStore) DoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var d models.Doctor
	if err := database.DB.WithContext(ctx).Preload("Especialidad").
		Where("email = ?", email).First(&d).Error; err != nil {
		return nil, wrapGormErr("failed to get doctor by email", err)
	}
	return &d, nil
}

func (s *GormStore) ListDoctores(ctx context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	if err := database.DB.WithContext(ctx).Preload("Especialidad").Order("id").Find(&out).Error; err != nil {
		return nil, wrapGormErr("failed to list doctors", err)
	}
	return out, nil
}

func (s *GormStore) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	if err := database.DB.WithContext(ctx).Save(d).Error; err != nil {
		return wrapGormErr("failed to update doctor", err)
	}
	return nil
}

func (s *GormStore) DeleteDoctor(ctx context.Context, id uint) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Doctor{}, id).Error; err != nil {
		return wrapGormErr("failed to delete doctor", err)
	}
	return nil
}

// --- Pacientes ---

func (s *GormStore) CreatePaciente(ctx context.Context, p *models.Paciente) error {
	if err := database.DB.WithContext(ctx).Create(p).Error; err != nil {
		return wrapGormErr("failed to create patient", err)
	}
	return nil
}

func (s *GormStore) PacienteByID(ctx context.Context, id uint) (*models.Paciente, error) {
	var p models.Paciente
	if err := database.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, wrapGormErr("failed to get patient", err)
	}
	return &p, nil
}

func (s *GormStore) PacienteByEmail(ctx context.Context, email string) (*models.Paciente, error) {
	var p models.Paciente
	if err := database.DB.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, wrapGormErr("failed to get patient by email", err)
	}
	return &p, nil
}

func (s *GormStore) ListPacientes(ctx context.Context) ([]models.Paciente, error) {
	var out []models.Paciente
	if err := database.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, wrapGormErr("failed to list patients", err)
	}
	return out, nil
}

func (s *GormStore) UpdatePaciente(ctx context.Context, p *models.Paciente) error {
	if err := database.DB.WithContext(ctx).Save(p).Error; err != nil {
		return wrapGormErr("failed to update patient", err)
	}
	return nil
}

func (s *GormStore) DeletePaciente(ctx context.Context, id uint) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Paciente{}, id).Error; err != nil {
		return wrapGormErr("failed to delete patient", err)
	}
	return nil
}

// --- Consultorios ---

func (s *GormStore) CreateConsultorio(ctx context.Context, c *models.Consultorio) error {
	if err := database.DB.WithContext(ctx).Create(c).Error; err != nil {
		return wrapGormErr("failed to create office", err)
	}
	return nil
}

func (s *GormStore) ConsultorioByID(ctx context.Context, id uint) (*models.Consultorio, error) {
	var c models.Consultorio
	if err := database.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, wrapGormErr("failed to get office", err)
	}
	return &c, nil
}

func (s *GormStore) ListConsultorios(ctx context.Context) ([]models.Consultorio, error) {
	var out []models.Consultorio
	if err := database.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, wrapGormErr("failed to list offices", err)
	}
	return out, nil
}

func (s *GormStore) UpdateConsultorio(ctx context.Context, c *models.Consultorio) error {
	if err := database.DB.WithContext(ctx).Save(c).Error; err != nil {
		return wrapGormErr("failed to update office", err)
	}
	return nil
}

func (s *GormStore) DeleteConsultorio(ctx context.Context, id uint) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Consultorio{}, id).Error; err != nil {
		return wrapGormErr("failed to delete office", err)
	}
	return nil
}

func (s *GormStore) AsignarConsultorio(ctx context.Context, doctorID, consultorioID uint) error {
	assignment := models.DoctorConsultorio{DoctorID: doctorID, ConsultorioID: consultorioID}
	if err := database.DB.WithContext(ctx).Save(&assignment).Error; err != nil {
		return wrapGormErr("failed to assign office", err)
	}
	return nil
}

func (s *GormStore) ConsultorioDeDoctor(ctx context.Context, doctorID uint) (*models.Consultorio, error) {
	var assignment models.DoctorConsultorio
	if err := database.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).First(&assignment).Error; err != nil {
		return nil, wrapGormErr("failed to get office assignment", err)
	}
	return s.ConsultorioByID(ctx, assignment.ConsultorioID)
}

// --- Horarios ---

func (s *GormStore) CreateHorario(ctx context.Context, h *models.Horario) error {
	if err := database.DB.WithContext(ctx).Create(h).Error; err != nil {
		return wrapGormErr("failed to create schedule slot", err)
	}
	return nil
}

func (s *GormStore) HorarioByID(ctx context.Context, id uint) (*models.Horario, error) {
	var h models.Horario
	if err := database.DB.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, wrapGormErr("failed to get schedule slot", err)
	}
	return &h, nil
}

func (s *GormStore) HorariosByDoctor(ctx context.Context, doctorID uint) ([]models.Horario, error) {
	var out []models.Horario
	if err := database.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).Order("id").Find(&out).Error; err != nil {
		return nil, wrapGormErr("failed to list schedule slots", err)
	}
	return out, nil
}

func (s *GormStore) UpdateHorario(ctx context.Context, h *models.Horario) error {
	if err := database.DB.WithContext(ctx).Save(h).Error; err != nil {
		return wrapGormErr("failed to update schedule slot", err)
	}
	return nil
}

func (s *GormStore) DeleteHorario(ctx context.Context, id uint) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Horario{}, id).Error; err != nil {
		return wrapGormErr("failed to delete schedule slot", err)
	}
	return nil
}

// --- Citas ---

func (s *GormStore) CreateCita(ctx context.Context, c *models.Cita) error {
	if err := database.DB.WithContext(ctx).Create(c).Error; err != nil {
		return wrapGormErr("failed to create appointment", err)
	}
	return nil
}

func (s *GormStore) CitaByID(ctx context.Context, id uint) (*models.Cita, error) {
	var c models.Cita
	if err := database.DB.WithContext(ctx).
		Preload("Paciente").Preload("Doctor").Preload("Consultorio").
		First(&c, id).Error; err != nil {
		return nil, wrapGormErr("failed to get appointment", err)
	}
	return &c, nil
}

func (s *GormStore) ListCitas(ctx context.Context) ([]models.Cita, error) {
	var out []models.Cita
	if err := database.DB.WithContext(ctx).
		Preload("Paciente").Preload("Doctor").Preload("Consultorio").
		Order("id").Find(&out).Error; err != nil {
		return nil, wrapGormErr("failed to list appointments", err)
	}
	return out, nil
}

func (s *GormStore) CitasByPaciente(ctx context.Context, pacienteID uint) ([]models.Cita, error) {
	var out []models.Cita
	if err := database.DB.WithContext(ctx).
		Preload("Doctor").Preload("Consultorio").
		Where("paciente_id = ?", pacienteID).Order("id").Find(&out).Error; err != nil {
		return nil, wrapGormErr("failed to list patient appointments", err)
	}
	return out, nil
}

func (s *GormStore) CitasByDoctor(ctx context.Context, doctorID uint, estados ...string) ([]models.Cita, error) {
	q := database.DB.WithContext(ctx).
		Preload("Paciente").Preload("Consultorio").
		Where("doctor_id = ?", doctorID)
	if len(estados) > 0 {
		q = q.Where("estado IN ?", estados)
	}

	var out []models.Cita
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, wrapGormErr("failed to list doctor appointments", err)
	}
	return out, nil
}

func (s *GormStore) UpdateCita(ctx context.Context, c *models.Cita) error {
	if err := database.DB.WithContext(ctx).Save(c).Error; err != nil {
		return wrapGormErr("failed to update appointment", err)
	}
	return nil
}

func (s *GormStore) DeleteCita(ctx context.Context, id uint) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Cita{}, id).Error; err != nil {
		return wrapGormErr("failed to delete appointment", err)
	}
	return nil
}

func (s *GormStore) CitaConflict(ctx context.Context, doctorID uint, fechaHora string) (bool, error) {
	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.Cita{}).
		Where("doctor_id = ? AND fecha_hora = ? AND estado <> ?", doctorID, fechaHora, models.CitaRechazada).
		Count(&count).Error; err != nil {
		return false, wrapGormErr("failed to check appointment conflict", err)
	}
	return count > 0, nil
}

package mockapi

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seed loads a small working data set: one account per role, a doctor
// and patient record sharing the account emails, an office assignment
// and a couple of open slots. Idempotent on the admin account.
func Seed(ctx context.Context, store Store) error {
	if _, err := store.UserByEmail(ctx, "admin@vitalsalud.ec"); err == nil {
		log.Debug().Msg("Seed data already present")
		return nil
	}

	roles := map[models.Role]*models.Rol{
		models.RoleAdmin:    {Rol: string(models.RoleAdmin)},
		models.RoleDoctor:   {Rol: string(models.RoleDoctor)},
		models.RolePaciente: {Rol: string(models.RolePaciente)},
	}
	for _, rol := range []*models.Rol{roles[models.RoleAdmin], roles[models.RoleDoctor], roles[models.RolePaciente]} {
		if err := store.CreateRol(ctx, rol); err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}
	}

	users := []struct {
		name, email, password string
		role                  models.Role
	}{
		{"Administrador", "admin@vitalsalud.ec", "admin123", models.RoleAdmin},
		{"Carlos Mendoza", "cmendoza@vitalsalud.ec", "doctor123", models.RoleDoctor},
		{"Lucía Vargas", "lvargas@correo.ec", "paciente123", models.RolePaciente},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := models.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hash),
			RolID:    roles[u.role].ID,
		}
		if err := store.CreateUser(ctx, &user); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
	}

	especialidad := models.Especialidad{Especialidad: "Medicina General"}
	if err := store.CreateEspecialidad(ctx, &especialidad); err != nil {
		return fmt.Errorf("failed to seed specialty: %w", err)
	}

	doctor := models.Doctor{
		Nombres:        "Carlos",
		Apellidos:      "Mendoza",
		Email:          "cmendoza@vitalsalud.ec",
		Telefono:       "0991234567",
		EspecialidadID: especialidad.ID,
	}
	if err := store.CreateDoctor(ctx, &doctor); err != nil {
		return fmt.Errorf("failed to seed doctor: %w", err)
	}

	paciente := models.Paciente{
		Nombres:   "Lucía",
		Apellidos: "Vargas",
		Email:     "lvargas@correo.ec",
		Telefono:  "0987654321",
	}
	if err := store.CreatePaciente(ctx, &paciente); err != nil {
		return fmt.Errorf("failed to seed patient: %w", err)
	}

	consultorio := models.Consultorio{Codigo: "C-101", Ubicacion: "Edificio A", Piso: "1"}
	if err := store.CreateConsultorio(ctx, &consultorio); err != nil {
		return fmt.Errorf("failed to seed office: %w", err)
	}
	if err := store.AsignarConsultorio(ctx, doctor.ID, consultorio.ID); err != nil {
		return fmt.Errorf("failed to seed office assignment: %w", err)
	}

	horarios := []models.Horario{
		{DoctorID: doctor.ID, HoraInicio: "09:00", HoraFin: "09:30", Estado: models.HorarioActivo},
		{DoctorID: doctor.ID, HoraInicio: "09:30", HoraFin: "10:00", Estado: models.HorarioActivo},
		{DoctorID: doctor.ID, HoraInicio: "10:00", HoraFin: "10:30", Estado: models.HorarioInactivo},
	}
	for i := range horarios {
		if err := store.CreateHorario(ctx, &horarios[i]); err != nil {
			return fmt.Errorf("failed to seed schedule slots: %w", err)
		}
	}

	log.Info().Msg("Seed data loaded")
	return nil
}

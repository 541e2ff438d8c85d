package models

import "time"

// Horario estado values
const (
	HorarioActivo   = "Activo"
	HorarioInactivo = "Inactivo"
)

// Horario is a doctor's availability slot. Times of day are wire-encoded
// as "HH:mm". The date fields are optional: depending on the backend
// variant a slot may carry a full timestamp, a bare date, or nothing but
// the time of day.
type Horario struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	DoctorID        uint      `gorm:"index" json:"doctor_id"`
	HoraInicio      string    `gorm:"type:varchar(5);not null" json:"horaInicio"`
	HoraFin         string    `gorm:"type:varchar(5);not null" json:"horaFin"`
	Estado          string    `gorm:"type:varchar(50);default:Activo" json:"estado"`
	Fecha           string    `gorm:"type:varchar(10)" json:"fecha,omitempty"`
	FechaDia        string    `gorm:"-" json:"fechaDia,omitempty"`
	Dia             string    `gorm:"-" json:"dia,omitempty"`
	FechaHora       string    `gorm:"-" json:"fechaHora,omitempty"`
	FechaHoraInicio string    `gorm:"-" json:"fechaHoraInicio,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Horario) TableName() string {
	return "horarios"
}

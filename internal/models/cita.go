package models

import "time"

// Cita estado values, owned by the backend
const (
	CitaProgramada = "Programada"
	CitaPorAprobar = "Por aprobar"
	CitaCompletada = "Completada"
	CitaRechazada  = "Rechazada"
)

// NovedadPorDefecto is substituted when an appointment request carries a
// blank note.
const NovedadPorDefecto = "Cita solicitada por el paciente"

// Cita is an appointment record
type Cita struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	FechaHora     string       `gorm:"type:varchar(40);not null" json:"fechaHora"`
	Estado        string       `gorm:"type:varchar(50);default:Por aprobar" json:"estado"`
	Novedad       string       `gorm:"type:text" json:"novedad"`
	PacienteID    uint         `gorm:"index" json:"paciente_id"`
	DoctorID      uint         `gorm:"index" json:"doctor_id"`
	ConsultorioID uint         `gorm:"index" json:"consultorio_id"`
	Paciente      *Paciente    `gorm:"foreignKey:PacienteID" json:"paciente,omitempty"`
	Doctor        *Doctor      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Consultorio   *Consultorio `gorm:"foreignKey:ConsultorioID" json:"consultorio,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName overrides the table name
func (Cita) TableName() string {
	return "citas"
}

// SolicitarCitaRequest is the payload the booking flow submits
type SolicitarCitaRequest struct {
	DoctorID      uint   `json:"doctor_id"`
	ConsultorioID uint   `json:"consultorio_id"`
	FechaHora     string `json:"fechaHora"`
	Novedad       string `json:"novedad"`
}

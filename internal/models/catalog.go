package models

import "time"

// Especialidad is a medical specialty
type Especialidad struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Especialidad string    `gorm:"type:varchar(255);not null" json:"especialidad"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Especialidad) TableName() string {
	return "especialidades"
}

// Doctor is a practitioner record
type Doctor struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Nombres        string        `gorm:"type:varchar(255);not null" json:"nombres"`
	Apellidos      string        `gorm:"type:varchar(255);not null" json:"apellidos"`
	Email          string        `gorm:"type:varchar(255)" json:"email"`
	Telefono       string        `gorm:"type:varchar(50)" json:"telefono"`
	EspecialidadID uint          `gorm:"index" json:"especialidad_id"`
	Especialidad   *Especialidad `gorm:"foreignKey:EspecialidadID" json:"especialidad,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TableName overrides the table name
func (Doctor) TableName() string {
	return "doctores"
}

// Paciente is a patient record
type Paciente struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombres   string    `gorm:"type:varchar(255);not null" json:"nombres"`
	Apellidos string    `gorm:"type:varchar(255);not null" json:"apellidos"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Telefono  string    `gorm:"type:varchar(50)" json:"telefono"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Paciente) TableName() string {
	return "pacientes"
}

// Consultorio is a physical office assignable to appointments
type Consultorio struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Codigo    string    `gorm:"type:varchar(50);not null" json:"codigo"`
	Ubicacion string    `gorm:"type:varchar(255)" json:"ubicacion"`
	Piso      string    `gorm:"type:varchar(50)" json:"piso"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Consultorio) TableName() string {
	return "consultorios"
}

// DoctorConsultorio assigns a doctor their office
type DoctorConsultorio struct {
	DoctorID      uint `gorm:"primaryKey" json:"doctor_id"`
	ConsultorioID uint `gorm:"index" json:"consultorio_id"`
}

// TableName overrides the table name
func (DoctorConsultorio) TableName() string {
	return "doctor_consultorio"
}

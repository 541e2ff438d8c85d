package models

// The backend wraps every list payload in a resource-named object rather
// than returning a bare array. The wrapper keys below are part of the
// wire contract and must not be renamed.

// DoctoresResponse wraps api/doctores
type DoctoresResponse struct {
	Doctores []Doctor `json:"doctores"`
}

// PacientesResponse wraps api/pacientes
type PacientesResponse struct {
	Pacientes []Paciente `json:"pacientes"`
}

// ConsultoriosResponse wraps api/consultorios
type ConsultoriosResponse struct {
	Consultorios []Consultorio `json:"consultorios"`
}

// EspecialidadesResponse wraps api/Especialidades
type EspecialidadesResponse struct {
	Especialidades []Especialidad `json:"especialidades"`
}

// CitasResponse wraps api/citas and api/mis-citas
type CitasResponse struct {
	Citas []Cita `json:"citas"`
}

// CitasPendientesResponse wraps api/mis-citas-pendientes
type CitasPendientesResponse struct {
	CitasPendientes []Cita `json:"citas_pendientes"`
}

// UsersResponse wraps api/users
type UsersResponse struct {
	Users []User `json:"users"`
}

// RolesResponse wraps api/roles
type RolesResponse struct {
	Roles []Rol `json:"roles"`
}

// DoctoresDisponiblesResponse wraps api/doctores-disponibles
type DoctoresDisponiblesResponse struct {
	DoctoresDisponibles []Doctor `json:"doctores_disponibles"`
}

// HorariosDisponiblesResponse wraps api/horarios-disponibles/{doctor}
type HorariosDisponiblesResponse struct {
	HorariosDisponibles []Horario `json:"horarios_disponibles"`
}

// ConsultoriosDisponiblesResponse wraps api/consultorios-disponibles/{doctor}
type ConsultoriosDisponiblesResponse struct {
	ConsultoriosDisponibles []Consultorio `json:"consultorios_disponibles"`
}

// MisHorariosResponse wraps api/mis-horarios
type MisHorariosResponse struct {
	MisHorarios []Horario `json:"mis_horarios"`
}

// MiConsultorioResponse wraps api/mi-consultorio
type MiConsultorioResponse struct {
	MiConsultorio *Consultorio `json:"mi_consultorio"`
}

// MessageResponse is the generic mutation acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the api/login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the api/login result
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Guard       string `json:"guard"`
	User        *User  `json:"user"`
}

// RegisterRequest is the api/addUser payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol,omitempty"`
	RolID    uint   `json:"rol_id,omitempty"`
}

// RegisterResponse is the api/addUser result
type RegisterResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// ProfileResponse wraps api/mi-perfil and api/actualizar-perfil
type ProfileResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

package models

// Role represents the navigation role of an authenticated user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDoctor   Role = "doctor"
	RolePaciente Role = "paciente"
)

// Guard values issued by the backend, one per authentication realm
const (
	GuardAdmin    = "apiAdmin"
	GuardDoctor   = "apiDoctor"
	GuardPaciente = "apiPaciente"
)

// RoleFromGuard maps an API guard to a role. Unknown guards map to
// paciente, the least privileged role.
func RoleFromGuard(guard string) Role {
	switch guard {
	case GuardAdmin:
		return RoleAdmin
	case GuardDoctor:
		return RoleDoctor
	case GuardPaciente:
		return RolePaciente
	default:
		return RolePaciente
	}
}

// Rol is the server-side role record attached to users
type Rol struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Rol string `gorm:"type:varchar(50);not null" json:"rol"`
}

// TableName overrides the table name
func (Rol) TableName() string {
	return "roles"
}

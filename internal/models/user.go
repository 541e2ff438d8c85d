package models

import "time"

// User is the account record owned by the backend
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:text" json:"-"`
	RolID     uint      `gorm:"index" json:"rol_id"`
	Rol       *Rol      `gorm:"foreignKey:RolID" json:"rol,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// UserInfo is the session-cached copy of the authenticated user, persisted
// as JSON in the session store alongside the token. Role and guard are
// resolved at login time and travel with the record.
type UserInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Nombres   string `json:"nombres,omitempty"`
	Apellidos string `json:"apellidos,omitempty"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono,omitempty"`
	RolID     uint   `json:"rol_id,omitempty"`
	Rol       *Rol   `json:"rol,omitempty"`
	Role      Role   `json:"role"`
	Guard     string `json:"guard"`
}

// ResolveRole derives the navigation role for a user: the explicit rol
// relation wins, the guard is the fallback, paciente is the default.
func ResolveRole(u *User, guard string) Role {
	if u != nil && u.Rol != nil && u.Rol.Rol != "" {
		switch Role(u.Rol.Rol) {
		case RoleAdmin, RoleDoctor, RolePaciente:
			return Role(u.Rol.Rol)
		}
	}
	return RoleFromGuard(guard)
}

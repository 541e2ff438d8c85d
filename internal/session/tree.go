package session

import "github.com/vitalsalud/citas-core/internal/models"

// Tree identifies which navigation tree is mounted. Exactly one tree is
// active at any time; the router re-resolves it on every refresh.
type Tree string

const (
	TreeLoading  Tree = "loading"
	TreeAuth     Tree = "auth"
	TreeAdmin    Tree = "admin"
	TreeDoctor   Tree = "doctor"
	TreePaciente Tree = "paciente"
)

// ResolveTree maps the stored session to a navigation tree. No token
// always means the auth tree, regardless of any cached role. With a
// token, an absent or unrecognized role falls back to the patient tree,
// never to a privileged one.
func ResolveTree(token string, info *models.UserInfo) Tree {
	if token == "" {
		return TreeAuth
	}
	if info == nil {
		return TreePaciente
	}
	switch info.Role {
	case models.RoleAdmin:
		return TreeAdmin
	case models.RoleDoctor:
		return TreeDoctor
	case models.RolePaciente:
		return TreePaciente
	default:
		return TreePaciente
	}
}

// Screen is a tab entry within a navigation tree
type Screen struct {
	Name string
	Icon string
}

var treeScreens = map[Tree][]Screen{
	TreeAuth: {
		{Name: "Login", Icon: "log-in"},
		{Name: "Registro", Icon: "person-add"},
	},
	TreeAdmin: {
		{Name: "Inicio", Icon: "home"},
		{Name: "Usuarios", Icon: "people-circle"},
		{Name: "Doctores", Icon: "person"},
		{Name: "Pacientes", Icon: "people"},
		{Name: "Especialidades", Icon: "star"},
		{Name: "Consultorios", Icon: "business"},
		{Name: "Citas", Icon: "calendar"},
		{Name: "Perfil", Icon: "person-circle"},
	},
	TreeDoctor: {
		{Name: "Inicio", Icon: "home"},
		{Name: "MisCitas", Icon: "calendar-number"},
		{Name: "Horarios", Icon: "time"},
		{Name: "Perfil", Icon: "person-circle"},
	},
	TreePaciente: {
		{Name: "Inicio", Icon: "home"},
		{Name: "MisCitas", Icon: "calendar-number"},
		{Name: "Perfil", Icon: "person-circle"},
	},
}

// Screens returns the tab entries of a tree. The loading tree has none.
func Screens(tree Tree) []Screen {
	return treeScreens[tree]
}

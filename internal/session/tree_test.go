package session

import (
	"testing"

	"github.com/vitalsalud/citas-core/internal/models"
)

func TestResolveTree(t *testing.T) {
	cases := []struct {
		name  string
		token string
		info  *models.UserInfo
		want  Tree
	}{
		{"no token", "", nil, TreeAuth},
		{"no token ignores cached role", "", &models.UserInfo{Role: models.RoleAdmin}, TreeAuth},
		{"token without info", "tok", nil, TreePaciente},
		{"admin", "tok", &models.UserInfo{Role: models.RoleAdmin}, TreeAdmin},
		{"doctor", "tok", &models.UserInfo{Role: models.RoleDoctor}, TreeDoctor},
		{"paciente", "tok", &models.UserInfo{Role: models.RolePaciente}, TreePaciente},
		{"unrecognized role", "tok", &models.UserInfo{Role: "superuser"}, TreePaciente},
		{"empty role", "tok", &models.UserInfo{}, TreePaciente},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveTree(tc.token, tc.info); got != tc.want {
				t.Errorf("ResolveTree(%q, %+v) = %v, want %v", tc.token, tc.info, got, tc.want)
			}
		})
	}
}

func TestScreens(t *testing.T) {
	doctor := Screens(TreeDoctor)
	want := []string{"Inicio", "MisCitas", "Horarios", "Perfil"}
	if len(doctor) != len(want) {
		t.Fatalf("doctor tree has %d screens, want %d", len(doctor), len(want))
	}
	for i, name := range want {
		if doctor[i].Name != name {
			t.Errorf("doctor screen %d = %q, want %q", i, doctor[i].Name, name)
		}
	}

	if len(Screens(TreePaciente)) != 3 {
		t.Errorf("paciente tree has %d screens, want 3", len(Screens(TreePaciente)))
	}
	if len(Screens(TreeAdmin)) != 8 {
		t.Errorf("admin tree has %d screens, want 8", len(Screens(TreeAdmin)))
	}
	if Screens(TreeLoading) != nil {
		t.Error("loading tree should have no screens")
	}
}

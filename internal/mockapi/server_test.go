package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/vitalsalud/citas-core/internal/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := NewMemoryStore()
	if err := Seed(context.Background(), store); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	server := NewServer(store, NewTokenManager("test-secret", time.Hour))
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func login(t *testing.T, srv *httptest.Server, email, password string) models.LoginResponse {
	t.Helper()
	var resp models.LoginResponse
	status := doJSON(t, http.MethodPost, srv.URL+"/api/login", "",
		models.LoginRequest{Email: email, Password: password}, &resp)
	if status != http.StatusOK {
		t.Fatalf("login returned %d", status)
	}
	return resp
}

func TestLoginIssuesGuardPerRole(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		email, password, guard string
	}{
		{"admin@vitalsalud.ec", "admin123", models.GuardAdmin},
		{"cmendoza@vitalsalud.ec", "doctor123", models.GuardDoctor},
		{"lvargas@correo.ec", "paciente123", models.GuardPaciente},
	}

	for _, tc := range cases {
		resp := login(t, srv, tc.email, tc.password)
		if resp.AccessToken == "" {
			t.Errorf("%s: no access token", tc.email)
		}
		if resp.Guard != tc.guard {
			t.Errorf("%s: guard = %q, want %q", tc.email, resp.Guard, tc.guard)
		}
		if resp.User == nil || resp.User.Email != tc.email {
			t.Errorf("%s: login response missing user", tc.email)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	var resp models.MessageResponse
	status := doJSON(t, http.MethodPost, srv.URL+"/api/login", "",
		models.LoginRequest{Email: "admin@vitalsalud.ec", Password: "wrong"}, &resp)
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if resp.Message != "Credenciales inválidas" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	status := doJSON(t, http.MethodGet, srv.URL+"/api/doctores", "", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", status)
	}

	status = doJSON(t, http.MethodGet, srv.URL+"/api/doctores", "not-a-jwt", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", status)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := newTestServer(t)
	resp := login(t, srv, "admin@vitalsalud.ec", "admin123")

	if status := doJSON(t, http.MethodGet, srv.URL+"/api/users", resp.AccessToken, nil, nil); status != http.StatusOK {
		t.Fatalf("pre-logout request: status = %d", status)
	}

	if status := doJSON(t, http.MethodPost, srv.URL+"/api/logout", resp.AccessToken, struct{}{}, nil); status != http.StatusOK {
		t.Fatalf("logout: status = %d", status)
	}

	if status := doJSON(t, http.MethodGet, srv.URL+"/api/users", resp.AccessToken, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("post-logout request: status = %d, want 401", status)
	}
}

func TestDoctorSessionRoutes(t *testing.T) {
	srv := newTestServer(t)
	resp := login(t, srv, "cmendoza@vitalsalud.ec", "doctor123")

	var horarios models.MisHorariosResponse
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/mis-horarios", resp.AccessToken, nil, &horarios); status != http.StatusOK {
		t.Fatalf("mis-horarios: status = %d", status)
	}
	if len(horarios.MisHorarios) != 3 {
		t.Errorf("seeded doctor has %d slots, want 3", len(horarios.MisHorarios))
	}

	var consultorio models.MiConsultorioResponse
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/mi-consultorio", resp.AccessToken, nil, &consultorio); status != http.StatusOK {
		t.Fatalf("mi-consultorio: status = %d", status)
	}
	if consultorio.MiConsultorio == nil || consultorio.MiConsultorio.Codigo != "C-101" {
		t.Errorf("mi-consultorio = %+v", consultorio.MiConsultorio)
	}
}

func TestAvailabilityFiltersInactiveSlots(t *testing.T) {
	srv := newTestServer(t)
	resp := login(t, srv, "lvargas@correo.ec", "paciente123")

	var doctores models.DoctoresDisponiblesResponse
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/doctores-disponibles", resp.AccessToken, nil, &doctores); status != http.StatusOK {
		t.Fatalf("doctores-disponibles: status = %d", status)
	}
	if len(doctores.DoctoresDisponibles) != 1 {
		t.Fatalf("got %d available doctors, want 1", len(doctores.DoctoresDisponibles))
	}
	doctorID := doctores.DoctoresDisponibles[0].ID

	var horarios models.HorariosDisponiblesResponse
	url := srv.URL + "/api/horarios-disponibles/" + itoa(doctorID)
	if status := doJSON(t, http.MethodGet, url, resp.AccessToken, nil, &horarios); status != http.StatusOK {
		t.Fatalf("horarios-disponibles: status = %d", status)
	}
	// The seeded third slot is inactive
	if len(horarios.HorariosDisponibles) != 2 {
		t.Errorf("got %d available slots, want 2", len(horarios.HorariosDisponibles))
	}
	for _, h := range horarios.HorariosDisponibles {
		if h.Estado != models.HorarioActivo {
			t.Errorf("inactive slot leaked: %+v", h)
		}
	}
}

func TestSolicitarCitaFlow(t *testing.T) {
	srv := newTestServer(t)
	paciente := login(t, srv, "lvargas@correo.ec", "paciente123")
	doctor := login(t, srv, "cmendoza@vitalsalud.ec", "doctor123")

	req := models.SolicitarCitaRequest{
		DoctorID:      1,
		ConsultorioID: 1,
		FechaHora:     "2025-06-10T09:30:00Z",
	}

	var created models.MessageResponse
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/solicitar-cita", paciente.AccessToken, req, &created); status != http.StatusCreated {
		t.Fatalf("solicitar-cita: status = %d", status)
	}

	// The same slot again conflicts
	var conflict models.MessageResponse
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/solicitar-cita", paciente.AccessToken, req, &conflict); status != http.StatusConflict {
		t.Fatalf("duplicate solicitar-cita: status = %d, want 409", status)
	}
	if conflict.Message != "El doctor ya tiene una cita en ese horario" {
		t.Errorf("conflict message = %q", conflict.Message)
	}

	// The doctor sees it pending, with the default note
	var pendientes models.CitasPendientesResponse
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/mis-citas-pendientes", doctor.AccessToken, nil, &pendientes); status != http.StatusOK {
		t.Fatalf("mis-citas-pendientes: status = %d", status)
	}
	if len(pendientes.CitasPendientes) != 1 {
		t.Fatalf("got %d pending appointments, want 1", len(pendientes.CitasPendientes))
	}
	cita := pendientes.CitasPendientes[0]
	if cita.Novedad != models.NovedadPorDefecto {
		t.Errorf("novedad = %q, want default", cita.Novedad)
	}

	// Approve it and the pending list empties
	if status := doJSON(t, http.MethodPut, srv.URL+"/api/aprobar-cita/"+itoa(cita.ID), doctor.AccessToken, nil, nil); status != http.StatusOK {
		t.Fatalf("aprobar-cita: status = %d", status)
	}

	var after models.CitasPendientesResponse
	doJSON(t, http.MethodGet, srv.URL+"/api/mis-citas-pendientes", doctor.AccessToken, nil, &after)
	if len(after.CitasPendientes) != 0 {
		t.Errorf("pending list still has %d entries after approval", len(after.CitasPendientes))
	}

	// Both sides see the appointment in mis-citas
	var misCitas models.CitasResponse
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/mis-citas", paciente.AccessToken, nil, &misCitas); status != http.StatusOK {
		t.Fatalf("patient mis-citas: status = %d", status)
	}
	if len(misCitas.Citas) != 1 || misCitas.Citas[0].Estado != models.CitaProgramada {
		t.Errorf("patient mis-citas = %+v", misCitas.Citas)
	}

	var agenda models.CitasResponse
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/mis-citas", doctor.AccessToken, nil, &agenda); status != http.StatusOK {
		t.Fatalf("doctor mis-citas: status = %d", status)
	}
	if len(agenda.Citas) != 1 {
		t.Errorf("doctor mis-citas = %+v", agenda.Citas)
	}

	// A rejected slot frees up for rebooking
	if status := doJSON(t, http.MethodPut, srv.URL+"/api/rechazar-cita/"+itoa(cita.ID), doctor.AccessToken, nil, nil); status != http.StatusOK {
		t.Fatalf("rechazar-cita: status = %d", status)
	}
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/solicitar-cita", paciente.AccessToken, req, nil); status != http.StatusCreated {
		t.Errorf("rebooking a rejected slot: status = %d, want 201", status)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	var created models.RegisterResponse
	status := doJSON(t, http.MethodPost, srv.URL+"/api/addUser", "",
		models.RegisterRequest{Name: "Nuevo Usuario", Email: "nuevo@correo.ec", Password: "secreto1"}, &created)
	if status != http.StatusCreated {
		t.Fatalf("addUser: status = %d", status)
	}
	if created.User == nil {
		t.Fatal("addUser response missing user")
	}

	// Duplicate email is rejected
	status = doJSON(t, http.MethodPost, srv.URL+"/api/addUser", "",
		models.RegisterRequest{Name: "Otro", Email: "nuevo@correo.ec", Password: "secreto1"}, nil)
	if status != http.StatusConflict {
		t.Errorf("duplicate addUser: status = %d, want 409", status)
	}

	// New accounts default to the patient guard
	resp := login(t, srv, "nuevo@correo.ec", "secreto1")
	if resp.Guard != models.GuardPaciente {
		t.Errorf("guard = %q, want %q", resp.Guard, models.GuardPaciente)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

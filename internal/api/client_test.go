package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vitalsalud/citas-core/internal/models"
	"github.com/vitalsalud/citas-core/internal/storage"
)

func seedSession(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()
	if err := store.Set(ctx, storage.KeyUserToken, "tok-123"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
	payload, _ := json.Marshal(models.UserInfo{ID: 1, Guard: models.GuardDoctor, Role: models.RoleDoctor})
	if err := store.Set(ctx, storage.KeyUserInfo, string(payload)); err != nil {
		t.Fatalf("failed to seed user info: %v", err)
	}
}

func TestClientAttachesAuthHeaders(t *testing.T) {
	store := storage.NewMemoryStore()
	seedSession(t, store)

	var gotAuth, gotGuard string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotGuard = r.Header.Get("X-Auth-Guard")
		json.NewEncoder(w).Encode(models.DoctoresResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store, time.Second)
	var resp models.DoctoresResponse
	if err := client.Get(context.Background(), "api/doctores", &resp); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotGuard != models.GuardDoctor {
		t.Errorf("X-Auth-Guard = %q, want %q", gotGuard, models.GuardDoctor)
	}
}

func TestClientSkipsAuthOnPublicRoute(t *testing.T) {
	store := storage.NewMemoryStore()
	seedSession(t, store)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.LoginResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store, time.Second)
	var resp models.LoginResponse
	if err := client.Post(context.Background(), "api/login", models.LoginRequest{}, &resp); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("public route carried Authorization %q", gotAuth)
	}
}

func TestClientClearsTokenOnceOn401(t *testing.T) {
	store := storage.NewMemoryStore()
	seedSession(t, store)

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "No autenticado"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store, time.Second)
	err := client.Get(context.Background(), "api/mis-citas", nil)
	if err == nil {
		t.Fatal("expected an error for 401")
	}

	// The failed request is never replayed
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}

	// The token is gone, the user info survives
	if _, err := store.Get(context.Background(), storage.KeyUserToken); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("token should be cleared after 401, got %v", err)
	}
	if _, err := store.Get(context.Background(), storage.KeyUserInfo); err != nil {
		t.Errorf("user info should survive a 401, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected a 401 api error, got %v", err)
	}
}

func TestClient401OnPublicRouteKeepsToken(t *testing.T) {
	store := storage.NewMemoryStore()
	seedSession(t, store)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Credenciales inválidas"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store, time.Second)
	if err := client.Post(context.Background(), "api/login", models.LoginRequest{}, nil); err == nil {
		t.Fatal("expected an error for 401")
	}

	if _, err := store.Get(context.Background(), storage.KeyUserToken); err != nil {
		t.Errorf("a failed login must not clear the existing token, got %v", err)
	}
}

func TestClientDecodesWrapperKeys(t *testing.T) {
	store := storage.NewMemoryStore()
	seedSession(t, store)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"horarios_disponibles": []models.Horario{
				{ID: 10, HoraInicio: "09:30", HoraFin: "10:00"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, store, time.Second)
	var resp models.HorariosDisponiblesResponse
	if err := client.Get(context.Background(), "api/horarios-disponibles/1", &resp); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if len(resp.HorariosDisponibles) != 1 || resp.HorariosDisponibles[0].HoraInicio != "09:30" {
		t.Errorf("unexpected decode result: %+v", resp)
	}
}

func TestServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "El doctor ya tiene una cita en ese horario"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, storage.NewMemoryStore(), time.Second)
	err := client.Post(context.Background(), "api/solicitar-cita", models.SolicitarCitaRequest{}, nil)
	if err == nil {
		t.Fatal("expected an error for 409")
	}

	// The backend's message is surfaced verbatim
	if got := ServerMessage(err); got != "El doctor ya tiene una cita en ese horario" {
		t.Errorf("ServerMessage = %q", got)
	}

	// Anything else falls back to the generic localized message
	if got := ServerMessage(errors.New("dial tcp: connection refused")); got != GenericFailureMessage {
		t.Errorf("ServerMessage fallback = %q, want %q", got, GenericFailureMessage)
	}
}

func TestIsPublicRoute(t *testing.T) {
	if !IsPublicRoute("api/login") {
		t.Error("api/login should be public")
	}
	if IsPublicRoute("api/logout") {
		t.Error("api/logout should not be public")
	}
	if IsPublicRoute("api/mis-citas") {
		t.Error("api/mis-citas should not be public")
	}
}

package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vitalsalud/citas-core/internal/models"
)

type fakeBookingAPI struct {
	doctores     []models.Doctor
	horarios     []models.Horario
	consultorios []models.Consultorio

	horariosFecha string
	solicitudes   []models.SolicitarCitaRequest
	solicitarErr  error

	beforeConsultorios func()
}

func (f *fakeBookingAPI) DoctoresDisponibles(ctx context.Context) ([]models.Doctor, error) {
	return f.doctores, nil
}

func (f *fakeBookingAPI) HorariosDisponibles(ctx context.Context, doctorID uint, fecha string) ([]models.Horario, error) {
	f.horariosFecha = fecha
	return f.horarios, nil
}

func (f *fakeBookingAPI) ConsultoriosDisponibles(ctx context.Context, doctorID uint) ([]models.Consultorio, error) {
	if f.beforeConsultorios != nil {
		f.beforeConsultorios()
	}
	return f.consultorios, nil
}

func (f *fakeBookingAPI) SolicitarCita(ctx context.Context, req models.SolicitarCitaRequest) (*models.MessageResponse, error) {
	if f.solicitarErr != nil {
		return nil, f.solicitarErr
	}
	f.solicitudes = append(f.solicitudes, req)
	return &models.MessageResponse{Message: "Cita solicitada correctamente"}, nil
}

func newFakeAPI() *fakeBookingAPI {
	return &fakeBookingAPI{
		doctores:     []models.Doctor{{ID: 1, Nombres: "Carlos"}, {ID: 2, Nombres: "Elena"}},
		horarios:     []models.Horario{{ID: 10, HoraInicio: "09:30", HoraFin: "10:00", Estado: models.HorarioActivo}},
		consultorios: []models.Consultorio{{ID: 5, Codigo: "C-101"}},
	}
}

func TestWizardExplicitDateFlow(t *testing.T) {
	api := newFakeAPI()
	w := NewWizard(api, DateModeExplicit)
	w.nowFn = func() time.Time { return time.Date(2025, 6, 20, 15, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	if err := w.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := w.Stage(); got != StageSelectDoctor {
		t.Fatalf("stage = %v, want StageSelectDoctor", got)
	}

	if err := w.SelectDoctor(ctx, api.doctores[0]); err != nil {
		t.Fatalf("SelectDoctor failed: %v", err)
	}
	if got := w.Stage(); got != StageSelectDate {
		t.Fatalf("stage = %v, want StageSelectDate", got)
	}

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if err := w.SelectDate(ctx, date); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if api.horariosFecha != "2025-06-10" {
		t.Errorf("slots fetched for %q, want 2025-06-10", api.horariosFecha)
	}

	if err := w.SelectHorario(api.horarios[0]); err != nil {
		t.Fatalf("SelectHorario failed: %v", err)
	}
	if err := w.SelectConsultorio(api.consultorios[0]); err != nil {
		t.Fatalf("SelectConsultorio failed: %v", err)
	}
	if !w.CanSubmit() {
		t.Fatal("CanSubmit should be true with a complete selection")
	}

	resp, err := w.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if resp == nil || resp.Message == "" {
		t.Fatal("expected an acknowledgement message")
	}
	if got := w.Stage(); got != StageSubmitted {
		t.Errorf("stage = %v, want StageSubmitted", got)
	}

	if len(api.solicitudes) != 1 {
		t.Fatalf("expected 1 request, got %d", len(api.solicitudes))
	}
	req := api.solicitudes[0]
	if req.DoctorID != 1 || req.ConsultorioID != 5 {
		t.Errorf("unexpected selection in request: %+v", req)
	}
	if req.FechaHora != "2025-06-10T09:30:00Z" {
		t.Errorf("FechaHora = %q, want composed date+slot instant", req.FechaHora)
	}
	if req.Novedad != models.NovedadPorDefecto {
		t.Errorf("Novedad = %q, want default", req.Novedad)
	}
}

func TestWizardSlotDateFlow(t *testing.T) {
	api := newFakeAPI()
	api.horarios = []models.Horario{{ID: 10, HoraInicio: "09:30", FechaHora: "2025-06-11T09:30:00Z"}}
	w := NewWizard(api, DateModeSlot)
	ctx := context.Background()

	if err := w.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := w.SelectDoctor(ctx, api.doctores[0]); err != nil {
		t.Fatalf("SelectDoctor failed: %v", err)
	}

	// The slot flow goes straight to slot selection
	if got := w.Stage(); got != StageSelectSlot {
		t.Fatalf("stage = %v, want StageSelectSlot", got)
	}
	if len(w.Horarios()) != 1 {
		t.Fatal("slots should be loaded on doctor selection in slot mode")
	}

	if err := w.SelectHorario(api.horarios[0]); err != nil {
		t.Fatalf("SelectHorario failed: %v", err)
	}
	if err := w.SelectConsultorio(api.consultorios[0]); err != nil {
		t.Fatalf("SelectConsultorio failed: %v", err)
	}

	w.SetNovedad("  Control mensual  ")
	if _, err := w.Submit(ctx); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	req := api.solicitudes[0]
	if req.FechaHora != "2025-06-11T09:30:00Z" {
		t.Errorf("FechaHora = %q, want slot timestamp", req.FechaHora)
	}
	if req.Novedad != "Control mensual" {
		t.Errorf("Novedad = %q, want trimmed note", req.Novedad)
	}
}

func TestWizardSelectionOrderEnforced(t *testing.T) {
	api := newFakeAPI()
	w := NewWizard(api, DateModeExplicit)
	ctx := context.Background()

	if err := w.SelectDate(ctx, time.Now()); !errors.Is(err, ErrNoDoctor) {
		t.Errorf("SelectDate before doctor: got %v, want ErrNoDoctor", err)
	}
	if err := w.SelectHorario(models.Horario{ID: 1}); !errors.Is(err, ErrNoDoctor) {
		t.Errorf("SelectHorario before doctor: got %v, want ErrNoDoctor", err)
	}
	if err := w.SelectConsultorio(models.Consultorio{ID: 1}); !errors.Is(err, ErrNoHorario) {
		t.Errorf("SelectConsultorio before slot: got %v, want ErrNoHorario", err)
	}

	if err := w.SelectDoctor(ctx, api.doctores[0]); err != nil {
		t.Fatalf("SelectDoctor failed: %v", err)
	}
	if err := w.SelectHorario(models.Horario{ID: 1}); !errors.Is(err, ErrNoDate) {
		t.Errorf("SelectHorario before date in explicit mode: got %v, want ErrNoDate", err)
	}

	if _, err := w.Submit(ctx); !errors.Is(err, ErrSelectionIncomplete) {
		t.Errorf("Submit with partial selection: got %v, want ErrSelectionIncomplete", err)
	}
}

func TestWizardDoctorChangeClearsDownstream(t *testing.T) {
	api := newFakeAPI()
	w := NewWizard(api, DateModeExplicit)
	ctx := context.Background()

	if err := w.SelectDoctor(ctx, api.doctores[0]); err != nil {
		t.Fatalf("SelectDoctor failed: %v", err)
	}
	if err := w.SelectDate(ctx, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := w.SelectHorario(api.horarios[0]); err != nil {
		t.Fatalf("SelectHorario failed: %v", err)
	}
	if err := w.SelectConsultorio(api.consultorios[0]); err != nil {
		t.Fatalf("SelectConsultorio failed: %v", err)
	}

	// Re-picking the doctor discards date, slot and office
	if err := w.SelectDoctor(ctx, api.doctores[1]); err != nil {
		t.Fatalf("second SelectDoctor failed: %v", err)
	}
	if got := w.Stage(); got != StageSelectDate {
		t.Errorf("stage after doctor change = %v, want StageSelectDate", got)
	}
	if w.Horario() != nil || w.Consultorio() != nil {
		t.Error("slot and office should be cleared on doctor change")
	}
	if w.CanSubmit() {
		t.Error("CanSubmit should be false after doctor change")
	}
}

func TestWizardGoBackClearsLaterStages(t *testing.T) {
	api := newFakeAPI()
	w := NewWizard(api, DateModeExplicit)
	ctx := context.Background()

	if err := w.SelectDoctor(ctx, api.doctores[0]); err != nil {
		t.Fatalf("SelectDoctor failed: %v", err)
	}
	if err := w.SelectDate(ctx, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := w.SelectHorario(api.horarios[0]); err != nil {
		t.Fatalf("SelectHorario failed: %v", err)
	}

	w.GoBack(StageSelectDate)

	if got := w.Stage(); got != StageSelectDate {
		t.Errorf("stage = %v, want StageSelectDate", got)
	}
	if w.Horario() != nil {
		t.Error("slot should be cleared when going back to the date stage")
	}
}

func TestWizardStaleFetchDropped(t *testing.T) {
	api := newFakeAPI()
	w := NewWizard(api, DateModeExplicit)
	ctx := context.Background()

	// The selection is abandoned while the office fetch is in flight
	api.beforeConsultorios = func() {
		w.GoBack(StageSelectDoctor)
	}

	if err := w.SelectDoctor(ctx, api.doctores[0]); err != nil {
		t.Fatalf("SelectDoctor failed: %v", err)
	}

	if got := w.Consultorios(); got != nil {
		t.Errorf("stale office fetch should be dropped, got %v", got)
	}
}

func TestWizardSubmitFailurePreservesSelection(t *testing.T) {
	api := newFakeAPI()
	api.solicitarErr = errors.New("el doctor ya tiene una cita en ese horario")
	w := NewWizard(api, DateModeExplicit)
	ctx := context.Background()

	if err := w.SelectDoctor(ctx, api.doctores[0]); err != nil {
		t.Fatalf("SelectDoctor failed: %v", err)
	}
	if err := w.SelectDate(ctx, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SelectDate failed: %v", err)
	}
	if err := w.SelectHorario(api.horarios[0]); err != nil {
		t.Fatalf("SelectHorario failed: %v", err)
	}
	if err := w.SelectConsultorio(api.consultorios[0]); err != nil {
		t.Fatalf("SelectConsultorio failed: %v", err)
	}

	if _, err := w.Submit(ctx); err == nil {
		t.Fatal("Submit should propagate the failure")
	}

	// Retry without re-selecting anything
	if got := w.Stage(); got != StageConfirm {
		t.Errorf("stage after failed submit = %v, want StageConfirm", got)
	}
	api.solicitarErr = nil
	if _, err := w.Submit(ctx); err != nil {
		t.Fatalf("retry Submit failed: %v", err)
	}
}

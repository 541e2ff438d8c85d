package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/models"
)

// Stage is a step of the booking flow. Stages are strictly ordered; a
// selection at one stage is only meaningful once every earlier stage is
// settled.
type Stage int

const (
	StageSelectDoctor Stage = iota
	StageSelectDate
	StageSelectSlot
	StageSelectOffice
	StageConfirm
	StageSubmitted
)

// DateMode distinguishes the two booking flows: the patient flow collects
// an explicit calendar date before showing slots, the doctor-side flow
// infers the date from slot metadata.
type DateMode int

const (
	DateModeExplicit DateMode = iota
	DateModeSlot
)

// Validation errors, raised before any network call
var (
	ErrNoDoctor            = errors.New("no doctor selected")
	ErrNoDate              = errors.New("no date confirmed")
	ErrNoHorario           = errors.New("no schedule slot selected")
	ErrSelectionIncomplete = errors.New("doctor, date, slot and office must all be selected")
	ErrDateNotCollected    = errors.New("this flow does not collect an explicit date")
)

// BookingAPI is the slice of the patient service the wizard drives
type BookingAPI interface {
	DoctoresDisponibles(ctx context.Context) ([]models.Doctor, error)
	HorariosDisponibles(ctx context.Context, doctorID uint, fecha string) ([]models.Horario, error)
	ConsultoriosDisponibles(ctx context.Context, doctorID uint) ([]models.Consultorio, error)
	SolicitarCita(ctx context.Context, req models.SolicitarCitaRequest) (*models.MessageResponse, error)
}

// Wizard owns the ephemeral appointment-request selection. Changing a
// selection clears everything downstream of it so a submission can never
// combine stale picks, and every list fetch carries a generation stamp so
// a late response for an abandoned selection is dropped.
type Wizard struct {
	api      BookingAPI
	mode     DateMode
	fallback DateFallback
	nowFn    func() time.Time

	mu           sync.Mutex
	gen          uint64
	doctores     []models.Doctor
	horarios     []models.Horario
	consultorios []models.Consultorio

	doctor        *models.Doctor
	date          *time.Time
	dateConfirmed bool
	horario       *models.Horario
	consultorio   *models.Consultorio
	novedad       string
	submitted     bool
}

// NewWizard creates a wizard in the given mode. The explicit-date flow
// fails closed on missing dates; the slot-metadata flow falls back to the
// current day, matching the doctor-side screen.
func NewWizard(api BookingAPI, mode DateMode) *Wizard {
	fallback := FallbackNone
	if mode == DateModeSlot {
		fallback = FallbackToday
	}
	return &Wizard{
		api:      api,
		mode:     mode,
		fallback: fallback,
		nowFn:    time.Now,
	}
}

// SetFallback overrides the last-resort date strategy
func (w *Wizard) SetFallback(f DateFallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fallback = f
}

// Open resets the selection and loads the available doctors, once per
// wizard session.
func (w *Wizard) Open(ctx context.Context) error {
	w.mu.Lock()
	w.reset()
	gen := w.gen
	w.mu.Unlock()

	doctores, err := w.api.DoctoresDisponibles(ctx)
	if err != nil {
		return fmt.Errorf("failed to load available doctors: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		return nil
	}
	w.doctores = doctores
	return nil
}

// reset clears every selection and cached list; callers hold the lock
func (w *Wizard) reset() {
	w.gen++
	w.doctor = nil
	w.date = nil
	w.dateConfirmed = false
	w.horario = nil
	w.consultorio = nil
	w.novedad = ""
	w.submitted = false
	w.doctores = nil
	w.horarios = nil
	w.consultorios = nil
}

// SelectDoctor picks a doctor, discards every downstream selection and
// loads the doctor's offices, plus slots immediately in the slot-date flow.
func (w *Wizard) SelectDoctor(ctx context.Context, doctor models.Doctor) error {
	w.mu.Lock()
	w.gen++
	gen := w.gen
	d := doctor
	w.doctor = &d
	w.date = nil
	w.dateConfirmed = false
	w.horario = nil
	w.consultorio = nil
	w.horarios = nil
	w.consultorios = nil
	w.submitted = false
	mode := w.mode
	w.mu.Unlock()

	consultorios, err := w.api.ConsultoriosDisponibles(ctx, doctor.ID)
	if err != nil {
		return fmt.Errorf("failed to load available offices: %w", err)
	}

	var horarios []models.Horario
	if mode == DateModeSlot {
		horarios, err = w.api.HorariosDisponibles(ctx, doctor.ID, "")
		if err != nil {
			return fmt.Errorf("failed to load available slots: %w", err)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		log.Debug().Uint("doctor_id", doctor.ID).Msg("Dropping stale selection fetch")
		return nil
	}
	w.consultorios = consultorios
	if mode == DateModeSlot {
		w.horarios = horarios
	}
	return nil
}

// SelectDate confirms a calendar date in the explicit-date flow, clears
// any chosen slot and loads the slots for that doctor and day.
func (w *Wizard) SelectDate(ctx context.Context, date time.Time) error {
	w.mu.Lock()
	if w.mode != DateModeExplicit {
		w.mu.Unlock()
		return ErrDateNotCollected
	}
	if w.doctor == nil {
		w.mu.Unlock()
		return ErrNoDoctor
	}
	w.gen++
	gen := w.gen
	d := date
	w.date = &d
	w.dateConfirmed = true
	w.horario = nil
	w.horarios = nil
	doctorID := w.doctor.ID
	w.mu.Unlock()

	horarios, err := w.api.HorariosDisponibles(ctx, doctorID, date.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to load available slots: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		return nil
	}
	w.horarios = horarios
	return nil
}

// SelectHorario picks a slot; requires a doctor and, in the explicit
// flow, a confirmed date.
func (w *Wizard) SelectHorario(horario models.Horario) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.doctor == nil {
		return ErrNoDoctor
	}
	if w.mode == DateModeExplicit && !w.dateConfirmed {
		return ErrNoDate
	}
	h := horario
	w.horario = &h
	w.consultorio = nil
	return nil
}

// SelectConsultorio picks an office; only valid once a slot is chosen
func (w *Wizard) SelectConsultorio(consultorio models.Consultorio) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.horario == nil {
		return ErrNoHorario
	}
	c := consultorio
	w.consultorio = &c
	return nil
}

// SetNovedad records the free-text note
func (w *Wizard) SetNovedad(novedad string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.novedad = novedad
}

// GoBack re-enters a stage, clearing it and every stage after it
func (w *Wizard) GoBack(stage Stage) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.gen++
	w.submitted = false
	switch stage {
	case StageSelectDoctor:
		w.doctor = nil
		w.consultorios = nil
		fallthrough
	case StageSelectDate:
		w.date = nil
		w.dateConfirmed = false
		w.horarios = nil
		fallthrough
	case StageSelectSlot:
		w.horario = nil
		fallthrough
	case StageSelectOffice:
		w.consultorio = nil
	}
}

// Stage derives the current step from which selections are settled
func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.doctor == nil:
		return StageSelectDoctor
	case w.mode == DateModeExplicit && !w.dateConfirmed:
		return StageSelectDate
	case w.horario == nil:
		return StageSelectSlot
	case w.consultorio == nil:
		return StageSelectOffice
	case !w.submitted:
		return StageConfirm
	default:
		return StageSubmitted
	}
}

// CanSubmit reports whether every required selection is settled. The
// submit control stays hidden until this is true.
func (w *Wizard) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canSubmitLocked()
}

func (w *Wizard) canSubmitLocked() bool {
	if w.doctor == nil || w.horario == nil || w.consultorio == nil {
		return false
	}
	if w.mode == DateModeExplicit && (!w.dateConfirmed || w.date == nil) {
		return false
	}
	return true
}

// Doctores returns the fetched doctor list
func (w *Wizard) Doctores() []models.Doctor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doctores
}

// Horarios returns the fetched slot list for the current selection
func (w *Wizard) Horarios() []models.Horario {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.horarios
}

// Consultorios returns the fetched office list for the current doctor
func (w *Wizard) Consultorios() []models.Consultorio {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.consultorios
}

// Consultorio returns the chosen office, nil when none is chosen yet
func (w *Wizard) Consultorio() *models.Consultorio {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.consultorio
}

// Horario returns the chosen slot, nil when none is chosen yet
func (w *Wizard) Horario() *models.Horario {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.horario
}

// Submit validates the selection, composes the appointment instant and
// sends the request. On failure the selection is preserved so the user
// can retry without re-selecting; on success the wizard moves to
// Submitted and keeps nothing.
func (w *Wizard) Submit(ctx context.Context) (*models.MessageResponse, error) {
	w.mu.Lock()
	if !w.canSubmitLocked() {
		w.mu.Unlock()
		return nil, ErrSelectionIncomplete
	}

	instant, err := ResolveAppointmentInstant(*w.horario, w.date, w.fallback, w.nowFn())
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	novedad := strings.TrimSpace(w.novedad)
	if novedad == "" {
		novedad = models.NovedadPorDefecto
	}

	req := models.SolicitarCitaRequest{
		DoctorID:      w.doctor.ID,
		ConsultorioID: w.consultorio.ID,
		FechaHora:     FormatInstant(instant),
		Novedad:       novedad,
	}
	gen := w.gen
	w.mu.Unlock()

	resp, err := w.api.SolicitarCita(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit appointment: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen == w.gen {
		w.submitted = true
	}
	return resp, nil
}

package booking

import (
	"context"
	"errors"
)

// ErrNotConfirmed means a destructive action was invoked without the
// user confirming it; no request was sent.
var ErrNotConfirmed = errors.New("action not confirmed")

// DoctorAPI is the slice of the doctor service the action handler drives
type DoctorAPI interface {
	AprobarCita(ctx context.Context, id uint) error
	RechazarCita(ctx context.Context, id uint) error
	CompletarCita(ctx context.Context, id uint) error
}

// ConfirmFunc asks the user to confirm an action on an appointment and
// reports their answer. The UI layer supplies it.
type ConfirmFunc func(action string, citaID uint) bool

// Actions fires the doctor-side state transitions on existing
// appointments. Approving fires immediately; rejecting and completing
// are gated behind an explicit confirmation.
type Actions struct {
	api     DoctorAPI
	confirm ConfirmFunc
}

// NewActions creates an action handler; confirm may not be nil
func NewActions(api DoctorAPI, confirm ConfirmFunc) *Actions {
	return &Actions{api: api, confirm: confirm}
}

// Aprobar approves a pending appointment without confirmation
func (a *Actions) Aprobar(ctx context.Context, citaID uint) error {
	return a.api.AprobarCita(ctx, citaID)
}

// Rechazar rejects an appointment after user confirmation
func (a *Actions) Rechazar(ctx context.Context, citaID uint) error {
	if a.confirm == nil || !a.confirm("rechazar", citaID) {
		return ErrNotConfirmed
	}
	return a.api.RechazarCita(ctx, citaID)
}

// Completar marks an appointment completed after user confirmation
func (a *Actions) Completar(ctx context.Context, citaID uint) error {
	if a.confirm == nil || !a.confirm("completar", citaID) {
		return ErrNotConfirmed
	}
	return a.api.CompletarCita(ctx, citaID)
}

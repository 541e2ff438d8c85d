package booking

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/vitalsalud/citas-core/internal/models"
)

// ErrIncompleteDate means no valid date component could be resolved for
// the appointment instant. Submission must stop rather than guess.
var ErrIncompleteDate = errors.New("no valid date component for appointment")

// DateFallback selects the last-resort date when neither an explicit
// date nor slot metadata yields one.
type DateFallback int

const (
	// FallbackNone fails closed; used when the flow collects an explicit date
	FallbackNone DateFallback = iota
	// FallbackToday uses the current calendar day
	FallbackToday
	// FallbackTomorrow uses the next calendar day
	FallbackTomorrow
)

// Timestamp layouts a slot's combined date-time field may arrive in
var slotTimestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ResolveAppointmentInstant builds the appointment instant from the date
// component and the slot's start time of day. The date component is
// resolved in priority order: the explicit date, a combined timestamp on
// the slot, the slot's own date field, then the configured fallback day.
// With no resolvable date it returns ErrIncompleteDate.
func ResolveAppointmentInstant(slot models.Horario, explicitDate *time.Time, fallback DateFallback, now time.Time) (time.Time, error) {
	hour, minute := parseHoraInicio(slot.HoraInicio)

	if explicitDate != nil {
		d := *explicitDate
		return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()), nil
	}

	if raw := firstNonEmpty(slot.FechaHora, slot.FechaHoraInicio); raw != "" {
		for _, layout := range slotTimestampLayouts {
			if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
				return t, nil
			}
		}
	}

	if raw := firstNonEmpty(slot.Fecha, slot.FechaDia, slot.Dia); raw != "" {
		if d, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, now.Location()), nil
		}
	}

	if slot.HoraInicio != "" {
		switch fallback {
		case FallbackToday:
			return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
		case FallbackTomorrow:
			d := now.AddDate(0, 0, 1)
			return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, now.Location()), nil
		}
	}

	return time.Time{}, ErrIncompleteDate
}

// FormatInstant serializes a resolved instant for the wire
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseHoraInicio reads "HH:mm"; unparseable components become zero, the
// same forgiving treatment the booking screens always applied.
func parseHoraInicio(s string) (hour, minute int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) > 0 {
		if h, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			hour = h
		}
	}
	if len(parts) > 1 {
		if m, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			minute = m
		}
	}
	return hour, minute
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/vitalsalud/citas-core/internal/models"
)

var testNow = time.Date(2025, 6, 20, 15, 0, 0, 0, time.UTC)

func TestResolveInstantExplicitDate(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	slot := models.Horario{HoraInicio: "09:30", HoraFin: "10:00"}

	got, err := ResolveAppointmentInstant(slot, &date, FallbackNone, testNow)
	if err != nil {
		t.Fatalf("ResolveAppointmentInstant failed: %v", err)
	}

	want := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveInstantExplicitDateWinsOverSlotMetadata(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	slot := models.Horario{
		HoraInicio: "09:30",
		FechaHora:  "2025-07-01T08:00:00Z",
		Fecha:      "2025-07-02",
	}

	got, err := ResolveAppointmentInstant(slot, &date, FallbackNone, testNow)
	if err != nil {
		t.Fatalf("ResolveAppointmentInstant failed: %v", err)
	}
	if got.Day() != 10 || got.Month() != time.June {
		t.Errorf("explicit date should win, got %v", got)
	}
}

func TestResolveInstantCombinedTimestamp(t *testing.T) {
	cases := []struct {
		name string
		slot models.Horario
		want time.Time
	}{
		{
			name: "rfc3339",
			slot: models.Horario{HoraInicio: "09:30", FechaHora: "2025-06-11T09:30:00Z"},
			want: time.Date(2025, 6, 11, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "no timezone",
			slot: models.Horario{HoraInicio: "09:30", FechaHora: "2025-06-11T09:30:00"},
			want: time.Date(2025, 6, 11, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "space separated",
			slot: models.Horario{HoraInicio: "09:30", FechaHora: "2025-06-11 09:30:00"},
			want: time.Date(2025, 6, 11, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "fechaHoraInicio fallback",
			slot: models.Horario{HoraInicio: "09:30", FechaHoraInicio: "2025-06-12T09:30:00Z"},
			want: time.Date(2025, 6, 12, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveAppointmentInstant(tc.slot, nil, FallbackNone, testNow)
			if err != nil {
				t.Fatalf("ResolveAppointmentInstant failed: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolveInstantDateFieldPlusStartTime(t *testing.T) {
	slot := models.Horario{HoraInicio: "11:15", Fecha: "2025-06-13"}

	got, err := ResolveAppointmentInstant(slot, nil, FallbackNone, testNow)
	if err != nil {
		t.Fatalf("ResolveAppointmentInstant failed: %v", err)
	}

	want := time.Date(2025, 6, 13, 11, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveInstantFallbackToday(t *testing.T) {
	slot := models.Horario{HoraInicio: "09:30"}

	got, err := ResolveAppointmentInstant(slot, nil, FallbackToday, testNow)
	if err != nil {
		t.Fatalf("ResolveAppointmentInstant failed: %v", err)
	}

	want := time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveInstantFallbackTomorrow(t *testing.T) {
	slot := models.Horario{HoraInicio: "08:00"}

	got, err := ResolveAppointmentInstant(slot, nil, FallbackTomorrow, testNow)
	if err != nil {
		t.Fatalf("ResolveAppointmentInstant failed: %v", err)
	}

	want := time.Date(2025, 6, 21, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveInstantIncompleteDate(t *testing.T) {
	// No date anywhere and fail-closed fallback
	slot := models.Horario{HoraInicio: "09:30"}
	if _, err := ResolveAppointmentInstant(slot, nil, FallbackNone, testNow); !errors.Is(err, ErrIncompleteDate) {
		t.Errorf("expected ErrIncompleteDate, got %v", err)
	}

	// No start time either; fallback cannot apply
	empty := models.Horario{}
	if _, err := ResolveAppointmentInstant(empty, nil, FallbackToday, testNow); !errors.Is(err, ErrIncompleteDate) {
		t.Errorf("expected ErrIncompleteDate for empty slot, got %v", err)
	}
}

func TestResolveInstantUnparseableTimeOfDay(t *testing.T) {
	slot := models.Horario{HoraInicio: "ab:cd", Fecha: "2025-06-13"}

	got, err := ResolveAppointmentInstant(slot, nil, FallbackNone, testNow)
	if err != nil {
		t.Fatalf("ResolveAppointmentInstant failed: %v", err)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("unparseable time should resolve to midnight, got %v", got)
	}
}

func TestFormatInstant(t *testing.T) {
	loc := time.FixedZone("ECT", -5*3600)
	instant := time.Date(2025, 6, 10, 9, 30, 0, 0, loc)

	if got := FormatInstant(instant); got != "2025-06-10T14:30:00Z" {
		t.Errorf("got %q", got)
	}
}

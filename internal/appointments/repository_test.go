package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicflow/scheduler/internal/triage"
)

func newTestAppointment(id, doctorID, slotTime string, bookedAt time.Time) *Appointment {
	return &Appointment{
		ID:            id,
		PatientID:     "patient-1",
		DoctorID:      doctorID,
		SlotDate:      "2026-03-02",
		SlotTime:      slotTime,
		SlotEndTime:   "",
		HealthProblem: "persistent cough",
		Severity:      triage.SeverityLow,
		RiskScore:     10,
		Status:        StatusPending,
		BookedAt:      bookedAt,
		UpdatedAt:     bookedAt,
	}
}

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	appt := newTestAppointment("appt-1", "doc-1", "09:00", time.Now().UTC())
	if err := repo.Create(ctx, appt); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "appt-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.DoctorID != "doc-1" || got.SlotTime != "09:00" {
		t.Errorf("unexpected appointment: %+v", got)
	}

	// Mutating the returned copy must not leak back into the store.
	got.SlotTime = "10:00"
	again, _ := repo.GetByID(ctx, "appt-1")
	if again.SlotTime != "09:00" {
		t.Error("repository returned aliased state")
	}
}

func TestInMemoryRepository_GetByIDNotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryRepository_ListByDoctorDate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	for _, appt := range []*Appointment{
		newTestAppointment("a", "doc-1", "09:30", base),
		newTestAppointment("b", "doc-1", "09:00", base.Add(time.Minute)),
		newTestAppointment("c", "doc-2", "09:00", base),
	} {
		if err := repo.Create(ctx, appt); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	other := newTestAppointment("d", "doc-1", "09:00", base)
	other.SlotDate = "2026-03-03"
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.ListByDoctorDate(ctx, "doc-1", "2026-03-02")
	if err != nil {
		t.Fatalf("ListByDoctorDate failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("expected slot-time order [b a], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestInMemoryRepository_UpdateAllAtomic(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	appt := newTestAppointment("a", "doc-1", "09:00", now)
	if err := repo.Create(ctx, appt); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	shifted := appt.Clone()
	shifted.SlotTime = "09:15"
	missing := newTestAppointment("ghost", "doc-1", "10:00", now)

	if err := repo.UpdateAll(ctx, []*Appointment{shifted, missing}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The batch failed, so nothing may have been written.
	got, _ := repo.GetByID(ctx, "a")
	if got.SlotTime != "09:00" {
		t.Errorf("partial batch applied: slot time %s", got.SlotTime)
	}

	if err := repo.UpdateAll(ctx, []*Appointment{shifted}); err != nil {
		t.Fatalf("UpdateAll failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, "a")
	if got.SlotTime != "09:15" {
		t.Errorf("expected updated slot time, got %s", got.SlotTime)
	}
}

func TestInMemoryRepository_Delete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	appt := newTestAppointment("a", "doc-1", "09:00", time.Now().UTC())
	if err := repo.Create(ctx, appt); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status        Status
		active        bool
		holdsSlot     bool
		reschedulable bool
	}{
		{StatusPending, true, true, true},
		{StatusConfirmed, true, true, true},
		{StatusInProgress, true, true, false},
		{StatusCompleted, false, true, false},
		{StatusCancelled, false, false, false},
		{StatusNoShow, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.status.Active(); got != tt.active {
			t.Errorf("%s.Active() = %v, want %v", tt.status, got, tt.active)
		}
		if got := tt.status.HoldsSlot(); got != tt.holdsSlot {
			t.Errorf("%s.HoldsSlot() = %v, want %v", tt.status, got, tt.holdsSlot)
		}
		if got := tt.status.Reschedulable(); got != tt.reschedulable {
			t.Errorf("%s.Reschedulable() = %v, want %v", tt.status, got, tt.reschedulable)
		}
		if !tt.status.Valid() {
			t.Errorf("%s should be valid", tt.status)
		}
	}
	if Status("bogus").Valid() {
		t.Error("bogus status should not be valid")
	}
}

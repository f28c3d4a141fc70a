package appointments

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for appointment storage.
// UpdateAll must apply the whole batch atomically: a cascade that
// shifts several appointments either fully persists or fully rolls
// back. Delete removes a row outright; cancellation is a status
// change, so Delete exists only to undo a booking whose follow-up
// writes failed.
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	ListByDoctorDate(ctx context.Context, doctorID, slotDate string) ([]*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	UpdateAll(ctx context.Context, appts []*Appointment) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is a Repository backed by an in-process map. Used
// in tests and in memory mode.
type InMemoryRepository struct {
	mu    sync.RWMutex
	appts map[string]*Appointment
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appts: make(map[string]*Appointment),
	}
}

// Create stores a new appointment.
func (r *InMemoryRepository) Create(ctx context.Context, appt *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appts[appt.ID] = appt.Clone()
	return nil
}

// GetByID retrieves an appointment by ID.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return appt.Clone(), nil
}

// ListByDoctorDate returns every appointment for one (doctor, day)
// pair, ordered by slot time then booking time for determinism.
func (r *InMemoryRepository) ListByDoctorDate(ctx context.Context, doctorID, slotDate string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, appt := range r.appts {
		if appt.DoctorID == doctorID && appt.SlotDate == slotDate {
			out = append(out, appt.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotTime != out[j].SlotTime {
			return out[i].SlotTime < out[j].SlotTime
		}
		return out[i].BookedAt.Before(out[j].BookedAt)
	})
	return out, nil
}

// Update persists changes to a single appointment.
func (r *InMemoryRepository) Update(ctx context.Context, appt *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[appt.ID]; !ok {
		return ErrNotFound
	}
	r.appts[appt.ID] = appt.Clone()
	return nil
}

// UpdateAll persists a batch under one lock. All entries must exist;
// on any miss nothing is written.
func (r *InMemoryRepository) UpdateAll(ctx context.Context, appts []*Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, appt := range appts {
		if _, ok := r.appts[appt.ID]; !ok {
			return ErrNotFound
		}
	}
	for _, appt := range appts {
		r.appts[appt.ID] = appt.Clone()
	}
	return nil
}

// Delete removes an appointment row.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[id]; !ok {
		return ErrNotFound
	}
	delete(r.appts, id)
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)

// Package scheduler implements the clinic's priority scheduling core:
// slot allocation, urgency-ordered queues, reschedule cascades and
// manual priority overrides. All mutations for one (doctor, day) are
// serialized behind a keyed lock so queue positions and slot
// assignments stay consistent.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicflow/scheduler/internal/appointments"
	"github.com/clinicflow/scheduler/internal/events"
	"github.com/clinicflow/scheduler/internal/notify"
	"github.com/clinicflow/scheduler/internal/observability/metrics"
	"github.com/clinicflow/scheduler/internal/queue"
	"github.com/clinicflow/scheduler/internal/triage"
	"github.com/clinicflow/scheduler/pkg/logging"
)

// ErrValidation wraps request validation failures so handlers can map
// them to a 400 without inspecting messages.
var ErrValidation = errors.New("invalid request")

const shiftReason = "Shifted to accommodate a schedule change"

// Service coordinates appointments, doctor queues and event emission.
type Service struct {
	repo        appointments.Repository
	queues      *queue.Store
	sink        events.Sink
	metrics     *metrics.SchedulerMetrics
	logger      *logging.Logger
	locks       *dayLocks
	lockTimeout time.Duration
	now         func() time.Time
}

// NewService creates the scheduling service. The repository and queue
// store are required; the sink may be nil, in which case events are
// dropped.
func NewService(repo appointments.Repository, queues *queue.Store, sink events.Sink, logger *logging.Logger) *Service {
	if repo == nil {
		panic("scheduler: repository is required")
	}
	if queues == nil {
		panic("scheduler: queue store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:        repo,
		queues:      queues,
		sink:        sink,
		logger:      logger,
		locks:       newDayLocks(),
		lockTimeout: 5 * time.Second,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithLockTimeout overrides how long a mutation waits for its day lock.
func (s *Service) WithLockTimeout(d time.Duration) *Service {
	if d > 0 {
		s.lockTimeout = d
	}
	return s
}

// WithMetrics attaches scheduler metrics. A nil receiver is safe on
// every metric call, so metrics stay optional.
func (s *Service) WithMetrics(m *metrics.SchedulerMetrics) *Service {
	s.metrics = m
	return s
}

// BookRequest carries everything needed to book one appointment.
type BookRequest struct {
	PatientID     string   `json:"patient_id"`
	DoctorID      string   `json:"doctor_id"`
	SlotDate      string   `json:"slot_date"`
	SlotTime      string   `json:"slot_time"`
	HealthProblem string   `json:"health_problem"`
	Symptoms      []string `json:"symptoms,omitempty"`
}

// Validate checks required fields and formats.
func (r *BookRequest) Validate() error {
	if strings.TrimSpace(r.PatientID) == "" {
		return fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	if strings.TrimSpace(r.DoctorID) == "" {
		return fmt.Errorf("%w: doctor_id is required", ErrValidation)
	}
	if !validDate(r.SlotDate) {
		return fmt.Errorf("%w: slot_date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := parseClock(r.SlotTime); err != nil {
		return err
	}
	if strings.TrimSpace(r.HealthProblem) == "" {
		return fmt.Errorf("%w: health_problem is required", ErrValidation)
	}
	return nil
}

// Book classifies the complaint, claims the requested slot and inserts
// the appointment into the doctor's queue at its urgency-ordered
// position.
func (s *Service) Book(ctx context.Context, req BookRequest) (*appointments.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Classification is pure, so it runs outside the lock.
	cls := triage.Classify(req.HealthProblem, req.Symptoms)

	release, err := s.lock(ctx, "book", req.DoctorID, req.SlotDate)
	if err != nil {
		return nil, err
	}
	defer release()

	q, err := s.queues.GetOrCreate(ctx, req.DoctorID, req.SlotDate)
	if err != nil {
		return nil, err
	}
	if !q.IsAvailable {
		return nil, fmt.Errorf("scheduler: book with doctor %s on %s: %w",
			req.DoctorID, req.SlotDate, appointments.ErrDoctorUnavailable)
	}

	all, err := s.repo.ListByDoctorDate(ctx, req.DoctorID, req.SlotDate)
	if err != nil {
		return nil, err
	}

	slots, err := buildDaySlots(q)
	if err != nil {
		return nil, err
	}
	chosen, ok := findSlot(availableFrom(slots, all), req.SlotTime)
	if !ok {
		s.metrics.ObserveBooking("rejected")
		return nil, fmt.Errorf("scheduler: book %s on %s: %w",
			req.SlotTime, req.SlotDate, appointments.ErrSlotTaken)
	}

	now := s.now()
	appt := &appointments.Appointment{
		ID:            uuid.New().String(),
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		SlotDate:      req.SlotDate,
		SlotTime:      chosen.SlotTime,
		SlotEndTime:   chosen.SlotEndTime,
		HealthProblem: req.HealthProblem,
		Symptoms:      req.Symptoms,
		Severity:      cls.Severity,
		RiskScore:     cls.RiskScore,
		Analysis:      cls.Analysis,
		Status:        appointments.StatusPending,
		BookedAt:      now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		s.metrics.ObserveBooking("failed")
		return nil, err
	}

	all = append(all, appt)
	if _, err := s.reorderLocked(ctx, q, all, "New appointment booked", ""); err != nil {
		s.rollbackBooking(ctx, appt.ID)
		return nil, err
	}
	if err := s.queues.Save(ctx, q); err != nil {
		s.rollbackBooking(ctx, appt.ID)
		return nil, err
	}

	s.metrics.ObserveClassification(string(cls.Severity))
	s.metrics.ObserveBooking("created")
	s.publish(ctx, events.TypeAppointmentBooked, events.AppointmentBookedV1{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		SlotDate:      appt.SlotDate,
		SlotTime:      appt.SlotTime,
		Severity:      string(appt.Severity),
		RiskScore:     appt.RiskScore,
		OccurredAt:    now,
	})
	s.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"doctor_id", appt.DoctorID,
		"slot", appt.SlotDate+" "+appt.SlotTime,
		"severity", appt.Severity,
		"risk_score", appt.RiskScore,
		"queue_position", appt.QueuePosition,
	)
	return appt, nil
}

// rollbackBooking deletes a freshly created appointment whose
// follow-up writes failed, so a booking error never leaves the slot
// occupied. Position updates are batched atomically, so the new row is
// the only state to undo.
func (s *Service) rollbackBooking(ctx context.Context, appointmentID string) {
	s.metrics.ObserveBooking("failed")
	if err := s.repo.Delete(ctx, appointmentID); err != nil {
		s.logger.Error("failed to roll back booking",
			"appointment_id", appointmentID, "error", err)
	}
}

// AvailableSlots returns the free slots for a doctor's day. An
// unavailable day has no slots.
func (s *Service) AvailableSlots(ctx context.Context, doctorID, date string) ([]Slot, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	q, err := s.queues.GetOrCreate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if !q.IsAvailable {
		return []Slot{}, nil
	}
	all, err := s.repo.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	slots, err := buildDaySlots(q)
	if err != nil {
		return nil, err
	}
	return availableFrom(slots, all), nil
}

// Reschedule moves an appointment to a new slot and shifts every other
// active appointment at or after the vacated time forward by one slot.
// The whole batch persists atomically. Returns the moved appointment
// and the number of appointments shifted by the cascade.
func (s *Service) Reschedule(ctx context.Context, appointmentID, newSlotTime, reason string) (*appointments.Appointment, int, error) {
	newMins, err := parseClock(newSlotTime)
	if err != nil {
		return nil, 0, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, 0, appointments.ErrReasonRequired
	}

	pre, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, 0, err
	}

	release, err := s.lock(ctx, "reschedule", pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, 0, err
	}
	defer release()
	started := time.Now()

	q, err := s.queues.GetOrCreate(ctx, pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, 0, err
	}
	all, err := s.repo.ListByDoctorDate(ctx, pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, 0, err
	}
	appt := findByID(all, appointmentID)
	if appt == nil {
		return nil, 0, appointments.ErrNotFound
	}
	if !appt.Status.Reschedulable() {
		return nil, 0, fmt.Errorf("scheduler: reschedule %s appointment: %w",
			appt.Status, appointments.ErrInvalidState)
	}

	oldMins, err := parseClock(appt.SlotTime)
	if err != nil {
		return nil, 0, err
	}
	if newMins == oldMins {
		return nil, 0, fmt.Errorf("%w: appointment is already at %s", ErrValidation, appt.SlotTime)
	}
	closeMins, err := parseClock(q.WorkingHoursEnd)
	if err != nil {
		return nil, 0, err
	}
	dur := q.SlotDurationMinutes
	if dur <= 0 {
		dur = 15
	}

	// The target must be a real free slot among everyone else.
	slots, err := buildDaySlots(q)
	if err != nil {
		return nil, 0, err
	}
	others := make([]*appointments.Appointment, 0, len(all)-1)
	for _, a := range all {
		if a.ID != appt.ID {
			others = append(others, a)
		}
	}
	if _, ok := findSlot(availableFrom(slots, others), newSlotTime); !ok {
		return nil, 0, fmt.Errorf("scheduler: reschedule to %s on %s: %w",
			newSlotTime, appt.SlotDate, appointments.ErrSlotTaken)
	}

	now := s.now()
	prevTime, prevEnd := appt.SlotTime, appt.SlotEndTime
	appt.RescheduledFrom = &appointments.RescheduleRecord{
		PreviousTime:    prevTime,
		PreviousEndTime: prevEnd,
		RescheduledAt:   now,
		Reason:          reason,
	}
	appt.SlotTime = formatClock(newMins)
	appt.SlotEndTime = formatClock(newMins + dur)
	appt.Notification = notify.RescheduleNotice(prevTime, appt.SlotTime, reason, now)
	appt.UpdatedAt = now

	// Cascade candidates: every other active appointment at or after
	// the vacated time, earliest first.
	var cands []*appointments.Appointment
	candMins := make(map[string]int)
	occupied := map[int]struct{}{newMins: {}}
	for _, a := range others {
		mins, err := parseClock(a.SlotTime)
		if err != nil {
			continue
		}
		if a.Status.Active() && mins >= oldMins {
			cands = append(cands, a)
			candMins[a.ID] = mins
		} else if a.Status.HoldsSlot() && mins >= oldMins {
			// Inactive slot holders never move but still block targets.
			occupied[mins] = struct{}{}
		}
	}
	sortByMins(cands, candMins)

	// Resolve skips from the latest candidate backwards: a shift is
	// blocked when it would end past closing, overlap a break, or land
	// on a slot that a blocked appointment still occupies. Shifts only
	// ever target slots buildDaySlots would offer.
	shiftable := make([]bool, len(cands))
	for i := len(cands) - 1; i >= 0; i-- {
		mins := candMins[cands[i].ID]
		target := mins + dur
		if target+dur > closeMins {
			occupied[mins] = struct{}{}
			continue
		}
		if overlapsBreak(q.Breaks, target, target+dur) {
			occupied[mins] = struct{}{}
			continue
		}
		if _, taken := occupied[target]; taken {
			occupied[mins] = struct{}{}
			continue
		}
		shiftable[i] = true
	}

	var shifted []*appointments.Appointment
	skipped := 0
	for i, c := range cands {
		if !shiftable[i] {
			skipped++
			continue
		}
		mins := candMins[c.ID]
		prev, prevEnd := c.SlotTime, c.SlotEndTime
		c.RescheduledFrom = &appointments.RescheduleRecord{
			PreviousTime:    prev,
			PreviousEndTime: prevEnd,
			RescheduledAt:   now,
			Reason:          shiftReason,
		}
		c.SlotTime = formatClock(mins + dur)
		c.SlotEndTime = formatClock(mins + 2*dur)
		c.Notification = notify.ShiftNotice(prev, c.SlotTime, now)
		c.UpdatedAt = now
		shifted = append(shifted, c)
	}

	batch := append([]*appointments.Appointment{appt}, shifted...)
	if err := s.repo.UpdateAll(ctx, batch); err != nil {
		return nil, 0, fmt.Errorf("scheduler: persist cascade: %w", err)
	}

	if _, err := s.reorderLocked(ctx, q, all, "Schedule adjusted after a reschedule", ""); err != nil {
		return nil, 0, err
	}
	if err := s.queues.Save(ctx, q); err != nil {
		return nil, 0, err
	}

	s.metrics.ObserveCascade(len(shifted), skipped, time.Since(started).Seconds())
	s.publish(ctx, events.TypeAppointmentRescheduled, events.AppointmentRescheduledV1{
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		SlotDate:      appt.SlotDate,
		PreviousTime:  prevTime,
		NewTime:       appt.SlotTime,
		Reason:        reason,
		ShiftedCount:  len(shifted),
		OccurredAt:    now,
	})
	s.logger.Info("appointment rescheduled",
		"appointment_id", appt.ID,
		"doctor_id", appt.DoctorID,
		"from", prevTime,
		"to", appt.SlotTime,
		"shifted", len(shifted),
		"skipped", skipped,
	)
	return appt, len(shifted), nil
}

// OverridePriority lets staff manually adjust an appointment's severity
// and/or risk score, then reorders the queue. When only a score is
// given the severity is re-derived from it so the two stay consistent;
// an explicit severity always wins.
func (s *Service) OverridePriority(ctx context.Context, appointmentID string, severity *triage.Severity, riskScore *int, reason string) (*appointments.Appointment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, appointments.ErrReasonRequired
	}
	if severity == nil && riskScore == nil {
		return nil, appointments.ErrNothingToOverride
	}
	if severity != nil && !severity.Valid() {
		return nil, fmt.Errorf("scheduler: severity %q: %w", *severity, appointments.ErrInvalidOverride)
	}
	if riskScore != nil && (*riskScore < 0 || *riskScore > 100) {
		return nil, fmt.Errorf("scheduler: risk score %d: %w", *riskScore, appointments.ErrInvalidOverride)
	}

	pre, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, "override", pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, err
	}
	defer release()

	q, err := s.queues.GetOrCreate(ctx, pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.ListByDoctorDate(ctx, pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, err
	}
	appt := findByID(all, appointmentID)
	if appt == nil {
		return nil, appointments.ErrNotFound
	}
	if !appt.Status.Active() {
		return nil, fmt.Errorf("scheduler: override %s appointment: %w",
			appt.Status, appointments.ErrInvalidState)
	}

	oldScore, oldRank := appt.RiskScore, appt.Severity.Rank()
	prevPos := appt.QueuePosition

	if riskScore != nil {
		appt.RiskScore = *riskScore
	}
	switch {
	case severity != nil:
		appt.Severity = *severity
	case riskScore != nil:
		appt.Severity = triage.SeverityFromScore(*riskScore)
	}

	action := queue.ActionEscalate
	switch {
	case appt.RiskScore > oldScore:
		action = queue.ActionEscalate
	case appt.RiskScore < oldScore:
		action = queue.ActionDowngrade
	case appt.Severity.Rank() < oldRank:
		action = queue.ActionDowngrade
	}

	now := s.now()
	appt.UpdatedAt = now
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}

	if _, err := s.reorderLocked(ctx, q, all, reason, appt.ID); err != nil {
		return nil, err
	}
	q.AppendLog(queue.PrioritizationEntry{
		Timestamp:        now,
		Action:           action,
		AppointmentID:    appt.ID,
		PreviousPosition: prevPos,
		NewPosition:      appt.QueuePosition,
		Reason:           reason,
	})
	if appt.QueuePosition != prevPos {
		appt.Notification = notify.PriorityNotice(appt.QueuePosition, now)
		appt.UpdatedAt = now
		if err := s.repo.Update(ctx, appt); err != nil {
			return nil, err
		}
	}
	if err := s.queues.Save(ctx, q); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypePriorityOverridden, events.PriorityOverriddenV1{
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		SlotDate:      appt.SlotDate,
		Action:        string(action),
		Severity:      string(appt.Severity),
		RiskScore:     appt.RiskScore,
		Reason:        reason,
		OccurredAt:    now,
	})
	s.logger.Info("priority overridden",
		"appointment_id", appt.ID,
		"action", action,
		"severity", appt.Severity,
		"risk_score", appt.RiskScore,
		"position", appt.QueuePosition,
	)
	return appt, nil
}

// UpdateStatus transitions an appointment's lifecycle state, maintains
// the queue's current-patient pointer and reorders remaining active
// appointments. Terminal states (completed, cancelled, no-show) cannot
// transition further.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID string, status appointments.Status) (*appointments.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	pre, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, "status", pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, err
	}
	defer release()

	q, err := s.queues.GetOrCreate(ctx, pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.ListByDoctorDate(ctx, pre.DoctorID, pre.SlotDate)
	if err != nil {
		return nil, err
	}
	appt := findByID(all, appointmentID)
	if appt == nil {
		return nil, appointments.ErrNotFound
	}

	prev := appt.Status
	if prev == status {
		return appt, nil
	}
	if !prev.Active() {
		return nil, fmt.Errorf("scheduler: transition from %s: %w",
			prev, appointments.ErrInvalidState)
	}

	now := s.now()
	appt.Status = status
	appt.UpdatedAt = now
	if !status.Active() {
		appt.QueuePosition = 0
	}
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}

	if status == appointments.StatusInProgress {
		q.CurrentPatient = appt.ID
	} else if q.CurrentPatient == appt.ID {
		q.CurrentPatient = ""
	}

	if _, err := s.reorderLocked(ctx, q, all, "Queue reordered after a status change", ""); err != nil {
		return nil, err
	}
	if err := s.queues.Save(ctx, q); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeAppointmentStatus, events.AppointmentStatusChangedV1{
		AppointmentID:  appt.ID,
		DoctorID:       appt.DoctorID,
		SlotDate:       appt.SlotDate,
		PreviousStatus: string(prev),
		NewStatus:      string(status),
		OccurredAt:     now,
	})
	s.logger.Info("appointment status changed",
		"appointment_id", appt.ID,
		"from", prev,
		"to", status,
	)
	return appt, nil
}

// GetQueue returns the doctor's day queue aggregate and the active
// appointments in queue order.
func (s *Service) GetQueue(ctx context.Context, doctorID, date string) (*queue.DoctorQueue, []*appointments.Appointment, error) {
	if !validDate(date) {
		return nil, nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	q, err := s.queues.GetOrCreate(ctx, doctorID, date)
	if err != nil {
		return nil, nil, err
	}
	all, err := s.repo.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, nil, err
	}
	return q, orderActive(all), nil
}

// Reorder recomputes queue positions for a doctor's day on demand.
// Every mutation already reorders, so this is a repair tool for
// operators; it is idempotent and returns how many positions changed.
func (s *Service) Reorder(ctx context.Context, doctorID, date string) (int, error) {
	if !validDate(date) {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	release, err := s.lock(ctx, "reorder", doctorID, date)
	if err != nil {
		return 0, err
	}
	defer release()

	q, err := s.queues.GetOrCreate(ctx, doctorID, date)
	if err != nil {
		return 0, err
	}
	all, err := s.repo.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return 0, err
	}
	changed, err := s.reorderLocked(ctx, q, all, "Queue reordered", "")
	if err != nil {
		return 0, err
	}
	if err := s.queues.Save(ctx, q); err != nil {
		return 0, err
	}
	return changed, nil
}

// reorderLocked recomputes queue positions for the active appointments
// in all, persists the changed ones, refreshes the queue's stats and
// appends a reorder log entry per moved appointment. The caller holds
// the day lock and saves the queue afterwards. Position changes for
// omitLogID are not logged so callers can record a more specific
// action for that appointment.
func (s *Service) reorderLocked(ctx context.Context, q *queue.DoctorQueue, all []*appointments.Appointment, reason, omitLogID string) (int, error) {
	active := orderActive(all)
	now := s.now()

	var dirty []*appointments.Appointment
	for i, appt := range active {
		pos := i + 1
		if appt.QueuePosition == pos {
			continue
		}
		if appt.ID != omitLogID {
			q.AppendLog(queue.PrioritizationEntry{
				Timestamp:        now,
				Action:           queue.ActionReorder,
				AppointmentID:    appt.ID,
				PreviousPosition: appt.QueuePosition,
				NewPosition:      pos,
				Reason:           reason,
			})
		}
		appt.QueuePosition = pos
		appt.UpdatedAt = now
		dirty = append(dirty, appt)
	}
	if len(dirty) > 0 {
		if err := s.repo.UpdateAll(ctx, dirty); err != nil {
			return 0, fmt.Errorf("scheduler: persist positions: %w", err)
		}
	}
	q.Stats = queue.ComputeStats(all, now)

	s.metrics.ObserveReorder(len(dirty))
	s.publish(ctx, events.TypeQueueReordered, events.QueueReorderedV1{
		DoctorID:   q.DoctorID,
		SlotDate:   q.Date,
		QueueSize:  len(active),
		Changed:    len(dirty),
		OccurredAt: now,
	})
	return len(dirty), nil
}

func (s *Service) lock(ctx context.Context, op, doctorID, date string) (func(), error) {
	release, err := s.locks.acquire(ctx, doctorID+"|"+date, s.lockTimeout)
	if err != nil {
		if errors.Is(err, appointments.ErrConflict) {
			s.metrics.ObserveLockConflict(op)
			s.logger.Warn("day queue lock timed out",
				"operation", op, "doctor_id", doctorID, "date", date)
		}
		return nil, err
	}
	return release, nil
}

// publish hands an event to the sink, logging failures instead of
// failing the operation: state has already persisted by the time an
// event is emitted.
func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Publish(ctx, eventType, payload); err != nil {
		s.logger.Warn("event publish failed", "type", eventType, "error", err)
	}
}

func findSlot(slots []Slot, slotTime string) (Slot, bool) {
	for _, sl := range slots {
		if sl.SlotTime == slotTime {
			return sl, true
		}
	}
	return Slot{}, false
}

func findByID(appts []*appointments.Appointment, id string) *appointments.Appointment {
	for _, a := range appts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

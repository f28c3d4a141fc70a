package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicflow/scheduler/internal/triage"
)

// pgxDB is the subset of pgxpool.Pool the repository needs, split out
// so tests can inject pgxmock.
type pgxDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	db pgxDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db pgxDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const apptColumns = `id, patient_id, doctor_id, slot_date, slot_time, slot_end_time,
	queue_position, health_problem, symptoms, severity, risk_score, ai_analysis,
	status, rescheduled_from, notification, booked_at, updated_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, appt *Appointment) error {
	analysis, rescheduled, notification, err := marshalJSONFields(appt)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO appointments (` + apptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	if _, err := r.db.Exec(ctx, query,
		appt.ID,
		appt.PatientID,
		appt.DoctorID,
		appt.SlotDate,
		appt.SlotTime,
		appt.SlotEndTime,
		appt.QueuePosition,
		appt.HealthProblem,
		appt.Symptoms,
		string(appt.Severity),
		appt.RiskScore,
		analysis,
		string(appt.Status),
		rescheduled,
		notification,
		appt.BookedAt,
		appt.UpdatedAt,
	); err != nil {
		return fmt.Errorf("appointments: insert failed: %w", err)
	}
	return nil
}

// GetByID fetches a single appointment.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query := `SELECT ` + apptColumns + ` FROM appointments WHERE id = $1`
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	return appt, nil
}

// ListByDoctorDate returns every appointment for one (doctor, day)
// pair, ordered by slot time then booking time.
func (r *PostgresRepository) ListByDoctorDate(ctx context.Context, doctorID, slotDate string) ([]*Appointment, error) {
	query := `
		SELECT ` + apptColumns + `
		FROM appointments
		WHERE doctor_id = $1 AND slot_date = $2
		ORDER BY slot_time, booked_at
	`
	rows, err := r.db.Query(ctx, query, doctorID, slotDate)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		out = append(out, appt)
	}
	return out, rows.Err()
}

// Update persists changes to a single appointment.
func (r *PostgresRepository) Update(ctx context.Context, appt *Appointment) error {
	tag, err := r.update(ctx, r.db, appt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAll persists a batch inside a single transaction so a cascade
// is never half-applied.
func (r *PostgresRepository) UpdateAll(ctx context.Context, appts []*Appointment) error {
	if len(appts) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("appointments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, appt := range appts {
		tag, err := r.update(ctx, tx, appt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("appointments: commit tx: %w", err)
	}
	return nil
}

// Delete removes a row outright. Only used to undo a booking whose
// follow-up writes failed; cancellations are status updates.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("appointments: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *PostgresRepository) update(ctx context.Context, db execer, appt *Appointment) (pgconn.CommandTag, error) {
	analysis, rescheduled, notification, err := marshalJSONFields(appt)
	if err != nil {
		return pgconn.CommandTag{}, err
	}

	query := `
		UPDATE appointments
		SET slot_time = $2, slot_end_time = $3, queue_position = $4,
			severity = $5, risk_score = $6, ai_analysis = $7, status = $8,
			rescheduled_from = $9, notification = $10, updated_at = $11
		WHERE id = $1
	`
	tag, err := db.Exec(ctx, query,
		appt.ID,
		appt.SlotTime,
		appt.SlotEndTime,
		appt.QueuePosition,
		string(appt.Severity),
		appt.RiskScore,
		analysis,
		string(appt.Status),
		rescheduled,
		notification,
		appt.UpdatedAt,
	)
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("appointments: update failed: %w", err)
	}
	return tag, nil
}

func marshalJSONFields(appt *Appointment) (analysis, rescheduled, notification []byte, err error) {
	analysis, err = json.Marshal(appt.Analysis)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("appointments: marshal analysis: %w", err)
	}
	if appt.RescheduledFrom != nil {
		rescheduled, err = json.Marshal(appt.RescheduledFrom)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("appointments: marshal reschedule record: %w", err)
		}
	}
	if appt.Notification != nil {
		notification, err = json.Marshal(appt.Notification)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("appointments: marshal notification: %w", err)
		}
	}
	return analysis, rescheduled, notification, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var (
		appt         Appointment
		severity     string
		status       string
		analysis     []byte
		rescheduled  []byte
		notification []byte
	)
	if err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.SlotDate,
		&appt.SlotTime,
		&appt.SlotEndTime,
		&appt.QueuePosition,
		&appt.HealthProblem,
		&appt.Symptoms,
		&severity,
		&appt.RiskScore,
		&analysis,
		&status,
		&rescheduled,
		&notification,
		&appt.BookedAt,
		&appt.UpdatedAt,
	); err != nil {
		return nil, err
	}

	appt.Severity = triage.Severity(severity)
	appt.Status = Status(status)
	if len(analysis) > 0 {
		if err := json.Unmarshal(analysis, &appt.Analysis); err != nil {
			return nil, fmt.Errorf("unmarshal analysis: %w", err)
		}
	}
	if len(rescheduled) > 0 {
		appt.RescheduledFrom = &RescheduleRecord{}
		if err := json.Unmarshal(rescheduled, appt.RescheduledFrom); err != nil {
			return nil, fmt.Errorf("unmarshal reschedule record: %w", err)
		}
	}
	if len(notification) > 0 {
		appt.Notification = &Notification{}
		if err := json.Unmarshal(notification, appt.Notification); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
	}
	return &appt, nil
}

var _ Repository = (*PostgresRepository)(nil)

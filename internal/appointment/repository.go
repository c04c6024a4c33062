package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

const appointmentColumns = "id, patient_id, doctor_name, appointment_date, duration_minutes, status, reason, notes, created_at, updated_at"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	now := time.Now().UTC()

	duration := DefaultDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	status := req.Status
	if status == "" {
		status = StatusScheduled
	}

	query := `
		INSERT INTO appointments
		(patient_id, doctor_name, appointment_date, duration_minutes, status, reason, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + appointmentColumns

	row := r.db.QueryRowContext(ctx, query,
		req.PatientID,
		req.DoctorName,
		req.AppointmentDate,
		duration,
		status,
		nullIfEmpty(req.Reason),
		nullIfEmpty(req.Notes),
		now,
	)

	appt, err := scanAppointment(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}

	return appt, nil
}

func (r *Repository) GetAppointment(ctx context.Context, id int64) (*AppointmentResponse, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appt, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}

	return appt, nil
}

// ListAppointments returns one page ordered by id plus the total count
// for the given filter. Zero filter values mean no filtering.
func (r *Repository) ListAppointments(ctx context.Context, limit, offset int, filter ListFilter) ([]AppointmentResponse, int, error) {
	where, args := buildFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM appointments` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+appointmentColumns+` FROM appointments%s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	appointments := []AppointmentResponse{}
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *appt)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, total, nil
}

func (r *Repository) UpdateAppointment(ctx context.Context, id int64, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	set := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.DoctorName != nil {
		set("doctor_name", *req.DoctorName)
	}
	if req.AppointmentDate != nil {
		set("appointment_date", *req.AppointmentDate)
	}
	if req.DurationMinutes != nil {
		set("duration_minutes", *req.DurationMinutes)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	if req.Reason != nil {
		set("reason", nullIfEmpty(*req.Reason))
	}
	if req.Notes != nil {
		set("notes", nullIfEmpty(*req.Notes))
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE appointments
		SET %s
		WHERE id = $%d
		RETURNING `+appointmentColumns,
		strings.Join(updates, ", "), argIndex)

	appt, err := scanAppointment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	return appt, nil
}

func (r *Repository) DeleteAppointment(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func buildFilter(filter ListFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.PatientID != 0 {
		args = append(args, filter.PatientID)
		conditions = append(conditions, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*AppointmentResponse, error) {
	var appt AppointmentResponse
	var reason, notes sql.NullString

	err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorName,
		&appt.AppointmentDate,
		&appt.DurationMinutes,
		&appt.Status,
		&reason,
		&notes,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.Reason = reason.String
	appt.Notes = notes.String

	return &appt, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

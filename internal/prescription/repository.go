package prescription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const prescriptionColumns = "id, patient_id, medication_name, dosage, frequency, duration_days, prescribing_doctor, instructions, issued_date, expiry_date, refills_remaining, created_at"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreatePrescription inserts a new prescription row. The issued and expiry
// dates are computed by the caller; the row is immutable after this insert.
func (r *Repository) CreatePrescription(ctx context.Context, req CreatePrescriptionRequest, issuedDate, expiryDate time.Time) (*PrescriptionResponse, error) {
	refills := 0
	if req.RefillsRemaining != nil {
		refills = *req.RefillsRemaining
	}

	query := `
		INSERT INTO prescriptions
		(patient_id, medication_name, dosage, frequency, duration_days, prescribing_doctor, instructions, issued_date, expiry_date, refills_remaining, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + prescriptionColumns

	row := r.db.QueryRowContext(ctx, query,
		req.PatientID,
		req.MedicationName,
		req.Dosage,
		req.Frequency,
		req.DurationDays,
		req.PrescribingDoctor,
		nullIfEmpty(req.Instructions),
		issuedDate,
		expiryDate,
		refills,
		time.Now().UTC(),
	)

	prescription, err := scanPrescription(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to insert prescription: %w", err)
	}

	return prescription, nil
}

func (r *Repository) GetPrescription(ctx context.Context, id int64) (*PrescriptionResponse, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE id = $1`

	prescription, err := scanPrescription(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query prescription: %w", err)
	}

	return prescription, nil
}

// ListPrescriptions returns one page of prescriptions ordered by id plus the
// total count matching the filter. A page beyond the end yields an empty
// slice, not an error.
func (r *Repository) ListPrescriptions(ctx context.Context, limit, offset int, filter ListFilter) ([]PrescriptionResponse, int, error) {
	where := ""
	args := []interface{}{}
	if filter.PatientID != 0 {
		where = " WHERE patient_id = $1"
		args = append(args, filter.PatientID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prescriptions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+prescriptionColumns+` FROM prescriptions%s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query prescriptions: %w", err)
	}
	defer rows.Close()

	prescriptions := []PrescriptionResponse{}
	for rows.Next() {
		prescription, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, *prescription)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating prescriptions: %w", err)
	}

	return prescriptions, total, nil
}

func (r *Repository) DeletePrescription(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrPrescriptionNotFound
	}

	return nil
}

// DeleteExpiredBefore removes prescriptions whose expiry date predates the
// cutoff. Used by the retention job, not by the API.
func (r *Repository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE expiry_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired prescriptions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrescription(row rowScanner) (*PrescriptionResponse, error) {
	var p PrescriptionResponse
	var instructions sql.NullString

	err := row.Scan(
		&p.ID,
		&p.PatientID,
		&p.MedicationName,
		&p.Dosage,
		&p.Frequency,
		&p.DurationDays,
		&p.PrescribingDoctor,
		&instructions,
		&p.IssuedDate,
		&p.ExpiryDate,
		&p.RefillsRemaining,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Instructions = instructions.String
	return &p, nil
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

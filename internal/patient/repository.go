package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

const patientColumns = "id, first_name, last_name, email, phone, date_of_birth, address, medical_history, blood_type, created_at, updated_at"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO patients
		(first_name, last_name, email, phone, date_of_birth, address, medical_history, blood_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + patientColumns

	row := r.db.QueryRowContext(ctx, query,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		req.DateOfBirth,
		nullIfEmpty(req.Address),
		nullIfEmpty(req.MedicalHistory),
		nullIfEmpty(req.BloodType),
		now,
	)

	patient, err := scanPatient(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	return patient, nil
}

func (r *Repository) GetPatient(ctx context.Context, id int64) (*PatientResponse, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}

	return patient, nil
}

// ListPatients returns one page of patients ordered by id plus the total
// count so callers can compute pagination metadata. A page beyond the end
// yields an empty slice, not an error.
func (r *Repository) ListPatients(ctx context.Context, limit, offset int) ([]PatientResponse, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY id ASC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	patients := []PatientResponse{}
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, total, nil
}

func (r *Repository) UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientResponse, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	set := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.FirstName != nil {
		set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		set("last_name", *req.LastName)
	}
	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.Phone != nil {
		set("phone", *req.Phone)
	}
	if req.DateOfBirth != nil {
		set("date_of_birth", *req.DateOfBirth)
	}
	if req.Address != nil {
		set("address", nullIfEmpty(*req.Address))
	}
	if req.MedicalHistory != nil {
		set("medical_history", nullIfEmpty(*req.MedicalHistory))
	}
	if req.BloodType != nil {
		set("blood_type", nullIfEmpty(*req.BloodType))
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE patients
		SET %s
		WHERE id = $%d
		RETURNING `+patientColumns,
		strings.Join(updates, ", "), argIndex)

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	return patient, nil
}

// DeletePatient removes the patient row. The ON DELETE CASCADE constraints
// on appointments and prescriptions make the whole removal a single atomic
// statement; no application-level fan-out is needed.
func (r *Repository) DeletePatient(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrPatientNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*PatientResponse, error) {
	var patient PatientResponse
	var address, medicalHistory, bloodType sql.NullString

	err := row.Scan(
		&patient.ID,
		&patient.FirstName,
		&patient.LastName,
		&patient.Email,
		&patient.Phone,
		&patient.DateOfBirth,
		&address,
		&medicalHistory,
		&bloodType,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	patient.Address = address.String
	patient.MedicalHistory = medicalHistory.String
	patient.BloodType = bloodType.String

	return &patient, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Referential model: patients is the root table; appointments and
// prescriptions carry ON DELETE CASCADE foreign keys so deleting a
// patient removes its dependents in the same transaction.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL,
		date_of_birth TIMESTAMPTZ NOT NULL,
		address TEXT,
		medical_history TEXT,
		blood_type TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id BIGSERIAL PRIMARY KEY,
		patient_id BIGINT NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
		doctor_name TEXT NOT NULL,
		appointment_date TIMESTAMPTZ NOT NULL,
		duration_minutes INTEGER NOT NULL DEFAULT 30,
		status TEXT NOT NULL DEFAULT 'scheduled',
		reason TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS prescriptions (
		id BIGSERIAL PRIMARY KEY,
		patient_id BIGINT NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
		medication_name TEXT NOT NULL,
		dosage TEXT NOT NULL,
		frequency TEXT NOT NULL,
		duration_days INTEGER NOT NULL,
		prescribing_doctor TEXT NOT NULL,
		instructions TEXT,
		issued_date TIMESTAMPTZ NOT NULL,
		expiry_date TIMESTAMPTZ NOT NULL,
		refills_remaining INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments(patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments(status)`,
	`CREATE INDEX IF NOT EXISTS idx_prescriptions_patient_id ON prescriptions(patient_id)`,
}

// Migrate creates the schema if it does not exist yet
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	log.Println("✓ Database schema up to date")
	return nil
}

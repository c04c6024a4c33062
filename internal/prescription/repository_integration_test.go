//go:build integration

package prescription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/CareVault-Health/records-service/internal/testutil"
)

func seedPatient(t *testing.T, db *sql.DB, n int) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO patients (first_name, last_name, email, phone, date_of_birth, created_at, updated_at)
		 VALUES ('Test', $1, $2, '+31612345678', '1980-01-15', NOW(), NOW())
		 RETURNING id`,
		fmt.Sprintf("Patient%02d", n), fmt.Sprintf("patient%02d@example.com", n),
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed patient: %v", err)
	}
	return id
}

func seedPrescriptionRequest(patientID int64) CreatePrescriptionRequest {
	return CreatePrescriptionRequest{
		PatientID:         patientID,
		MedicationName:    "Amoxicillin",
		Dosage:            "500mg",
		Frequency:         "3x daily",
		DurationDays:      7,
		PrescribingDoctor: "Dr. House",
	}
}

func TestRepositoryCreateAndGet_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	patientID := seedPatient(t, db, 1)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := issued.AddDate(0, 0, 7)

	created, err := repo.CreatePrescription(ctx, seedPrescriptionRequest(patientID), issued, expiry)
	if err != nil {
		t.Fatalf("CreatePrescription failed: %v", err)
	}
	if created.RefillsRemaining != 0 {
		t.Errorf("Expected default refills 0, got %d", created.RefillsRemaining)
	}

	got, err := repo.GetPrescription(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPrescription failed: %v", err)
	}
	if !got.IssuedDate.Equal(issued) || !got.ExpiryDate.Equal(expiry) {
		t.Errorf("Expected issued %v expiry %v, got issued %v expiry %v",
			issued, expiry, got.IssuedDate, got.ExpiryDate)
	}
}

func TestRepositoryCreate_UnknownPatient_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	issued := time.Now().UTC()
	_, err := repo.CreatePrescription(ctx, seedPrescriptionRequest(99999), issued, issued.AddDate(0, 0, 7))
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("Expected ErrPatientNotFound, got %v", err)
	}

	// The rejected insert must not have created a row
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM prescriptions").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 prescription rows, got %d", count)
	}
}

func TestRepositoryList_PatientFilter_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := seedPatient(t, db, 1)
	bob := seedPatient(t, db, 2)

	issued := time.Now().UTC()
	for i := 0; i < 2; i++ {
		if _, err := repo.CreatePrescription(ctx, seedPrescriptionRequest(alice), issued, issued.AddDate(0, 0, 7)); err != nil {
			t.Fatalf("CreatePrescription failed: %v", err)
		}
	}
	if _, err := repo.CreatePrescription(ctx, seedPrescriptionRequest(bob), issued, issued.AddDate(0, 0, 7)); err != nil {
		t.Fatalf("CreatePrescription failed: %v", err)
	}

	filtered, total, err := repo.ListPrescriptions(ctx, 20, 0, ListFilter{PatientID: alice})
	if err != nil {
		t.Fatalf("ListPrescriptions failed: %v", err)
	}
	if total != 2 || len(filtered) != 2 {
		t.Errorf("Expected 2 prescriptions for patient, got total=%d len=%d", total, len(filtered))
	}

	all, total, err := repo.ListPrescriptions(ctx, 20, 0, ListFilter{})
	if err != nil {
		t.Fatalf("ListPrescriptions failed: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Errorf("Expected 3 prescriptions without filter, got total=%d len=%d", total, len(all))
	}
}

func TestRepositoryDelete_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	patientID := seedPatient(t, db, 1)
	issued := time.Now().UTC()
	created, err := repo.CreatePrescription(ctx, seedPrescriptionRequest(patientID), issued, issued.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("CreatePrescription failed: %v", err)
	}

	if err := repo.DeletePrescription(ctx, created.ID); err != nil {
		t.Fatalf("DeletePrescription failed: %v", err)
	}

	if _, err := repo.GetPrescription(ctx, created.ID); !errors.Is(err, ErrPrescriptionNotFound) {
		t.Errorf("Expected ErrPrescriptionNotFound after delete, got %v", err)
	}

	if err := repo.DeletePrescription(ctx, created.ID); !errors.Is(err, ErrPrescriptionNotFound) {
		t.Errorf("Expected ErrPrescriptionNotFound on repeat delete, got %v", err)
	}
}

func TestRepositoryDeleteExpiredBefore_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	patientID := seedPatient(t, db, 1)

	// One long-expired prescription, one still within retention
	old := time.Now().UTC().AddDate(-2, 0, 0)
	if _, err := repo.CreatePrescription(ctx, seedPrescriptionRequest(patientID), old, old.AddDate(0, 0, 7)); err != nil {
		t.Fatalf("CreatePrescription failed: %v", err)
	}
	recent := time.Now().UTC()
	kept, err := repo.CreatePrescription(ctx, seedPrescriptionRequest(patientID), recent, recent.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("CreatePrescription failed: %v", err)
	}

	deleted, err := repo.DeleteExpiredBefore(ctx, time.Now().UTC().AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("DeleteExpiredBefore failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deletion, got %d", deleted)
	}

	if _, err := repo.GetPrescription(ctx, kept.ID); err != nil {
		t.Errorf("Expected recent prescription to survive, got %v", err)
	}
}

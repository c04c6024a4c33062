package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/CareVault-Health/records-service/internal/config"
	"github.com/CareVault-Health/records-service/internal/db"
	"github.com/CareVault-Health/records-service/internal/prescription"
)

func main() {
	log.Println("Prescription Cleanup Job - Starting")
	log.Println("Retention Policy: 1 year past expiry")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	database, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Create cleanup service
	cleanupService := prescription.NewCleanupService(prescription.NewRepository(database))

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Perform cleanup
	deletedCount, err := cleanupService.CleanupExpiredPrescriptions(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Printf("✓ Cleanup completed successfully: %d prescriptions permanently deleted", deletedCount)
	log.Println("Cleanup Job - Finished")
}

package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/visabridge/agent-scheduler/internal/config"
	"github.com/visabridge/agent-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Agent{},
		&models.User{},
		&models.Service{},
		&models.AvailabilityDay{},
		&models.AvailabilityInterval{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE agents
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.DefaultTimezone)

	// Database-level backstop for the no-double-booking invariant: even a
	// write that bypasses the transactional check cannot commit an
	// overlapping pending/confirmed booking for the same agent.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
                EXCLUDE USING gist (
                    agent_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                )
                WHERE (status IN ('pending', 'confirmed'));
        EXCEPTION
            WHEN duplicate_object THEN NULL;
        END $$;
    `)

	return db
}

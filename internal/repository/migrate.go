package repository

import (
	"log"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every aggregate. The row
// models here are the single canonical definition of the persisted shape.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&bookingModel{},
		&roomBlockModel{},
	); err != nil {
		return err
	}

	ensureNoOverbookingConstraint(db)
	return nil
}

// ensureNoOverbookingConstraint installs a PostgreSQL exclusion constraint
// so that two active room stays can never overlap on the same room, even
// if two writers race past the application-level check. SQLite deployments
// rely on the service's per-room lock alone.
func ensureNoOverbookingConstraint(db *gorm.DB) {
	if db.Dialector.Name() != "postgres" {
		return
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Printf("warning: btree_gist extension unavailable: %v", err)
		return
	}

	err := db.Exec(`
ALTER TABLE bookings ADD CONSTRAINT idx_no_overbooking
EXCLUDE USING gist (
    room_id WITH =,
    daterange(check_in::date, check_out::date, '[)') WITH &&
)
WHERE (service = 'room' AND status IN ('pending', 'confirmed') AND room_id IS NOT NULL)
`).Error
	if err != nil {
		// Re-running migrations against an existing schema hits this path.
		log.Printf("info: idx_no_overbooking not (re)created: %v", err)
	}
}

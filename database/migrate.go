// Package database manages schema migration.
package database

import (
	"creatordna_backend/internal/logger"
	"creatordna_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate creates and updates the schema. Besides AutoMigrate it adds
// the partial unique index gorm tags cannot express: at most one
// accepted match per request, enforced by the database itself.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.CreatorProfile{},
		&models.Project{},
		&models.CollabRequest{},
		&models.CollabMatch{},
		&models.Notification{},
		&models.CollabAuditEntry{},
		&models.Reward{},
	)
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_one_accepted_match_per_request
		ON collab_matches (request_id)
		WHERE status = 'accepted'
	`).Error
	if err != nil {
		return err
	}

	logger.Info("database migration completed")
	return nil
}

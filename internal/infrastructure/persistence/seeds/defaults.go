// Package seeds inserts the rows every deployment expects to exist.
package seeds

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
)

// DefaultQueueName is where new tickets land before triage.
const DefaultQueueName = "Intake"

// SeedDefaults writes the unassigned sentinel user and the intake queue.
// Existing rows are left untouched.
func SeedDefaults(db *gorm.DB) error {
	friendly := "Unassigned"
	sentinel := models.UserModel{
		ID:           user.UnassignedID.String(),
		FriendlyName: &friendly,
		Role:         user.RoleAgent.String(),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sentinel).Error; err != nil {
		return fmt.Errorf("failed to seed unassigned user: %w", err)
	}

	description := "New tickets awaiting triage"
	intake := models.QueueModel{Name: DefaultQueueName, Description: &description}
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&intake).Error; err != nil {
		return fmt.Errorf("failed to seed intake queue: %w", err)
	}
	return nil
}

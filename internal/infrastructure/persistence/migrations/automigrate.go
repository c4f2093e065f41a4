// Package migrations creates the tables through gorm for local databases.
// Production schemas come from the goose SQL files in infrastructure/migration.
package migrations

import (
	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
)

// AllModels lists every remote table in dependency order.
func AllModels() []any {
	return []any{
		&models.UserModel{},
		&models.QueueModel{},
		&models.UserQueueModel{},
		&models.TicketModel{},
		&models.TagModel{},
		&models.TicketTagModel{},
		&models.MessageModel{},
		&models.TicketFileModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

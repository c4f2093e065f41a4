package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/migrations"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
)

func TestSeedDefaults_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	require.NoError(t, SeedDefaults(db))
	require.NoError(t, SeedDefaults(db))

	var users []models.UserModel
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, user.UnassignedID.String(), users[0].ID)

	var queues int64
	require.NoError(t, db.Model(&models.QueueModel{}).Where("name = ?", DefaultQueueName).Count(&queues).Error)
	assert.Equal(t, int64(1), queues)
}

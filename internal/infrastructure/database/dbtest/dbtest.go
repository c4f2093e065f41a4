// Package dbtest opens throwaway sqlite databases carrying the full schema.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/infrastructure/database"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/migrations"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/seeds"
	"github.com/autocrm/autocrm/internal/shared/config"
)

// New returns a migrated in-memory database private to t. seed adds the
// sentinel user and the intake queue.
func New(t *testing.T, seed bool) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)

	require.NoError(t, migrations.AutoMigrate(db))
	if seed {
		require.NoError(t, seeds.SeedDefaults(db))
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for postgres and gorm AutoMigrate for other drivers.
func NewManager(driver string) *Manager {
	var strategy Strategy
	switch driver {
	case "postgres", "":
		strategy = NewGooseStrategy("postgres")
	default:
		strategy = NewGormAutoMigrateStrategy()
	}
	return NewManagerWithStrategy(strategy)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration.manager"),
	}
}

func (m *Manager) Up(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Up(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Down(ctx context.Context, db *gorm.DB, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	return m.strategy.Down(ctx, db, steps)
}

func (m *Manager) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	return m.strategy.Version(ctx, db)
}

func (m *Manager) Status(ctx context.Context, db *gorm.DB) error {
	return m.strategy.Status(ctx, db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

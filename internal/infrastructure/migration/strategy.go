package migration

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/infrastructure/persistence/migrations"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/seeds"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

//go:embed scripts/postgres/*.sql
var postgresScripts embed.FS

const postgresScriptsDir = "scripts/postgres"

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Up applies every pending migration
	Up(ctx context.Context, db *gorm.DB) error
	// Down rolls back the given number of migrations
	Down(ctx context.Context, db *gorm.DB, steps int) error
	// Version reports the applied schema version
	Version(ctx context.Context, db *gorm.DB) (int64, error)
	// Status logs the applied state of each migration
	Status(ctx context.Context, db *gorm.DB) error
	// GetName returns the strategy name
	GetName() string
}

// GooseStrategy runs the embedded, versioned SQL scripts.
type GooseStrategy struct {
	dialect string
	logger  logger.Interface
}

func NewGooseStrategy(dialect string) Strategy {
	return &GooseStrategy{
		dialect: dialect,
		logger:  logger.NewLogger().With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) prepare() error {
	goose.SetBaseFS(postgresScripts)
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) Up(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}
	s.logger.Infow("current migration status", "version", currentVersion)

	if err := goose.UpContext(ctx, sqlDB, postgresScriptsDir); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) Down(ctx context.Context, db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.DownContext(ctx, sqlDB, postgresScriptsDir); err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

func (s *GooseStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	if err := goose.StatusContext(ctx, sqlDB, postgresScriptsDir); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
// Used for sqlite and mysql, which the SQL scripts do not target.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Up(ctx context.Context, db *gorm.DB) error {
	s.logger.Infow("starting gorm auto migration", "models_count", len(migrations.AllModels()))

	db = db.WithContext(ctx)
	if err := migrations.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	if err := seeds.SeedDefaults(db); err != nil {
		return err
	}

	s.logger.Infow("gorm auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) Down(ctx context.Context, db *gorm.DB, steps int) error {
	return fmt.Errorf("%s does not support down migrations", s.GetName())
}

// Version is 1 once the tickets table exists.
func (s *GormAutoMigrateStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	if db.WithContext(ctx).Migrator().HasTable("tickets") {
		return 1, nil
	}
	return 0, nil
}

func (s *GormAutoMigrateStrategy) Status(ctx context.Context, db *gorm.DB) error {
	migrator := db.WithContext(ctx).Migrator()
	for _, model := range migrations.AllModels() {
		s.logger.Infow("table status",
			"model", fmt.Sprintf("%T", model),
			"present", migrator.HasTable(model))
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

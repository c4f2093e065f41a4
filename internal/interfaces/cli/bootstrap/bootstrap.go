// Package bootstrap loads the configuration and logger shared by every command.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/autocrm/autocrm/internal/infrastructure/config"
	"github.com/autocrm/autocrm/internal/infrastructure/database"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

// Environment resolves the environment name; ENV overrides the flag.
func Environment(flag string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flag
}

// LoadConfig reads configuration, preferring configPath when it is set.
func LoadConfig(env, configPath string) (*config.Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	}
	cfg, err := config.LoadWith(v, env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(cfg.Server.Mode)
	return cfg, nil
}

// GinMode maps an environment name onto a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

// Init loads configuration, installs the logger and opens the database.
// The caller closes the database with database.Close.
func Init(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := LoadConfig(env, configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

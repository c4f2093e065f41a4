package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	sharedConfig "github.com/autocrm/autocrm/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server" yaml:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	Backend    sharedConfig.BackendConfig    `mapstructure:"backend" yaml:"backend"`
	Cache      sharedConfig.CacheConfig      `mapstructure:"cache" yaml:"cache"`
	Permission sharedConfig.PermissionConfig `mapstructure:"permission" yaml:"permission"`
	UI         sharedConfig.UIConfig         `mapstructure:"ui" yaml:"ui"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"ratelimit" yaml:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is tolerated; defaults and AUTOCRM_* variables still apply.
func Load(env string) (*Config, error) {
	return LoadWith(viper.New(), env)
}

// LoadWith loads configuration through the given viper instance.
func LoadWith(v *viper.Viper, env string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("AUTOCRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Cache.UserMaxEntries < 0 {
		return fmt.Errorf("cache.user_max_entries must not be negative")
	}
	if c.RateLimit.AuthPerMinute < 0 || c.RateLimit.AuthPerHour < 0 {
		return fmt.Errorf("ratelimit limits must not be negative")
	}
	if _, err := language.Parse(c.UI.Locale); err != nil {
		return fmt.Errorf("invalid ui.locale %q: %w", c.UI.Locale, err)
	}
	if c.Backend.RequestTimeout <= 0 {
		return fmt.Errorf("backend.request_timeout must be positive")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.email_redirect_url", "http://localhost:5173/welcome")

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", "postgres")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Backend defaults
	v.SetDefault("backend.url", "http://localhost:54321")
	v.SetDefault("backend.profile_bucket", "auto_crm_profile_pictures")
	v.SetDefault("backend.file_bucket", "auto_crm_ticket_files")
	v.SetDefault("backend.request_timeout", "15s")

	// Cache defaults
	v.SetDefault("cache.user_ttl", "10m")
	v.SetDefault("cache.user_max_entries", 1000)

	v.SetDefault("permission.persist", false)
	v.SetDefault("ui.locale", "en")

	v.SetDefault("ratelimit.redis_addr", "")
	v.SetDefault("ratelimit.redis_db", 0)
	v.SetDefault("ratelimit.auth_per_minute", 10)
	v.SetDefault("ratelimit.auth_per_hour", 100)
}

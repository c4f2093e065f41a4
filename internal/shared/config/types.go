package config

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	Mode           string   `mapstructure:"mode" yaml:"mode"`
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	// EmailRedirectURL is where verification and password reset links land.
	EmailRedirectURL string `mapstructure:"email_redirect_url" yaml:"email_redirect_url"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig describes the remote relational store. Driver is one of
// postgres (the managed backend), mysql or sqlite (local development).
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" yaml:"driver"`
	Host            string `mapstructure:"host" yaml:"host"`
	Port            int    `mapstructure:"port" yaml:"port"`
	Username        string `mapstructure:"username" yaml:"username"`
	Password        string `mapstructure:"password" yaml:"password"`
	Database        string `mapstructure:"database" yaml:"database"`
	SSLMode         string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
	Path            string `mapstructure:"path" yaml:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	case "sqlite":
		if d.Path == "" {
			return "file::memory:?cache=shared"
		}
		return d.Path
	default:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "require"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	// SourceForAllLevels adds caller location to every record, not only warn and error.
	SourceForAllLevels bool `mapstructure:"source_for_all_levels" yaml:"source_for_all_levels"`
}

// BackendConfig points at the managed backend-as-a-service project.
type BackendConfig struct {
	URL            string        `mapstructure:"url" yaml:"url"`
	AnonKey        string        `mapstructure:"anon_key" yaml:"anon_key"`
	ServiceKey     string        `mapstructure:"service_key" yaml:"service_key"`
	JWTSecret      string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	ProfileBucket  string        `mapstructure:"profile_bucket" yaml:"profile_bucket"`
	FileBucket     string        `mapstructure:"file_bucket" yaml:"file_bucket"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// CacheConfig bounds the in-process user lookup cache.
type CacheConfig struct {
	UserTTL        time.Duration `mapstructure:"user_ttl" yaml:"user_ttl"`
	UserMaxEntries int           `mapstructure:"user_max_entries" yaml:"user_max_entries"`
}

type PermissionConfig struct {
	// Persist stores the role policy in the database through the casbin gorm adapter.
	Persist bool `mapstructure:"persist" yaml:"persist"`
}

type UIConfig struct {
	// Locale selects the collation used when sorting tickets by text.
	Locale string `mapstructure:"locale" yaml:"locale"`
}

// LanguageTag parses Locale, falling back to English.
func (u *UIConfig) LanguageTag() language.Tag {
	tag, err := language.Parse(u.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// RateLimitConfig throttles the anonymous auth endpoints. An empty RedisAddr
// keeps counters in process memory.
type RateLimitConfig struct {
	RedisAddr     string `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" yaml:"redis_db"`
	AuthPerMinute int    `mapstructure:"auth_per_minute" yaml:"auth_per_minute"`
	AuthPerHour   int    `mapstructure:"auth_per_hour" yaml:"auth_per_hour"`
}

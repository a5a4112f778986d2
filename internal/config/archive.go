package config

import (
	"fmt"
	"time"
)

const (
	BackendPostgREST = "postgrest"
	BackendSQL       = "sql"
	BackendS3        = "s3"

	DefaultTable = "haiku_table"

	ThemeAurora = "aurora"
	ThemeScroll = "scroll"
)

// ArchiveConfig selects and configures the poem archive backend.
type ArchiveConfig struct {
	Backend   string          `mapstructure:"backend"`
	Table     string          `mapstructure:"table"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	PostgREST PostgRESTConfig `mapstructure:"postgrest"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
}

// PostgRESTConfig points at a hosted table exposed over PostgREST
// (for example a Supabase project).
type PostgRESTConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // "postgres" or "sqlite"
	DSN             string        `mapstructure:"dsn"`
	Path            string        `mapstructure:"path"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	LogLevel        string        `mapstructure:"log_level"`
}

// ConnString returns the connection string handed to the gorm driver.
func (c *DatabaseConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	return c.Path
}

type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Validate checks the settings required by the selected backend.
func (c *ArchiveConfig) Validate() error {
	if c.Table == "" {
		return fmt.Errorf("archive: table is required")
	}
	switch c.Backend {
	case BackendPostgREST:
		if c.PostgREST.URL == "" {
			return fmt.Errorf("archive %q: url is required (set SUPABASE_URL)", c.Backend)
		}
		if c.PostgREST.Key == "" {
			return fmt.Errorf("archive %q: key is required (set SUPABASE_KEY)", c.Backend)
		}
	case BackendSQL:
		switch c.Database.Driver {
		case "postgres":
			if c.Database.DSN == "" {
				return fmt.Errorf("archive %q: dsn is required for postgres (set DATABASE_DSN)", c.Backend)
			}
		case "sqlite":
			if c.Database.ConnString() == "" {
				return fmt.Errorf("archive %q: path is required for sqlite (set DATABASE_PATH)", c.Backend)
			}
		default:
			return fmt.Errorf("archive %q: unknown database driver %q", c.Backend, c.Database.Driver)
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("archive %q: bucket is required (set S3_BUCKET)", c.Backend)
		}
		if c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			return fmt.Errorf("archive %q: access_key and secret_key are required", c.Backend)
		}
	default:
		return fmt.Errorf("archive: unknown backend %q", c.Backend)
	}
	return nil
}

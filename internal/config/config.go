package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Generation GenerationConfig `mapstructure:"generation"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
}

type ServerConfig struct {
	Port  int        `mapstructure:"port"`
	Mode  string     `mapstructure:"mode"`
	Theme string     `mapstructure:"theme"`
	CORS  CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// Load reads configuration from an optional YAML file, .env and the process
// environment, then validates it. A missing secret is reported here so the
// process fails before serving any request.
func Load(configPath string) (*Config, error) {
	cfg, err := load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Generation.ResolveEnvVars()

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8501)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.theme", ThemeAurora)
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})

	v.SetDefault("generation.provider", ProviderGroq)
	v.SetDefault("generation.model", DefaultGroqModel)
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("generation.max_tokens", 100)
	v.SetDefault("generation.timeout", "60s")

	v.SetDefault("archive.backend", BackendPostgREST)
	v.SetDefault("archive.table", DefaultTable)
	v.SetDefault("archive.timeout", "30s")
	v.SetDefault("archive.database.driver", "sqlite")
	v.SetDefault("archive.database.path", "./data/haiku.db")
	v.SetDefault("archive.database.max_idle_conns", 2)
	v.SetDefault("archive.database.max_open_conns", 10)
	v.SetDefault("archive.database.conn_max_lifetime", "30m")
	v.SetDefault("archive.database.auto_migrate", true)
	v.SetDefault("archive.database.log_level", "warn")
	v.SetDefault("archive.s3.use_ssl", true)
	v.SetDefault("archive.s3.prefix", "haiku")
}

// bindEnv binds the secrets and the settings most often changed per deployment.
func bindEnv(v *viper.Viper) {
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.theme", "THEME")

	v.BindEnv("generation.provider", "GENERATION_PROVIDER")
	v.BindEnv("generation.model", "GENERATION_MODEL")
	v.BindEnv("generation.base_url", "GENERATION_BASE_URL")
	v.BindEnv("generation.api_key", "GENERATION_API_KEY")

	v.BindEnv("archive.backend", "ARCHIVE_BACKEND")
	v.BindEnv("archive.table", "ARCHIVE_TABLE")
	v.BindEnv("archive.postgrest.url", "SUPABASE_URL")
	v.BindEnv("archive.postgrest.key", "SUPABASE_KEY")
	v.BindEnv("archive.database.driver", "DATABASE_DRIVER")
	v.BindEnv("archive.database.dsn", "DATABASE_DSN")
	v.BindEnv("archive.database.path", "DATABASE_PATH")
	v.BindEnv("archive.s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("archive.s3.region", "S3_REGION")
	v.BindEnv("archive.s3.bucket", "S3_BUCKET")
	v.BindEnv("archive.s3.access_key", "S3_ACCESS_KEY")
	v.BindEnv("archive.s3.secret_key", "S3_SECRET_KEY")
	v.BindEnv("archive.s3.use_ssl", "S3_USE_SSL")
}

// Validate checks the settings required by the selected provider and backend.
func (c *Config) Validate() error {
	switch c.Server.Theme {
	case ThemeAurora, ThemeScroll:
	default:
		return fmt.Errorf("server.theme: unknown theme %q", c.Server.Theme)
	}
	if err := c.Generation.Validate(); err != nil {
		return err
	}
	return c.Archive.Validate()
}

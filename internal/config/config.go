package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 5000
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "doodle_journal"

	// StorageMySQL selects the durable GORM-backed store.
	StorageMySQL = "mysql"
	// StorageMemory selects the ephemeral in-process store.
	StorageMemory = "memory"

	defaultReminderPoll = 10 * time.Second
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Storage        StorageConfig  `yaml:"storage"`
	RedisURL       string         `yaml:"redis_url"`
	Reminder       ReminderConfig `yaml:"reminder"`
	AI             AIConfig       `yaml:"ai"`
	Backup         BackupConfig   `yaml:"backup"`
	Push           PushConfig     `yaml:"push"`
}

// StorageConfig selects and parameterizes the store backend.
type StorageConfig struct {
	Driver   string `yaml:"driver"` // "mysql" | "memory"
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// ReminderConfig tunes the trigger loop.
type ReminderConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// PollInterval returns the configured poll cadence, defaulting to 10s.
func (c ReminderConfig) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return defaultReminderPoll
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// AIConfig configures the entry-analysis provider.
type AIConfig struct {
	Provider AIProvider `yaml:"provider"`
}

// AIProvider describes one upstream model endpoint.
type AIProvider struct {
	Type         string `yaml:"type"` // "openai" | "openai-compatible" | "anthropic"
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"model"`
}

// Enabled reports whether an AI provider is configured at all.
func (p AIProvider) Enabled() bool { return strings.TrimSpace(p.APIKey) != "" }

// BackupConfig controls the nightly export upload job.
type BackupConfig struct {
	Enable        bool      `yaml:"enable"`
	IntervalHours int       `yaml:"interval_hours"`
	S3            S3Options `yaml:"s3"`
}

// Interval returns the upload cadence, defaulting to 24h.
func (c BackupConfig) Interval() time.Duration {
	if c.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.IntervalHours) * time.Hour
}

// S3Options is the object-storage target for export archives.
type S3Options struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	KeyPrefix       string `yaml:"key_prefix"`
}

// PushConfig points at a Bark-compatible push endpoint for reminder
// notifications. Empty key disables pushes (the sink becomes a no-op).
type PushConfig struct {
	Key       string `yaml:"key"`
	ServerURL string `yaml:"server_url"`
}

// Load reads and normalizes the YAML config. A missing file yields pure
// defaults so the memory-backed dev mode starts with no setup at all.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := &AppConfig{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = defaultEnv
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageMemory
	}
}

func (c *AppConfig) validate() error {
	switch c.Storage.Driver {
	case StorageMySQL, StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q (want %q or %q)",
			c.Storage.Driver, StorageMySQL, StorageMemory)
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("unknown env %q (want development or production)", c.Env)
	}
	return nil
}

// IsDev reports whether the process runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"kanbo/internal/kanban/persist"
	"kanbo/internal/storage"
)

const envPrefix = "KANBO_"

// Config holds the unified application configuration
type Config struct {
	Backend    string
	DataDir    string
	StorageKey string
	LogLevel   string
	S3         storage.S3Options
	Redis      storage.RedisOptions
}

// Settings represents the config file structure
type Settings struct {
	Backend    string               `json:"backend,omitempty"`
	DataDir    string               `json:"data_dir,omitempty"`
	StorageKey string               `json:"storage_key,omitempty"`
	LogLevel   string               `json:"log_level,omitempty"`
	S3         storage.S3Options    `json:"s3,omitempty"`
	Redis      storage.RedisOptions `json:"redis,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	Backend    string
	DataDir    string
	StorageKey string
	LogLevel   string
	// EnvFile is the dotenv file to read; empty means ./.env
	EnvFile string
	// Ephemeral forces the memory backend
	Ephemeral bool
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Backend:    storage.BackendFile,
		StorageKey: persist.DefaultKey,
		LogLevel:   "info",
	}

	// Try loading config file first for base values
	configPath, err := ConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			applySettings(cfg, *fileConfig)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading %s: %w", configPath, err)
		}
	}

	// Priority 2: Environment variables (and .env) override config file
	if err := loadEnvFile(flags.EnvFile); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// Priority 1: CLI flags override everything
	setIf(&cfg.Backend, flags.Backend)
	setIf(&cfg.DataDir, flags.DataDir)
	setIf(&cfg.StorageKey, flags.StorageKey)
	setIf(&cfg.LogLevel, flags.LogLevel)
	if flags.Ephemeral {
		cfg.Backend = storage.BackendMemory
	}

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Backend = strings.ToLower(cfg.Backend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs
func (c *Config) Validate() error {
	switch c.Backend {
	case storage.BackendFile, storage.BackendBolt, storage.BackendMemory:
	case storage.BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("backend s3 requires s3.bucket (or %sS3_BUCKET)", envPrefix)
		}
	case storage.BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("backend redis requires redis.url (or %sREDIS_URL)", envPrefix)
		}
	default:
		return fmt.Errorf("unknown backend %q (want file, bolt, s3, redis or memory)", c.Backend)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	return nil
}

// StorageOptions returns the options storage.Open needs
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend: c.Backend,
		Dir:     c.DataDir,
		S3:      c.S3,
		Redis:   c.Redis,
	}
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "kanbo"), nil
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "kanbo", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func applySettings(cfg *Config, s Settings) {
	setIf(&cfg.Backend, s.Backend)
	setIf(&cfg.DataDir, s.DataDir)
	setIf(&cfg.StorageKey, s.StorageKey)
	setIf(&cfg.LogLevel, s.LogLevel)

	setIf(&cfg.S3.Endpoint, s.S3.Endpoint)
	setIf(&cfg.S3.Bucket, s.S3.Bucket)
	setIf(&cfg.S3.Region, s.S3.Region)
	setIf(&cfg.S3.AccessKey, s.S3.AccessKey)
	setIf(&cfg.S3.SecretKey, s.S3.SecretKey)
	setIf(&cfg.S3.Prefix, s.S3.Prefix)
	if s.S3.UsePathStyle {
		cfg.S3.UsePathStyle = true
	}

	setIf(&cfg.Redis.URL, s.Redis.URL)
	setIf(&cfg.Redis.Prefix, s.Redis.Prefix)
}

// loadEnvFile reads a dotenv file into the process environment. Variables
// already set are kept. A missing default .env is not an error.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if !explicit && !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setIf(&cfg.Backend, env("BACKEND"))
	setIf(&cfg.DataDir, env("DATA_DIR"))
	setIf(&cfg.StorageKey, env("STORAGE_KEY"))
	setIf(&cfg.LogLevel, env("LOG_LEVEL"))

	setIf(&cfg.S3.Endpoint, env("S3_ENDPOINT"))
	setIf(&cfg.S3.Bucket, env("S3_BUCKET"))
	setIf(&cfg.S3.Region, env("S3_REGION"))
	setIf(&cfg.S3.AccessKey, env("S3_ACCESS_KEY"))
	setIf(&cfg.S3.SecretKey, env("S3_SECRET_KEY"))
	setIf(&cfg.S3.Prefix, env("S3_PREFIX"))
	if v := env("S3_USE_PATH_STYLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sS3_USE_PATH_STYLE %q: %w", envPrefix, v, err)
		}
		cfg.S3.UsePathStyle = b
	}

	setIf(&cfg.Redis.URL, env("REDIS_URL"))
	setIf(&cfg.Redis.Prefix, env("REDIS_PREFIX"))
	return nil
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	if fileExists(configPath) {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	settings := Settings{
		Backend:    storage.BackendFile,
		DataDir:    defaultDir,
		StorageKey: persist.DefaultKey,
		LogLevel:   "info",
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

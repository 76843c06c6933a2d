package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Duration decodes YAML duration strings such as "24h" or "15m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"` // Listen address, e.g. ":5000".
}

// DatabaseConfig holds the persistence settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // SQLite path or PostgreSQL DSN.
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret string   `yaml:"secret"` // HMAC signing secret.
	Expiry Duration `yaml:"expiry"` // Token lifetime.
}

// HashConfig holds password hashing settings.
type HashConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"` // bcrypt work factor.
}

// LogConfig holds logging output settings.
type LogConfig struct {
	Level      string `yaml:"level"`       // logrus level name.
	File       string `yaml:"file"`        // Optional rotated log file path.
	MaxSizeMB  int    `yaml:"max_size_mb"` // Rotation size threshold.
	MaxBackups int    `yaml:"max_backups"` // Rotated files kept.
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Hash     HashConfig     `yaml:"hash"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":5000"},
		Database: DatabaseConfig{DSN: "leaderboard.db"},
		JWT:      JWTConfig{Expiry: Duration(24 * time.Hour)},
		Hash:     HashConfig{BcryptCost: 12},
		Log:      LogConfig{Level: "info", MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 30},
	}
}

// Load reads the YAML config file at path, applies environment overrides and
// fills in defaults. A missing file is not an error; env vars and defaults
// still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		switch {
		case errRead == nil:
			if errDecode := yaml.Unmarshal(data, &cfg); errDecode != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, errDecode)
			}
		case os.IsNotExist(errRead):
			log.WithField("path", path).Debug("config file not found, using defaults")
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
		}
	}

	if errEnv := applyEnv(&cfg); errEnv != nil {
		return Config{}, errEnv
	}

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		secret, errSecret := randomSecret()
		if errSecret != nil {
			return Config{}, errSecret
		}
		cfg.JWT.Secret = secret
		log.Warn("no JWT secret configured, generated a random one; tokens will not survive a restart")
	}

	return cfg, nil
}

// applyEnv overrides config fields from LEADERBOARD_* environment variables.
func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_ADDR")); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_DSN")); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_JWT_SECRET")); v != "" {
		cfg.JWT.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_JWT_EXPIRY")); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: LEADERBOARD_JWT_EXPIRY: %w", err)
		}
		cfg.JWT.Expiry = Duration(parsed)
	}
	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_BCRYPT_COST")); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: LEADERBOARD_BCRYPT_COST: %w", err)
		}
		cfg.Hash.BcryptCost = cost
	}
	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// randomSecret generates a hex-encoded 32-byte secret.
func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("config: generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Wire     WireConfig     `toml:"wire"`
	Auth     AuthConfig     `toml:"auth"`
	Camera   CameraConfig   `toml:"camera"`
}

// ServerConfig contains TCP listener settings.
type ServerConfig struct {
	Addr       string `toml:"addr"`        // listen address, e.g. "127.0.0.1:65432"
	MaxWorkers int    `toml:"max_workers"` // bound on concurrently served connections
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // SQLite database file path
}

// WireConfig contains the pre-shared AES-CTR parameters. Both values are
// fixed for the deployment and must match every caller byte for byte.
type WireConfig struct {
	Key   string `toml:"key"`   // 16, 24, or 32 bytes
	Nonce string `toml:"nonce"` // 1..16 bytes
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"` // session token signing secret
}

// CameraConfig locates the JPEG files written by the occupancy detector.
type CameraConfig struct {
	Dir string `toml:"dir"` // directory holding camera_feed_<spot_id>.jpg
}

// Legacy wire parameters shared with the original callers.
const (
	defaultAESKey   = "ThisIsASecretKey"
	defaultAESNonce = "ThisIsASecretN"
)

// Load reads an optional TOML file, applies environment overrides, and
// validates the result. An empty path skips the file and uses env/defaults
// only. JWT_SECRET must be set; use LoadWithDefaults in development.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but falls back to a development JWT secret.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load failed (%s): %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	}

	cfg.Server.Addr = getEnv("LISTEN_ADDR", defaultStr(cfg.Server.Addr, "127.0.0.1:65432"))
	cfg.Database.Path = getEnv("DB_PATH", defaultStr(cfg.Database.Path, "parking.db"))
	cfg.Wire.Key = getEnv("AES_KEY", defaultStr(cfg.Wire.Key, defaultAESKey))
	cfg.Wire.Nonce = getEnv("AES_NONCE", defaultStr(cfg.Wire.Nonce, defaultAESNonce))
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Camera.Dir = getEnv("CAMERA_DIR", defaultStr(cfg.Camera.Dir, "static"))

	workers, err := getEnvInt("MAX_WORKERS", cfg.Server.MaxWorkers)
	if err != nil {
		return nil, err
	}
	cfg.Server.MaxWorkers = workers
	if cfg.Server.MaxWorkers <= 0 {
		cfg.Server.MaxWorkers = 10
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch len(cfg.Wire.Key) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("AES key must be 16, 24, or 32 bytes, got %d", len(cfg.Wire.Key))
	}
	if n := len(cfg.Wire.Nonce); n == 0 || n > 16 {
		return fmt.Errorf("AES nonce must be 1..16 bytes, got %d", n)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, Workers: %d, DB: %s, Camera: %s, Wire/Auth: *** (masked) ***}",
		c.Server.Addr, c.Server.MaxWorkers, c.Database.Path, c.Camera.Dir)
}

package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

type Config struct {
	ServerPort  string     `yaml:"server_port"`
	AppEnv      string     `yaml:"app_env"`
	AuthDevMode bool       `yaml:"auth_dev_mode"`
	LogLevel    string     `yaml:"log_level"`
	DB          DBConfig   `yaml:"db"`
	Auth        AuthConfig `yaml:"auth"`
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if c.AuthDevMode && c.AppEnv != "local" {
		return fmt.Errorf("AUTH_DEV_MODE must not be enabled in %s environment", c.AppEnv)
	}
	if !c.AuthDevMode {
		if c.Auth.Issuer == "" {
			return fmt.Errorf("AUTH_ISSUER is required when AUTH_DEV_MODE is disabled")
		}
		if c.Auth.JWKSURL == "" {
			return fmt.Errorf("AUTH_JWKS_URL is required when AUTH_DEV_MODE is disabled")
		}
		if c.Auth.Audience == "" {
			return fmt.Errorf("AUTH_AUDIENCE is required when AUTH_DEV_MODE is disabled")
		}
	}
	return nil
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

// AuthConfig points the JWT middleware at the external identity provider.
type AuthConfig struct {
	Issuer   string `yaml:"issuer"`
	JWKSURL  string `yaml:"jwks_url"`
	Audience string `yaml:"audience"`
}

// Load builds the configuration in three layers: defaults, then the
// optional YAML file named by CONFIG_FILE, then environment variables.
func Load() (Config, error) {
	cfg := Config{
		ServerPort: "8080",
		AppEnv:     "local",
		LogLevel:   "info",
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "tasklist",
			Password: "tasklist",
			Name:     "tasklist",
			SSLMode:  "disable",
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.ServerPort, "SERVER_PORT")
	setFromEnv(&cfg.AppEnv, "APP_ENV")
	setFromEnv(&cfg.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("AUTH_DEV_MODE"); v != "" {
		cfg.AuthDevMode = strings.EqualFold(v, "true")
	}

	setFromEnv(&cfg.DB.Host, "DB_HOST")
	setFromEnv(&cfg.DB.Port, "DB_PORT")
	setFromEnv(&cfg.DB.User, "DB_USER")
	setFromEnv(&cfg.DB.Password, "DB_PASSWORD")
	setFromEnv(&cfg.DB.Name, "DB_NAME")
	setFromEnv(&cfg.DB.SSLMode, "DB_SSLMODE")

	setFromEnv(&cfg.Auth.Issuer, "AUTH_ISSUER")
	setFromEnv(&cfg.Auth.JWKSURL, "AUTH_JWKS_URL")
	setFromEnv(&cfg.Auth.Audience, "AUTH_AUDIENCE")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

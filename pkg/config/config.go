package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the configuration file read when no other path is given.
const DefaultPath = "config.yaml"

// Config holds all configuration for ekaya-scaffold.
// Configuration can come from a YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"3480"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// TLS configuration (optional - if both provided, server uses HTTPS)
	TLSCertPath string `yaml:"tls_cert_path" env:"TLS_CERT_PATH" env-default:""`
	TLSKeyPath  string `yaml:"tls_key_path" env:"TLS_KEY_PATH" env-default:""`

	// Project holds the generation settings shared by every run.
	Project ProjectConfig `yaml:"project"`

	// Session configures the cookie store holding the database descriptor.
	Session SessionConfig `yaml:"session"`
}

// ProjectConfig holds settings of the generated project layout and naming.
type ProjectConfig struct {
	// SplitModule places dao, service, web and core in "{artifactId}-{module}"
	// roots instead of the project path itself.
	SplitModule bool `yaml:"split_module" env:"SPLIT_MODULE" env-default:"false"`

	// TablePrefixes are stripped from table names before deriving model names.
	TablePrefixes []string `yaml:"table_prefixes" env:"TABLE_PREFIXES" env-separator:"," env-default:"t_"`

	// Singularize turns "t_users" into "User" instead of "Users".
	Singularize bool `yaml:"singularize" env:"SINGULARIZE" env-default:"false"`

	// PreserveExisting makes a run fail instead of replacing a file left by a
	// previous run.
	PreserveExisting bool `yaml:"preserve_existing" env:"PRESERVE_EXISTING" env-default:"false"`

	// TemplateDir optionally shadows built-in layer templates by file name.
	TemplateDir string `yaml:"template_dir" env:"TEMPLATE_DIR" env-default:""`
}

// Overwrite reports whether generated files replace existing ones.
func (p ProjectConfig) Overwrite() bool {
	return !p.PreserveExisting
}

// SessionConfig holds the cookie session settings.
type SessionConfig struct {
	Name   string `yaml:"name" env:"SESSION_NAME" env-default:"scaffold_session"`
	MaxAge int    `yaml:"max_age_seconds" env:"SESSION_MAX_AGE_SECONDS" env-default:"3600"`
	Secure bool   `yaml:"secure" env:"SESSION_SECURE" env-default:"false"`

	// Secret signs and encrypts the session cookie.
	// Generate with: openssl rand -base64 32
	Secret string `yaml:"-" env:"SESSION_SECRET"` // Secret - not in YAML
}

// Load reads configuration from path with environment variable overrides.
// A missing file is not an error; defaults and the environment are used.
// The version parameter is injected at build time and set on the returned Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Validate TLS configuration
	if err := cfg.validateTLS(); err != nil {
		return nil, fmt.Errorf("invalid TLS configuration: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set
	// Use HTTPS scheme if TLS is configured
	if cfg.BaseURL == "" {
		scheme := "http"
		if cfg.TLSCertPath != "" {
			scheme = "https"
		}
		cfg.BaseURL = (&url.URL{
			Scheme: scheme,
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// validateTLS ensures TLS configuration is valid if provided.
// Both cert and key must be provided together, and files must exist.
func (c *Config) validateTLS() error {
	certSet := c.TLSCertPath != ""
	keySet := c.TLSKeyPath != ""

	if certSet != keySet {
		return fmt.Errorf("both tls_cert_path and tls_key_path must be provided together")
	}

	if certSet {
		if _, err := os.Stat(c.TLSCertPath); err != nil {
			return fmt.Errorf("TLS cert file does not exist: %w", err)
		}
		if _, err := os.Stat(c.TLSKeyPath); err != nil {
			return fmt.Errorf("TLS key file does not exist: %w", err)
		}
	}

	return nil
}

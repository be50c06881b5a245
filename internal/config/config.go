// Package config loads application configuration from an optional YAML file
// with environment overrides for every field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the full application configuration.
type Config struct {
	Addr          string     `yaml:"addr"`
	WebDir        string     `yaml:"web_dir"`
	SessionSecret string     `yaml:"session_secret"`
	DB            DBConfig   `yaml:"db"`
	OIDC          OIDCConfig `yaml:"oidc"`
}

// DBConfig describes the relational store connection.
type DBConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// OIDCConfig enables SSO login when Issuer is set.
type OIDCConfig struct {
	Issuer       string `yaml:"issuer"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when absent), then environment variables. An empty path skips the
// file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:          ":8080",
		WebDir:        "web",
		SessionSecret: "development-secret",
		DB: DBConfig{
			Driver: "postgres",
			Host:   "localhost",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg.Addr = env("ADDR", cfg.Addr)
	cfg.WebDir = env("WEB_DIR", cfg.WebDir)
	cfg.SessionSecret = env("SESSION_SECRET", cfg.SessionSecret)
	cfg.DB.Driver = env("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = env("DB_HOST", cfg.DB.Host)
	cfg.DB.User = env("DB_USER", cfg.DB.User)
	cfg.DB.Password = env("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = env("DB_NAME", cfg.DB.Name)
	cfg.OIDC.Issuer = env("OIDC_ISSUER", cfg.OIDC.Issuer)
	cfg.OIDC.ClientID = env("OIDC_CLIENT_ID", cfg.OIDC.ClientID)
	cfg.OIDC.ClientSecret = env("OIDC_CLIENT_SECRET", cfg.OIDC.ClientSecret)
	cfg.OIDC.RedirectURL = env("OIDC_REDIRECT_URL", cfg.OIDC.RedirectURL)

	return cfg, nil
}

// DSN renders the driver-specific connection string.
func (d DBConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Name)
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable", d.Host, d.User, d.Password, d.Name)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/FreePeak/db-view-server/internal/domain"
)

// Transport modes
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config holds all server configuration
type Config struct {
	ServerPort        int
	TransportMode     string
	LogLevel          string
	LogFormat         string
	SettingDir        string
	SettingFile       string
	DBPropertiesFile  string
	DefaultIdentifier string
	RoutePrefix       string
	TemplateDir       string
	SystemErrorView   string
}

// LoadConfig loads a .env file from the working directory when there is one,
// then reads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	cfg := &Config{
		ServerPort:        port,
		TransportMode:     getEnv("TRANSPORT_MODE", TransportHTTP),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		SettingDir:        getEnv("SETTING_DIR", "."),
		SettingFile:       getEnv("SETTING_FILE", "setting.xml"),
		DBPropertiesFile:  getEnv("DB_PROPERTIES_FILE", "db.properties"),
		DefaultIdentifier: getEnv("DEFAULT_IDENTIFIER", domain.DefaultIdentifier),
		RoutePrefix:       getEnv("ROUTE_PREFIX", "/myresource"),
		TemplateDir:       getEnv("TEMPLATE_DIR", ""),
		SystemErrorView:   getEnv("SYSTEM_ERROR_VIEW", "/system_error.html"),
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server port out of range: %d", c.ServerPort)
	}
	switch strings.ToLower(c.TransportMode) {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("unknown transport mode: %s", c.TransportMode)
	}
	if c.SettingFile == "" {
		return errors.New("setting file must not be empty")
	}
	if c.DBPropertiesFile == "" {
		return errors.New("connection properties file must not be empty")
	}
	return nil
}

// SettingPath returns the configuration document path
func (c *Config) SettingPath() string {
	return c.resolve(c.SettingFile)
}

// DBPropertiesPath returns the connection properties file path
func (c *Config) DBPropertiesPath() string {
	return c.resolve(c.DBPropertiesFile)
}

// resolve places relative file names inside the settings directory
func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.SettingDir == "" {
		return name
	}
	return filepath.Join(c.SettingDir, name)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

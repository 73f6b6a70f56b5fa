package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	// Import database drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/FreePeak/db-view-server/pkg/logger"
)

// Common database errors
var (
	ErrNoDatabase      = errors.New("no database connection")
	ErrUnsupportedURL  = errors.New("unsupported database url")
	ErrMissingProperty = errors.New("missing connection property")
)

// Property keys of the connection parameters file
const (
	PropertyURL      = "url"
	PropertyUser     = "user"
	PropertyPassword = "password"
)

// Config represents database connection configuration
type Config struct {
	URL      string
	User     string
	Password string
}

// LoadProperties reads url/user/password from a key=value properties file
func LoadProperties(path string) (Config, error) {
	props, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read connection properties %s: %w", path, err)
	}

	cfg := Config{
		URL:      props[PropertyURL],
		User:     props[PropertyUser],
		Password: props[PropertyPassword],
	}
	if cfg.URL == "" {
		return Config{}, fmt.Errorf("%w: %s in %s", ErrMissingProperty, PropertyURL, path)
	}
	return cfg, nil
}

// Database is a single-connection handle used for exactly one execution
type Database interface {
	// Transaction support
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)

	// Connection management
	Connect(ctx context.Context) error
	Close() error

	// Metadata
	DriverName() string
	ConnectionString() string
}

// database is the concrete implementation of the Database interface
type database struct {
	config     Config
	db         *sql.DB
	driverName string
	dsn        string
}

// NewDatabase resolves the driver and DSN for the provided configuration
func NewDatabase(config Config) (Database, error) {
	driverName, dsn, err := DriverAndDSN(config)
	if err != nil {
		return nil, err
	}

	return &database{
		config:     config,
		driverName: driverName,
		dsn:        dsn,
	}, nil
}

// DriverAndDSN maps a connection url (optionally prefixed with "jdbc:") onto a
// registered database/sql driver and its DSN.
func DriverAndDSN(config Config) (string, string, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(config.URL), "jdbc:")
	scheme, rest, ok := strings.Cut(raw, ":")
	if !ok || rest == "" {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, config.URL)
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
		}
		u.Scheme = "postgres"
		if config.User != "" {
			u.User = url.UserPassword(config.User, config.Password)
		}
		q := u.Query()
		if q.Get("sslmode") == "" {
			q.Set("sslmode", "disable")
			u.RawQuery = q.Encode()
		}
		return "postgres", u.String(), nil

	case "mysql":
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
		}
		cfg := mysql.NewConfig()
		cfg.User = config.User
		cfg.Passwd = config.Password
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		return "mysql", cfg.FormatDSN(), nil

	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(rest, "//")
		if path == "" {
			return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, config.URL)
		}
		return "sqlite", path, nil

	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, config.URL)
	}
}

// Connect opens a handle restricted to one physical connection and verifies it
func (d *database) Connect(ctx context.Context) error {
	db, err := sql.Open(d.driverName, d.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// One execution, one connection: no pooling
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("Error closing database connection: %v", closeErr)
		}
		return fmt.Errorf("failed to ping database: %w", err)
	}

	d.db = db
	logger.Debug("Connected to %s", d.ConnectionString())
	return nil
}

// Close closes the database connection
func (d *database) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// BeginTx starts a transaction
func (d *database) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if d.db == nil {
		return nil, ErrNoDatabase
	}
	return d.db.BeginTx(ctx, opts)
}

// DriverName returns the name of the database driver
func (d *database) DriverName() string {
	return d.driverName
}

// ConnectionString returns the connection url with the password masked
func (d *database) ConnectionString() string {
	return MaskURL(d.config.URL, d.config.User)
}

// MaskURL renders a connection url for logs without any password
func MaskURL(rawURL, user string) string {
	raw := strings.TrimPrefix(rawURL, "jdbc:")
	if u, err := url.Parse(raw); err == nil && u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
		raw = u.String()
	}
	if user != "" {
		return fmt.Sprintf("%s (user=%s)", raw, user)
	}
	return raw
}

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	AppHost string
	AppPort string

	DBDriver string
	DBPath   string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	UploadDir       string
	MaxUploadMB     int
	UniqueFilenames bool
	TrustProxy      bool

	// Empty RedisAddr disables idempotent submits.
	RedisAddr    string
	RedisDB      int
	IdempTTLSecs int

	LogLevel  string
	LogFormat string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// Load reads optional env files (.env when none are named) and then the
// process environment. A missing file is fine; an unreadable or malformed
// one is an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		AppHost: getenv("APP_HOST", "0.0.0.0"),
		AppPort: getenv("APP_PORT", "5001"),

		DBDriver: strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		DBPath:   getenv("DB_PATH", "onboarding.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "onboarding"),
		MySQLUser: getenv("MYSQL_USER", "onboarding"),
		MySQLPass: getenv("MYSQL_PASS", "onboarding"),

		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:     getint("MAX_UPLOAD_MB", 50),
		UniqueFilenames: getbool("UNIQUE_FILENAMES", true),
		TrustProxy:      getbool("TRUST_PROXY", false),

		RedisAddr:    getenv("REDIS_ADDR", ""),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "console"),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("missing DB_PATH for sqlite driver")
		}
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.UploadDir == "" {
		return errors.New("missing UPLOAD_DIR")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

func (c *Config) Addr() string { return net.JoinHostPort(c.AppHost, c.AppPort) }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverMySQL {
		// parseTime needed for DATETIME
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
			c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
	}
	return c.DBPath
}

// BodyLimit is the echo BodyLimit notation of MaxUploadMB, e.g. "50M".
func (c *Config) BodyLimit() string { return strconv.Itoa(c.MaxUploadMB) + "M" }

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

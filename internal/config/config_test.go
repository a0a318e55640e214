package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"APP_HOST", "APP_PORT", "DB_DRIVER", "DB_PATH", "UPLOAD_DIR", "MAX_UPLOAD_MB",
		"UNIQUE_FILENAMES", "TRUST_PROXY", "REDIS_ADDR", "IDEMPOTENCY_TTL_SECONDS",
	} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	if c.Addr() != "0.0.0.0:5001" {
		t.Fatalf("Addr = %q, want 0.0.0.0:5001", c.Addr())
	}
	if c.DBDriver != DriverSQLite || c.DSN() != "onboarding.db" {
		t.Fatalf("unexpected db defaults: driver=%q dsn=%q", c.DBDriver, c.DSN())
	}
	if c.UploadDir != "uploads" || c.MaxUploadMB != 50 || c.BodyLimit() != "50M" {
		t.Fatalf("unexpected upload defaults: %+v", c)
	}
	if !c.UniqueFilenames {
		t.Fatalf("UniqueFilenames should default to true")
	}
	if c.TrustProxy {
		t.Fatalf("TrustProxy should default to false")
	}
	if c.RedisAddr != "" {
		t.Fatalf("RedisAddr should default to empty, got %q", c.RedisAddr)
	}
	if c.IdempotencyTTL() != 300*time.Second {
		t.Fatalf("IdempotencyTTL = %v, want 5m", c.IdempotencyTTL())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8088")
	t.Setenv("MAX_UPLOAD_MB", "16")
	t.Setenv("UNIQUE_FILENAMES", "false")
	t.Setenv("TRUST_PROXY", "1")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_USER", "u")
	t.Setenv("MYSQL_PASS", "p")
	t.Setenv("MYSQL_DB", "ob")

	c := FromEnv()
	if c.AppPort != "8088" || c.MaxUploadMB != 16 || c.BodyLimit() != "16M" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.UniqueFilenames || !c.TrustProxy || c.RedisDB != 3 {
		t.Fatalf("bool/int overrides not applied: %+v", c)
	}
	if c.DBDriver != DriverMySQL {
		t.Fatalf("driver = %q, want mysql", c.DBDriver)
	}
	dsn := c.DSN()
	if !strings.HasPrefix(dsn, "u:p@tcp(db:3306)/ob?") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("unexpected mysql DSN: %s", dsn)
	}
}

func TestFromEnv_BadNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "lots")
	t.Setenv("UNIQUE_FILENAMES", "maybe")

	c := FromEnv()
	if c.MaxUploadMB != 50 {
		t.Fatalf("MaxUploadMB = %d, want fallback 50", c.MaxUploadMB)
	}
	if !c.UniqueFilenames {
		t.Fatalf("UniqueFilenames should fall back to true")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort: "5001", DBDriver: DriverSQLite, DBPath: "x.db",
			UploadDir: "uploads", MaxUploadMB: 50,
		}
	}

	cases := map[string]func(c *Config){
		"missing port":     func(c *Config) { c.AppPort = "" },
		"bad port":         func(c *Config) { c.AppPort = "not-a-port" },
		"unknown driver":   func(c *Config) { c.DBDriver = "oracle" },
		"missing db path":  func(c *Config) { c.DBPath = "" },
		"missing uploads":  func(c *Config) { c.UploadDir = "" },
		"zero upload size": func(c *Config) { c.MaxUploadMB = 0 },
		"mysql without host": func(c *Config) {
			c.DBDriver = DriverMySQL
			c.MySQLPort, c.MySQLDB, c.MySQLUser = "3306", "ob", "u"
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base config should validate: %v", err)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.env")
	if err := os.WriteFile(path, []byte("UPLOAD_DIR=/srv/photos\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("UPLOAD_DIR", "")
	os.Unsetenv("UPLOAD_DIR")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.UploadDir != "/srv/photos" {
		t.Fatalf("UploadDir = %q, want value from env file", c.UploadDir)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing env file should not fail: %v", err)
	}
}

func TestLoad_UnreadableFileFails(t *testing.T) {
	// a directory cannot be parsed as an env file
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected an error for an unreadable env file")
	}
}

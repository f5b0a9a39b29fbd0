package config

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/nutribot")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PORT", "")
	t.Setenv("PROMETHEUS_PORT", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("STATS_INTERVAL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseDriver != DriverPostgres {
		t.Fatalf("DatabaseDriver = %q, want %q", cfg.DatabaseDriver, DriverPostgres)
	}
	if cfg.LogLevel != "info" || cfg.Port != "8080" || cfg.PrometheusPort != "9090" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TelegramToken != "" {
		t.Fatalf("expected no telegram token, got %q", cfg.TelegramToken)
	}
	if cfg.StatsInterval != time.Minute {
		t.Fatalf("StatsInterval = %s, want 1m", cfg.StatsInterval)
	}
}

func TestLoadRejectsBadStatsInterval(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/nutribot")
	t.Setenv("DATABASE_DRIVER", "")

	for _, v := range []string{"soon", "-5s", "0s"} {
		t.Setenv("STATS_INTERVAL", v)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for STATS_INTERVAL=%q", v)
		}
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://localhost/nutribot")
	t.Setenv("DATABASE_DRIVER", "mysql")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("NUTRIBOT_TEST_VALUE", "set")

	if got := getEnvOrDefault("NUTRIBOT_TEST_VALUE", "fallback"); got != "set" {
		t.Fatalf("getEnvOrDefault = %q, want %q", got, "set")
	}
	if got := getEnvOrDefault("NUTRIBOT_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("getEnvOrDefault = %q, want %q", got, "fallback")
	}
}

func TestSQLiteDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"memory", ":memory:", ":memory:?_foreign_keys=on"},
		{"existing params", "file:test.db?cache=shared", "file:test.db?cache=shared&_foreign_keys=on"},
		{"already set", "test.db?_foreign_keys=off", "test.db?_foreign_keys=off"},
		{"short flag", "test.db?_fk=1", "test.db?_fk=1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sqliteDSN(tt.dsn); got != tt.want {
				t.Fatalf("sqliteDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestMigrateSQLite(t *testing.T) {
	t.Parallel()

	db, err := NewDatabase(DriverSQLite, ":memory:", quietLogger())
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	// A second run has nothing to apply.
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	for _, table := range []string{"food", "recipe", "ingredients"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s to exist: %v", table, err)
		}
	}

	var fk int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}
}

func TestNewDatabaseUnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := NewDatabase("nosuchdriver", "whatever", quietLogger()); err == nil {
		t.Fatal("expected error for unregistered driver")
	}
}

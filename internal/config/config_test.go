package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ENV", "DATABASE_DSN", "JWT_SECRET", "JWT_EXPIRY", "QR_SIZE", "CORS_ALLOWED_ORIGINS", "DB_AUTO_MIGRATE", "HASH_MEMORY_KB", "HASH_ITERATIONS", "HASH_PARALLELISM"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.JWTExpiry != time.Hour {
		t.Errorf("JWTExpiry = %v, want 1h", cfg.JWTExpiry)
	}
	if !cfg.AutoMigrate {
		t.Error("AutoMigrate should default to true")
	}
	if cfg.Hash.Memory != 64*1024 || cfg.Hash.Iterations != 3 || cfg.Hash.Parallelism != 2 {
		t.Errorf("unexpected hash params: %+v", cfg.Hash)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("HASH_ITERATIONS", "5")
	t.Setenv("QR_SIZE", "512")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg := Load()

	if cfg.JWTExpiry != 90*time.Minute {
		t.Errorf("JWTExpiry = %v, want 90m", cfg.JWTExpiry)
	}
	if cfg.Hash.Iterations != 5 {
		t.Errorf("Hash.Iterations = %d, want 5", cfg.Hash.Iterations)
	}
	if cfg.QRSize != 512 {
		t.Errorf("QRSize = %d, want 512", cfg.QRSize)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.AutoMigrate {
		t.Error("AutoMigrate should be false")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("QR_SIZE", "-3")

	cfg := Load()

	if cfg.JWTExpiry != time.Hour {
		t.Errorf("JWTExpiry = %v, want fallback 1h", cfg.JWTExpiry)
	}
	if cfg.QRSize != 256 {
		t.Errorf("QRSize = %d, want fallback 256", cfg.QRSize)
	}
}

func TestDatabaseDSNFromParts(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USER", "bio")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "bioqr")

	dsn := databaseDSN()

	if !strings.HasPrefix(dsn, "bio:pw@tcp(db.internal:3307)/bioqr") {
		t.Errorf("unexpected dsn %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("dsn %q should enable parseTime", dsn)
	}
}

func TestDatabaseDSNOverride(t *testing.T) {
	t.Setenv("DATABASE_DSN", "u:p@tcp(h:1)/d")

	if got := databaseDSN(); got != "u:p@tcp(h:1)/d" {
		t.Errorf("databaseDSN() = %q", got)
	}
}

func TestLoadHashParallelismOutOfRange(t *testing.T) {
	t.Setenv("HASH_PARALLELISM", "300")

	if got := Load().Hash.Parallelism; got != 2 {
		t.Errorf("Hash.Parallelism = %d, want fallback 2", got)
	}

	t.Setenv("HASH_PARALLELISM", "255")

	if got := Load().Hash.Parallelism; got != 255 {
		t.Errorf("Hash.Parallelism = %d, want 255", got)
	}
}

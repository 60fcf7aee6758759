package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/bioqr/bioqr-go/internal/crypto"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	AutoMigrate    bool
	JWTSecret      string
	JWTExpiry      time.Duration
	Hash           crypto.HashParams
	QRSize         int
	AllowedOrigins []string
}

// Load reads the configuration from the environment. Call godotenv.Load first
// to pick up a .env file.
func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "5000"),
		Env:            getEnv("ENV", "development"),
		DatabaseDSN:    databaseDSN(),
		AutoMigrate:    getBool("DB_AUTO_MIGRATE", true),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:      getDuration("JWT_EXPIRY", time.Hour),
		QRSize:         getInt("QR_SIZE", 256),
		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		Hash: crypto.HashParams{
			Memory:      uint32(getInt("HASH_MEMORY_KB", 64*1024)),
			Iterations:  uint32(getInt("HASH_ITERATIONS", 3)),
			Parallelism: uint8(getIntMax("HASH_PARALLELISM", 2, math.MaxUint8)),
		},
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// databaseDSN returns DATABASE_DSN when set, otherwise builds one from the DB_* variables.
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%s", getEnv("DB_HOST", "127.0.0.1"), getEnv("DB_PORT", "3306"))
	mc.User = getEnv("DB_USER", "root")
	mc.Passwd = getEnv("DB_PASSWORD", "password")
	mc.DBName = getEnv("DB_NAME", "bioqr")
	mc.ParseTime = true
	return mc.FormatDSN()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

// getIntMax is getInt with an upper bound; larger values fall back too.
func getIntMax(key string, fallback, limit int) int {
	n := getInt(key, fallback)
	if n > limit {
		slog.Warn("integer in environment out of range, using default", "key", key, "value", n, "max", limit)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	BlobModeLocal = "local"
	BlobModeS3    = "s3"
	BlobModeAuto  = "auto"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type S3Config struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	PublicBaseURL     string
	PresignTTLSeconds int
	PreferPublicURL   bool
}

func (c S3Config) MissingRequired() []string {
	missing := make([]string, 0, 5)
	if strings.TrimSpace(c.Endpoint) == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, "S3_REGION")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	if c.PreferPublicURL && strings.TrimSpace(c.PublicBaseURL) == "" {
		missing = append(missing, "S3_PUBLIC_BASE_URL")
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

func (c S3Config) Diagnostics() (level string, code string, msg string) {
	allEmpty := strings.TrimSpace(c.Endpoint) == "" &&
		strings.TrimSpace(c.Region) == "" &&
		strings.TrimSpace(c.Bucket) == "" &&
		strings.TrimSpace(c.AccessKeyID) == "" &&
		strings.TrimSpace(c.SecretAccessKey) == ""

	if allEmpty {
		return "INFO", "s3_not_configured", "not configured (all empty)"
	}

	missing := c.MissingRequired()
	if len(missing) > 0 {
		return "WARN", "s3_partial_config", fmt.Sprintf("partial config, missing=%v", missing)
	}

	return "INFO", "s3_ready", "ready"
}

// DiagnosticsSummary returns a summary for logging (no secrets)
func (c S3Config) DiagnosticsSummary() string {
	return fmt.Sprintf("endpoint=%s region=%s bucket=%s public_base_url=%s presign_ttl=%ds prefer_public_url=%t access_key_id=%s secret_access_key=%s",
		nonEmptyOrDash(c.Endpoint),
		nonEmptyOrDash(c.Region),
		nonEmptyOrDash(c.Bucket),
		nonEmptyOrDash(c.PublicBaseURL),
		c.PresignTTLSeconds,
		c.PreferPublicURL,
		SetOrNot(c.AccessKeyID),
		SetOrNot(c.SecretAccessKey),
	)
}

// SetOrNot masks a secret for logs.
func SetOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

func nonEmptyOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

type BlobConfig struct {
	Mode      string // local|s3|auto
	LocalDir  string // directory for local mode
	KeyPrefix string
	S3        S3Config
}

// Config содержит конфигурацию приложения
type Config struct {
	Env       string // local | staging | production
	LogLevel  string
	LogFormat string // json | console
	Transport string // stdio | http
	Port      int

	// Storage
	StorageDriver     string // sqlite | postgres | memory
	SQLitePath        string
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string
	DatabaseURLPooled string
	DatabaseURLDirect string

	RunMigrationsOnStartup bool

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting
	RateLimitRPS   int
	RateLimitBurst int

	// Auth (HTTP transport only)
	AuthMode      string // none | dev
	AuthRequired  bool
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Reports
	Blob                BlobConfig
	ReportsMaxRangeDays int

	// Recommendations
	RecommendRulesFile string
	LowRemainingKcal   float64

	// Warnings collected while loading; logged once a logger exists.
	Warnings []string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	cfg := &Config{}

	cfg.Env = os.Getenv("APP_ENV")
	if cfg.Env == "" {
		cfg.Env = "local"
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = cfg.oneOf("LOG_FORMAT", "json", "json", "console")
	cfg.Transport = cfg.oneOf("TRANSPORT", TransportStdio, TransportStdio, TransportHTTP)
	cfg.Port = envInt("PORT", 8080)

	// ---------- Storage ----------
	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	cfg.DatabaseURLPooled = strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	cfg.DatabaseURLRaw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.DatabaseURLDirect = strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	cfg.DatabaseURL = cfg.DatabaseURLPooled
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.DatabaseURLRaw
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.DatabaseURLDirect
	}

	defaultDriver := StorageSQLite
	if cfg.DatabaseURL != "" {
		defaultDriver = StoragePostgres
	}
	cfg.StorageDriver = cfg.oneOf("STORAGE_DRIVER", defaultDriver, StorageSQLite, StoragePostgres, StorageMemory)
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		cfg.warnf("STORAGE_DRIVER=postgres but no DATABASE_URL is set, fallback to %s", StorageSQLite)
		cfg.StorageDriver = StorageSQLite
	}

	cfg.SQLitePath = strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "health.db"
	}

	// sqlite has no separate DDL step, so migrations run by default
	if raw := strings.TrimSpace(os.Getenv("RUN_MIGRATIONS_ON_STARTUP")); raw != "" {
		cfg.RunMigrationsOnStartup = parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP")
	} else {
		cfg.RunMigrationsOnStartup = cfg.StorageDriver == StorageSQLite
	}

	// ---------- HTTP ----------
	cfg.CORSAllowedOrigins = parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), cfg.Env)
	cfg.CORSAllowCredentials = parseBoolEnv("CORS_ALLOW_CREDENTIALS")
	cfg.RateLimitRPS = envInt("RATE_LIMIT_RPS", 0)
	cfg.RateLimitBurst = envInt("RATE_LIMIT_BURST", 0)

	// ---------- Auth ----------
	cfg.AuthMode = cfg.oneOf("AUTH_MODE", "none", "none", "dev")
	cfg.AuthRequired = cfg.AuthMode != "none" && parseBoolEnv("AUTH_REQUIRED")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "change_me"
	}
	if cfg.JWTSecret == "change_me" && cfg.Env != "local" && cfg.AuthMode != "none" {
		cfg.warnf("JWT_SECRET is set to 'change_me' in non-local environment")
	}
	cfg.JWTIssuer = os.Getenv("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "health-assistant"
	}
	cfg.JWTTTLMinutes = envInt("JWT_TTL_MINUTES", 10080)
	if cfg.JWTTTLMinutes <= 0 {
		cfg.JWTTTLMinutes = 10080
	}

	// ---------- Blob / reports ----------
	s3PresignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if s3PresignTTL <= 0 {
		s3PresignTTL = 900
	}

	cfg.Blob = BlobConfig{
		Mode:      cfg.oneOf("BLOB_MODE", BlobModeLocal, BlobModeLocal, BlobModeS3, BlobModeAuto),
		LocalDir:  strings.TrimSpace(os.Getenv("REPORTS_DIR")),
		KeyPrefix: strings.Trim(strings.TrimSpace(os.Getenv("REPORTS_KEY_PREFIX")), "/"),
		S3: S3Config{
			Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:            strings.TrimSpace(os.Getenv("S3_REGION")),
			Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
			SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
			PublicBaseURL:     strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
			PresignTTLSeconds: s3PresignTTL,
			PreferPublicURL:   parseBoolEnv("S3_PREFER_PUBLIC_URL"),
		},
	}
	if cfg.Blob.LocalDir == "" {
		cfg.Blob.LocalDir = "reports"
	}
	if cfg.Blob.KeyPrefix == "" {
		cfg.Blob.KeyPrefix = "reports"
	}

	cfg.ReportsMaxRangeDays = envInt("REPORTS_MAX_RANGE_DAYS", 90)
	if cfg.ReportsMaxRangeDays <= 0 {
		cfg.ReportsMaxRangeDays = 90
	}

	// ---------- Recommendations ----------
	cfg.RecommendRulesFile = strings.TrimSpace(os.Getenv("RECOMMEND_RULES_FILE"))
	cfg.LowRemainingKcal = envFloat("LOW_REMAINING_KCAL", 500)
	if cfg.LowRemainingKcal < 0 {
		cfg.LowRemainingKcal = 500
	}

	return cfg
}

// oneOf reads an enum env var; unknown values fall back to def with a warning.
func (c *Config) oneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	c.warnf("unknown %s=%q, fallback to %s", key, v, def)
	return def
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS env var.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:6274"}
		}
		return nil
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

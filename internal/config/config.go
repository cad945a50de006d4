package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	SRS       SRSConfig       `yaml:"srs"`
	Study     StudyConfig     `yaml:"study"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token validation settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"myenglish"`
	JWTLeeway time.Duration `yaml:"jwt_leeway" env:"AUTH_JWT_LEEWAY" env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request rate settings.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"             env:"RATE_LIMIT_ENABLED" env-default:"true"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"     env-default:"10"`
	Burst             int     `yaml:"burst"               env:"RATE_LIMIT_BURST"   env-default:"20"`
}

// SRSConfig holds memory-model and scoring parameters. Quality thresholds
// are on the internal 0..7 scale unless stated otherwise.
type SRSConfig struct {
	DefaultEaseFactor      float64       `yaml:"default_ease_factor"      env:"SRS_DEFAULT_EASE"             env-default:"2.5"`
	MinEaseFactor          float64       `yaml:"min_ease_factor"          env:"SRS_MIN_EASE"                 env-default:"1.3"`
	MaxEaseFactor          float64       `yaml:"max_ease_factor"          env:"SRS_MAX_EASE"                 env-default:"3.5"`
	MaxIntervalDays        int           `yaml:"max_interval_days"        env:"SRS_MAX_INTERVAL"             env-default:"365"`
	FirstIntervalDays      int           `yaml:"first_interval_days"      env:"SRS_FIRST_INTERVAL"           env-default:"1"`
	LapseIntervalDays      int           `yaml:"lapse_interval_days"      env:"SRS_LAPSE_INTERVAL"           env-default:"1"`
	RelearnDelay           time.Duration `yaml:"relearn_delay"            env:"SRS_RELEARN_DELAY"            env-default:"10m"`
	GraduationReps         int           `yaml:"graduation_reps"          env:"SRS_GRADUATION_REPS"          env-default:"2"`
	HardStreakThreshold    int           `yaml:"hard_streak_threshold"    env:"SRS_HARD_STREAK_THRESHOLD"    env-default:"3"`
	RecoveryStreak         int           `yaml:"recovery_streak"          env:"SRS_RECOVERY_STREAK"          env-default:"2"`
	CorrectThreshold       int           `yaml:"correct_threshold"        env:"SRS_CORRECT_THRESHOLD"        env-default:"4"`
	VagueLow               int           `yaml:"vague_low"                env:"SRS_VAGUE_LOW"                env-default:"2"`
	VagueHigh              int           `yaml:"vague_high"               env:"SRS_VAGUE_HIGH"               env-default:"3"`
	EasyThreshold          int           `yaml:"easy_threshold"           env:"SRS_EASY_THRESHOLD"           env-default:"7"`
	LegacyCorrectThreshold int           `yaml:"legacy_correct_threshold" env:"SRS_LEGACY_CORRECT_THRESHOLD" env-default:"3"`
	PointsTableRaw         string        `yaml:"points_table"             env:"SRS_POINTS_TABLE"             env-default:"1,1,3,5,5,10,12,15"`

	// PointsTable is parsed from PointsTableRaw during validation.
	PointsTable [8]int `yaml:"-" env:"-"`
}

// StudyConfig holds session engine settings.
type StudyConfig struct {
	DefaultBatchSize  int           `yaml:"default_batch_size"  env:"STUDY_DEFAULT_BATCH_SIZE"  env-default:"1"`
	MaxBatchSize      int           `yaml:"max_batch_size"      env:"STUDY_MAX_BATCH_SIZE"      env-default:"50"`
	StaleSessionAfter time.Duration `yaml:"stale_session_after" env:"STUDY_STALE_SESSION_AFTER" env-default:"0s"`
}

// Origins splits AllowedOrigins into trimmed values.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

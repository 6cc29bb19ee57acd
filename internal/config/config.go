package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	PunchDB    PunchDBConfig
	App        AppConfig
	Sync       SyncConfig
	Classifier ClassifierConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// PunchDBConfig points at the read-only biometric device log (MySQL).
type PunchDBConfig struct {
	DSN string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type SyncConfig struct {
	// Timezone is the institute's local zone; every day/month boundary in
	// the pipeline is computed in it.
	Timezone string
	// EmployeeCodeWidth is the fixed width of the numeric biometric code.
	EmployeeCodeWidth int
	// RunHour is the local hour at which the daily sync and the monthly
	// slip job fire when running under the scheduler.
	RunHour int
}

// ClassifierConfig carries the lateness bands. The defaults are long-standing
// business constants; they are configurable, not inferred.
type ClassifierConfig struct {
	LateGraceMinutes       int
	MuchLateLimitMinutes   int
	EarlyLeaveLimitMinutes int
}

func Load() (*Config, error) {
	// A missing .env is fine in deployment; real env vars take over.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "institute_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.PunchDB = PunchDBConfig{
		DSN: getEnv("PUNCH_DB_DSN", ""),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	codeWidth, err := strconv.Atoi(getEnv("EMPLOYEE_CODE_WIDTH", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMPLOYEE_CODE_WIDTH: %w", err)
	}
	runHour, err := strconv.Atoi(getEnv("SYNC_RUN_HOUR", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_RUN_HOUR: %w", err)
	}

	config.Sync = SyncConfig{
		Timezone:          getEnv("INSTITUTE_TZ", "Asia/Kolkata"),
		EmployeeCodeWidth: codeWidth,
		RunHour:           runHour,
	}

	lateGrace, err := strconv.Atoi(getEnv("LATE_GRACE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_GRACE_MINUTES: %w", err)
	}
	muchLateLimit, err := strconv.Atoi(getEnv("MUCH_LATE_LIMIT_MINUTES", "45"))
	if err != nil {
		return nil, fmt.Errorf("invalid MUCH_LATE_LIMIT_MINUTES: %w", err)
	}
	earlyLeaveLimit, err := strconv.Atoi(getEnv("EARLY_LEAVE_LIMIT_MINUTES", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid EARLY_LEAVE_LIMIT_MINUTES: %w", err)
	}

	config.Classifier = ClassifierConfig{
		LateGraceMinutes:       lateGrace,
		MuchLateLimitMinutes:   muchLateLimit,
		EarlyLeaveLimitMinutes: earlyLeaveLimit,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.PunchDB.DSN == "" {
		return fmt.Errorf("PUNCH_DB_DSN is required")
	}
	if c.Sync.EmployeeCodeWidth <= 0 {
		return fmt.Errorf("EMPLOYEE_CODE_WIDTH must be positive")
	}
	if c.Sync.RunHour < 0 || c.Sync.RunHour > 23 {
		return fmt.Errorf("SYNC_RUN_HOUR must be between 0 and 23")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

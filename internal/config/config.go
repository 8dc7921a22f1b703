package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Seed     SeedConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// PayrollConfig holds the pay and overtime policy. The daily threshold is used
// by the time ledger, the weekly one by the payroll calculator.
type PayrollConfig struct {
	TaxRate                 decimal.Decimal
	OtherDeductionRate      decimal.Decimal
	OvertimeMultiplier      decimal.Decimal
	WeeklyOvertimeThreshold decimal.Decimal
	DailyOvertimeThreshold  decimal.Decimal
	WeeksPerYear            decimal.Decimal
}

// SeedConfig holds the bootstrap admin account used by cmd/seed.
type SeedConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	AdminFullName string
}

// DefaultPayrollConfig returns the standard policy: 25% tax, 5% other
// deductions, 1.5x overtime after 40h/week or 8h/day, 52 weeks per year.
func DefaultPayrollConfig() PayrollConfig {
	return PayrollConfig{
		TaxRate:                 decimal.RequireFromString("0.25"),
		OtherDeductionRate:      decimal.RequireFromString("0.05"),
		OvertimeMultiplier:      decimal.RequireFromString("1.5"),
		WeeklyOvertimeThreshold: decimal.NewFromInt(40),
		DailyOvertimeThreshold:  decimal.NewFromInt(8),
		WeeksPerYear:            decimal.NewFromInt(52),
	}
}

func Load() (*Config, error) {
	// .env is optional; real deployments pass plain environment variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "payroll-backend"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Payroll policy
	config.Payroll = DefaultPayrollConfig()
	decimals := []struct {
		key    string
		target *decimal.Decimal
	}{
		{"PAYROLL_TAX_RATE", &config.Payroll.TaxRate},
		{"PAYROLL_OTHER_DEDUCTION_RATE", &config.Payroll.OtherDeductionRate},
		{"PAYROLL_OVERTIME_MULTIPLIER", &config.Payroll.OvertimeMultiplier},
		{"PAYROLL_WEEKLY_OVERTIME_THRESHOLD", &config.Payroll.WeeklyOvertimeThreshold},
		{"PAYROLL_DAILY_OVERTIME_THRESHOLD", &config.Payroll.DailyOvertimeThreshold},
		{"PAYROLL_WEEKS_PER_YEAR", &config.Payroll.WeeksPerYear},
	}
	for _, d := range decimals {
		if err := getEnvDecimal(d.key, d.target); err != nil {
			return nil, err
		}
	}

	config.Seed = SeedConfig{
		AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@payroll.local"),
		AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		AdminFullName: getEnv("SEED_ADMIN_FULL_NAME", "System Administrator"),
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
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	return c.Payroll.Validate()
}

// Validate rejects policies that would make the calculator meaningless.
func (p PayrollConfig) Validate() error {
	one := decimal.NewFromInt(1)
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(one) {
		return fmt.Errorf("PAYROLL_TAX_RATE must be between 0 and 1")
	}
	if p.OtherDeductionRate.IsNegative() || p.OtherDeductionRate.GreaterThan(one) {
		return fmt.Errorf("PAYROLL_OTHER_DEDUCTION_RATE must be between 0 and 1")
	}
	if p.TaxRate.Add(p.OtherDeductionRate).GreaterThan(one) {
		return fmt.Errorf("combined deduction rates must not exceed 1")
	}
	if p.OvertimeMultiplier.LessThan(one) {
		return fmt.Errorf("PAYROLL_OVERTIME_MULTIPLIER must be at least 1")
	}
	if !p.WeeklyOvertimeThreshold.IsPositive() || !p.DailyOvertimeThreshold.IsPositive() {
		return fmt.Errorf("overtime thresholds must be positive")
	}
	if !p.WeeksPerYear.IsPositive() {
		return fmt.Errorf("PAYROLL_WEEKS_PER_YEAR must be positive")
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

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func getEnvDecimal(key string, target *decimal.Decimal) error {
	value := getEnv(key, "")
	if value == "" {
		return nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = parsed
	return nil
}

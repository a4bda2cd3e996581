package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr           = ":8080"
	defaultDatabaseURL        = "brandmarket.db"
	defaultJWTAccessTTL       = "168h" // 7 days
	defaultRefreshTTL         = "720h"
	defaultVerifyCodeTTL      = "10m"
	defaultVerifyBlockWindow  = "15m"
	defaultVerifyResend       = "60s"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultRefreshTokenPepper = "change-me-refresh-pepper"
	defaultVerifyCodePepper   = "change-me-verification-pepper"

	VerifyMaxAttempts = 5
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type StorageConfig struct {
	Type      string // local or s3
	BasePath  string
	BaseURL   string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	RefreshTTL         time.Duration
	RefreshTokenPepper string

	VerificationCodePepper string
	VerifyCodeTTL          time.Duration
	VerifyBlockWindow      time.Duration
	VerifyResendCooldown   time.Duration

	SMTP        SMTPConfig
	MailDevMode bool

	Storage StorageConfig
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RefreshTokenPepper = strings.TrimSpace(getEnv("REFRESH_TOKEN_PEPPER", defaultRefreshTokenPepper))
	cfg.VerificationCodePepper = strings.TrimSpace(getEnv("VERIFICATION_CODE_PEPPER", defaultVerifyCodePepper))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}
	cfg.VerifyCodeTTL, err = parseDurationEnv("VERIFY_CODE_TTL", defaultVerifyCodeTTL)
	if err != nil {
		return nil, err
	}
	cfg.VerifyBlockWindow, err = parseDurationEnv("VERIFY_BLOCK_WINDOW", defaultVerifyBlockWindow)
	if err != nil {
		return nil, err
	}
	cfg.VerifyResendCooldown, err = parseDurationEnv("VERIFY_RESEND_COOLDOWN", defaultVerifyResend)
	if err != nil {
		return nil, err
	}

	cfg.MailDevMode = parseBoolEnv("MAIL_DEV_MODE", "true")
	cfg.SMTP = SMTPConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:     parseIntEnv("SMTP_PORT", 587),
		Username: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     strings.TrimSpace(getEnv("SMTP_FROM", "no-reply@brandmarket.tn")),
	}

	cfg.Storage = StorageConfig{
		Type:      strings.TrimSpace(getEnv("STORAGE_TYPE", "local")),
		BasePath:  strings.TrimSpace(getEnv("STORAGE_BASE_PATH", "./uploads")),
		BaseURL:   strings.TrimSpace(getEnv("STORAGE_BASE_URL", "/static/uploads")),
		Bucket:    strings.TrimSpace(os.Getenv("STORAGE_BUCKET")),
		Region:    strings.TrimSpace(getEnv("STORAGE_REGION", "auto")),
		AccessKey: strings.TrimSpace(os.Getenv("STORAGE_ACCESS_KEY")),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		Endpoint:  strings.TrimSpace(os.Getenv("STORAGE_ENDPOINT")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if cfg.VerifyCodeTTL <= 0 {
		return fmt.Errorf("VERIFY_CODE_TTL must be > 0")
	}
	if cfg.VerifyBlockWindow <= 0 {
		return fmt.Errorf("VERIFY_BLOCK_WINDOW must be > 0")
	}
	if cfg.VerifyResendCooldown <= 0 {
		return fmt.Errorf("VERIFY_RESEND_COOLDOWN must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshTokenPepper, defaultRefreshTokenPepper) {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_PEPPER must be set and not default")
		}
		if isEmptyOrDefault(cfg.VerificationCodePepper, defaultVerifyCodePepper) {
			return fmt.Errorf("in prod/release VERIFICATION_CODE_PEPPER must be set and not default")
		}
		if cfg.MailDevMode {
			return fmt.Errorf("in prod/release MAIL_DEV_MODE must be false")
		}
		if cfg.SMTP.Host == "" {
			return fmt.Errorf("in prod/release SMTP_HOST must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func parseIntEnv(name string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token store backends for refresh-token tracking and blacklisting.
const (
	TokenStoreRedis    = "redis"
	TokenStorePostgres = "postgres"
)

// Email providers used by the notification worker.
const (
	EmailProviderConsole = "console"
	EmailProviderSMTP    = "smtp"
	EmailProviderMailgun = "mailgun"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Email    EmailConfig
	Notify   NotifyConfig
}

type ServerConfig struct {
	Port            string
	Production      bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string // CORS allowed origins for cookie auth
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ChannelBinding string // "require" for Neon DB, empty for local
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig is the immutable token policy handed to the session issuer,
// the token codecs and the transport layer.
type AuthConfig struct {
	SecretKey              []byte
	AccessTokenTTL         time.Duration
	RefreshTokenTTL        time.Duration
	RotateRefreshTokens    bool
	BlacklistAfterRotation bool
	VerificationMaxAge     time.Duration
	FrontendURL            string // base URL for the verification link
	TokenStore             string
	GoogleClientID         string
	LoginRateLimit         int // login attempts per minute and IP
	SignupRateLimit        int // signups per minute and IP
}

type EmailConfig struct {
	Provider       string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	FromEmail      string
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunBaseURL string
}

// NotifyConfig controls the asynchronous notification workers.
type NotifyConfig struct {
	Workers     int
	MaxAttempts int
	BaseDelay   time.Duration
	QueueKey    string
}

// Load reads configuration from environment variables
// Call godotenv.Load() before this if using .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	production := getBoolEnv("PRODUCTION", true)

	defaultProvider := EmailProviderSMTP
	if !production {
		defaultProvider = EmailProviderConsole
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Production:      production,
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:  getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "makeover"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ChannelBinding: getEnv("DB_CHANNEL_BINDING", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			SecretKey:              []byte(getEnv("SECRET_KEY", "")),
			AccessTokenTTL:         time.Duration(getIntEnv("ACCESS_TOKEN_LIFETIME_MINUTES", 5)) * time.Minute,
			RefreshTokenTTL:        time.Duration(getIntEnv("REFRESH_TOKEN_LIFETIME_DAYS", 1)) * 24 * time.Hour,
			RotateRefreshTokens:    getBoolEnv("ROTATE_REFRESH_TOKENS", true),
			BlacklistAfterRotation: getBoolEnv("BLACKLIST_AFTER_ROTATION", true),
			VerificationMaxAge:     getDurationEnv("EMAIL_CONFIRMATION_TOKEN_MAX_AGE", 600*time.Second),
			FrontendURL:            getEnv("FRONTEND_URL", "http://localhost:3000"),
			TokenStore:             getEnv("TOKEN_STORE", TokenStoreRedis),
			GoogleClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
			LoginRateLimit:         getIntEnv("LOGIN_RATE_LIMIT", 10),
			SignupRateLimit:        getIntEnv("SIGNUP_RATE_LIMIT", 20),
		},
		Email: EmailConfig{
			Provider:       getEnv("EMAIL_PROVIDER", defaultProvider),
			SMTPHost:       getEnv("SMTP_HOST", ""),
			SMTPPort:       getEnv("SMTP_PORT", "587"),
			SMTPUser:       getEnv("SMTP_USER", ""),
			SMTPPassword:   getEnv("SMTP_PASS", ""),
			FromEmail:      getEnv("DEFAULT_FROM_EMAIL", getEnv("SMTP_USER", "")),
			MailgunDomain:  getEnv("MAILGUN_DOMAIN", ""),
			MailgunAPIKey:  getEnv("MAILGUN_API_KEY", ""),
			MailgunBaseURL: getEnv("MAILGUN_BASE_URL", ""),
		},
		Notify: NotifyConfig{
			Workers:     getIntEnv("NOTIFY_WORKERS", 4),
			MaxAttempts: getIntEnv("NOTIFY_MAX_ATTEMPTS", 3),
			BaseDelay:   getDurationEnv("NOTIFY_RETRY_BASE_DELAY", 2*time.Second),
			QueueKey:    getEnv("NOTIFY_QUEUE_KEY", "notify:jobs"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that cannot be defaulted safely.
func (c *Config) Validate() error {
	if len(c.Auth.SecretKey) < 32 {
		return fmt.Errorf("SECRET_KEY must be at least 32 bytes, got %d", len(c.Auth.SecretKey))
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.Auth.VerificationMaxAge <= 0 {
		return errors.New("EMAIL_CONFIRMATION_TOKEN_MAX_AGE must be positive")
	}
	switch c.Auth.TokenStore {
	case TokenStoreRedis, TokenStorePostgres:
	default:
		return fmt.Errorf("unsupported TOKEN_STORE %q", c.Auth.TokenStore)
	}
	switch c.Email.Provider {
	case EmailProviderConsole, EmailProviderSMTP, EmailProviderMailgun:
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER %q", c.Email.Provider)
	}
	if c.Notify.MaxAttempts < 1 {
		return errors.New("NOTIFY_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)

	// Add channel_binding if configured (required for Neon DB)
	if c.ChannelBinding != "" {
		connStr += fmt.Sprintf(" channel_binding=%s", c.ChannelBinding)
	}

	return connStr
}

// Address returns Redis connection address (host:port)
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment reports whether the server runs outside production mode.
func (c *ServerConfig) IsDevelopment() bool {
	return !c.Production
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// getDurationEnv reads a whole number of seconds.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Split by comma and trim whitespace
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

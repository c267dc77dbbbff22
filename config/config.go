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
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	FrontendURL string
	LogLevel    string

	JWTSecret            string
	JWTExpiresIn         time.Duration
	RefreshTokenSecret   string
	RefreshTokenExpireIn time.Duration

	Mail       MailConfig
	Cloudinary CloudinaryConfig
	Admin      AdminConfig
}

type MailConfig struct {
	APIKey       string
	SecretKey    string
	From         string
	FromName     string
	ContactEmail string
}

// Enabled reports whether Mailjet credentials are present.
func (m MailConfig) Enabled() bool {
	return m.APIKey != "" && m.SecretKey != ""
}

type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

// AdminConfig holds the credentials used by the createadmin script.
type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

// Load reads the .env file when present and builds the Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	jwtTTL, err := ParseDuration(getenv("JWT_EXPIRES_IN", "7d"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	refreshTTL, err := ParseDuration(getenv("REFRESH_TOKEN_EXPIRES_IN", "30d"))
	if err != nil {
		return nil, fmt.Errorf("REFRESH_TOKEN_EXPIRES_IN: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	cfg := &Config{
		Port:        getenv("PORT", "5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		FrontendURL: strings.TrimRight(getenv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		JWTSecret:            jwtSecret,
		JWTExpiresIn:         jwtTTL,
		RefreshTokenSecret:   getenv("REFRESH_TOKEN_SECRET", jwtSecret+".refresh"),
		RefreshTokenExpireIn: refreshTTL,

		Mail: MailConfig{
			APIKey:       os.Getenv("MAILJET_API_KEY"),
			SecretKey:    os.Getenv("MAILJET_SECRET_KEY"),
			From:         getenv("EMAIL_FROM", "no-reply@stayinnhostels.com"),
			FromName:     getenv("EMAIL_FROM_NAME", "StayInn Hostels"),
			ContactEmail: os.Getenv("CONTACT_EMAIL"),
		},
		Cloudinary: CloudinaryConfig{
			URL:       os.Getenv("CLOUDINARY_URL"),
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Admin: AdminConfig{
			Email:    getenv("ADMIN_EMAIL", "admin@stayinnhostels.com"),
			Password: getenv("ADMIN_PASSWORD", "admin123456"),
			FullName: getenv("ADMIN_NAME", "Admin User"),
		},
	}
	return cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

// ParseDuration accepts Go durations plus a day suffix, e.g. "7d".
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated from environment variables at startup.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	MinIO    MinIOConfig
	Social   SocialConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host string
	Port string
	From string
	// Recipients of claim status alerts, comma-separated.
	AlertRecipients string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// SocialConfig carries the OAuth app credentials per platform plus the
// callback URL the dashboard registers with each provider.
type SocialConfig struct {
	InstagramClientID     string
	InstagramClientSecret string
	LinkedInClientID      string
	LinkedInClientSecret  string
	YouTubeClientID       string
	YouTubeClientSecret   string
	RedirectBaseURL       string
	// ProfileAPIBaseURL points at the metrics proxy that normalizes
	// platform profile responses.
	ProfileAPIBaseURL string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Trustboard API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "trustboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		SMTP: SMTPConfig{
			Host:            getEnv("SMTP_HOST", "localhost"),
			Port:            getEnv("SMTP_PORT", "1025"),
			From:            getEnv("SMTP_FROM", "alerts@trustboard.io"),
			AlertRecipients: getEnv("ALERT_RECIPIENTS", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "trustboard"),
			UseSSL:    false,
		},
		Social: SocialConfig{
			InstagramClientID:     getEnv("INSTAGRAM_CLIENT_ID", ""),
			InstagramClientSecret: getEnv("INSTAGRAM_CLIENT_SECRET", ""),
			LinkedInClientID:      getEnv("LINKEDIN_CLIENT_ID", ""),
			LinkedInClientSecret:  getEnv("LINKEDIN_CLIENT_SECRET", ""),
			YouTubeClientID:       getEnv("YOUTUBE_CLIENT_ID", ""),
			YouTubeClientSecret:   getEnv("YOUTUBE_CLIENT_SECRET", ""),
			RedirectBaseURL:       getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080/api/v1/social/callback"),
			ProfileAPIBaseURL:     getEnv("PROFILE_API_BASE_URL", "http://localhost:8081"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks config consistency.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}

		// OAuth credentials are optional; connection flows simply fail for
		// unconfigured platforms.
		if c.Social.InstagramClientID == "" && c.Social.LinkedInClientID == "" && c.Social.YouTubeClientID == "" {
			fmt.Println("WARNING: no social OAuth credentials set - platform connections will not work")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

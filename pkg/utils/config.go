package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	CORS     CORSConfig
	Booking  BookingConfig
	Client   ClientConfig
}

type AppConfig struct {
	Name  string
	Port  string
	Debug bool
	Log   LogConfig
}

// LogConfig controls the rotated log file. An empty Path logs to stdout only.
type LogConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

type SessionConfig struct {
	ExpiryHours int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type BookingConfig struct {
	Currency       string
	PaymentDueDays int
	TermsVersion   string
}

// ClientConfig configures pkg/hostelclient when it is built from the same .env.
type ClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.ExpiryHours) * time.Hour
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "hostel-management")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("LOG_MAX_SIZE_MB", 10)
	v.SetDefault("LOG_MAX_BACKUPS", 7)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("BOOKING_CURRENCY", "KES")
	v.SetDefault("BOOKING_PAYMENT_DUE_DAYS", 7)
	v.SetDefault("BOOKING_TERMS_VERSION", "2026-01")
	v.SetDefault("CLIENT_BASE_URL", "http://localhost:8080")
	v.SetDefault("CLIENT_TIMEOUT", "30s")
	v.SetDefault("CLIENT_CACHE_TTL", "5m")

	// .env is optional; the environment wins either way
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Port:  v.GetString("PORT"),
			Debug: v.GetBool("DEBUG"),
			Log: LogConfig{
				Path:       v.GetString("LOG_PATH"),
				MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
				MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
				MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
			},
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ORIGINS"),
		},
		Booking: BookingConfig{
			Currency:       v.GetString("BOOKING_CURRENCY"),
			PaymentDueDays: v.GetInt("BOOKING_PAYMENT_DUE_DAYS"),
			TermsVersion:   v.GetString("BOOKING_TERMS_VERSION"),
		},
		Client: ClientConfig{
			BaseURL:  v.GetString("CLIENT_BASE_URL"),
			Timeout:  v.GetDuration("CLIENT_TIMEOUT"),
			CacheTTL: v.GetDuration("CLIENT_CACHE_TTL"),
		},
	}

	return config, nil
}

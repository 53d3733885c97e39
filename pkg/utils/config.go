package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Email     EmailConfig
	OTP       OTPConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type EmailConfig struct {
	APIKey     string
	APIURL     string
	SenderName string
	From       string
}

type OTPConfig struct {
	Expiry             time.Duration
	ResetTokenExpiry   time.Duration
	VerificationExpiry time.Duration
}

type UploadConfig struct {
	Dir        string
	PublicPath string
	MaxBytes   int64
}

type RateLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// AdminConfig seeds the first admin account (see -create-admin).
type AdminConfig struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func LoadConfig() (*Config, error) {
	return loadConfig(".env")
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "food-delivery")
	v.SetDefault("PORT", "9090")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("BASE_URL", "http://localhost:9090")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY_HOURS", 7*24)
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 30*24)
	v.SetDefault("BREVO_API_URL", "https://api.brevo.com/v3/smtp/email")
	v.SetDefault("EMAIL_SENDER_NAME", "Food Delivery App")
	v.SetDefault("OTP_EXPIRY_MINUTES", 10)
	v.SetDefault("RESET_TOKEN_EXPIRY_MINUTES", 15)
	v.SetDefault("VERIFICATION_EXPIRY_HOURS", 24)
	v.SetDefault("UPLOAD_DIR", "uploads/images")
	v.SetDefault("UPLOAD_PUBLIC_PATH", "/uploads/images")
	v.SetDefault("MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("RATE_LIMIT_MAX_ATTEMPTS", 5)
	v.SetDefault("RATE_LIMIT_WINDOW_MINUTES", 15)

	// .env is optional, the environment always wins
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
			BaseURL: v.GetString("BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:  v.GetString("JWT_SECRET"),
			RefreshSecret: v.GetString("JWT_REFRESH_SECRET"),
			AccessExpiry:  time.Duration(v.GetInt("JWT_ACCESS_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiry: time.Duration(v.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		Email: EmailConfig{
			APIKey:     v.GetString("BREVO_API_KEY"),
			APIURL:     v.GetString("BREVO_API_URL"),
			SenderName: v.GetString("EMAIL_SENDER_NAME"),
			From:       v.GetString("EMAIL_FROM"),
		},
		OTP: OTPConfig{
			Expiry:             time.Duration(v.GetInt("OTP_EXPIRY_MINUTES")) * time.Minute,
			ResetTokenExpiry:   time.Duration(v.GetInt("RESET_TOKEN_EXPIRY_MINUTES")) * time.Minute,
			VerificationExpiry: time.Duration(v.GetInt("VERIFICATION_EXPIRY_HOURS")) * time.Hour,
		},
		Upload: UploadConfig{
			Dir:        v.GetString("UPLOAD_DIR"),
			PublicPath: v.GetString("UPLOAD_PUBLIC_PATH"),
			MaxBytes:   v.GetInt64("MAX_FILE_SIZE"),
		},
		RateLimit: RateLimitConfig{
			MaxAttempts: v.GetInt("RATE_LIMIT_MAX_ATTEMPTS"),
			Window:      time.Duration(v.GetInt("RATE_LIMIT_WINDOW_MINUTES")) * time.Minute,
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Phone:    v.GetString("ADMIN_PHONE"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return nil
}

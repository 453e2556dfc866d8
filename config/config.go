package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the API reads from the environment. It is
// resolved once in main and handed to the components that need it; nothing
// below the HTTP layer reads os.Getenv directly.
type Config struct {
	ServerPort string
	GinMode    string

	DB   DBConfig
	SMTP SMTPConfig

	SiteName          string
	Timezone          *time.Location
	DebugMode         bool
	SubmissionsRoot   string
	MaxFileSize       int64
	MaxFilesPerSubmit int
	NotificationEmail string

	JWTSecret      string
	JWTExpireHours int
}

type DBConfig struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
}

type SMTPConfig struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string // e.g. "Gallery Submissions <no-reply@your.org>"
	SkipTLSVerify bool
}

// Load resolves the configuration from environment variables, applying the
// same defaults the original deployment used.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    os.Getenv("GIN_MODE"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Database: os.Getenv("DB_DATABASE"),
			Username: os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		SMTP: SMTPConfig{
			Host:          os.Getenv("SMTP_HOST"),
			Port:          getEnvInt("SMTP_PORT", 587),
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			From:          os.Getenv("SMTP_FROM"),
			SkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
		},
		SiteName:          getEnv("SITE_NAME", "Gallery Art Submissions"),
		DebugMode:         os.Getenv("DEBUG_MODE") == "true",
		SubmissionsRoot:   getEnv("SUBMISSIONS_PATH", "./submissions"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", 5*1024*1024),
		MaxFilesPerSubmit: getEnvInt("MAX_FILES_PER_SUBMISSION", 10),
		NotificationEmail: os.Getenv("NOTIFICATION_EMAIL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpireHours:    getEnvInt("JWT_EXPIRE_HOURS", 24),
	}

	tzName := getEnv("TIMEZONE", "UTC")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = tz

	if cfg.DB.Database == "" || cfg.DB.Username == "" {
		return nil, fmt.Errorf("database configuration is incomplete: DB_DATABASE and DB_USERNAME are required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Authentication modes.
const (
	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

// Storage backends.
const (
	StorageNone     = "none"
	StorageFirebase = "firebase"
	StorageDrive    = "drive"
	StorageMinio    = "minio"
)

// Config is read once at startup and treated as immutable.
type Config struct {
	Env             string
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	MongoURI string
	DBName   string

	AuthMode            string
	FirebaseCredentials string
	JWTSecret           string

	RedisURL     string
	UserCacheTTL time.Duration

	RateLimitPerMinute int
	RateLimitBurst     int
	CORSAllowedOrigin  string

	StorageBackend        string
	FirebaseStorageBucket string
	DriveFolderID         string
	DriveCredentials      string
	MinioEndpoint         string
	MinioAccessKey        string
	MinioSecretKey        string
	MinioBucket           string
	MinioUseSSL           bool
	UploadMaxBytes        int64

	NotePlaceholderImage string

	SentryDSN         string
	SentryEnvironment string
}

// Load reads Config from the environment. Every missing required variable
// is reported in a single error.
func Load() (*Config, error) {
	cfg := &Config{}
	var missing []string

	require := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.MongoURI = require("MONGO_URI")
	cfg.DBName = require("DB_NAME")

	cfg.AuthMode = strings.ToLower(getEnvString("AUTH_MODE", AuthFirebase))
	switch cfg.AuthMode {
	case AuthFirebase:
		cfg.FirebaseCredentials = os.Getenv("FIREBASE_CREDENTIALS")
		if cfg.FirebaseCredentials == "" && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			missing = append(missing, "FIREBASE_CREDENTIALS")
		}
	case AuthJWT:
		cfg.JWTSecret = require("JWT_SECRET")
	default:
		return nil, fmt.Errorf("unsupported AUTH_MODE %q", cfg.AuthMode)
	}

	cfg.StorageBackend = strings.ToLower(getEnvString("STORAGE_BACKEND", StorageNone))
	switch cfg.StorageBackend {
	case StorageNone:
	case StorageFirebase:
		cfg.FirebaseStorageBucket = require("FIREBASE_STORAGE_BUCKET")
		if cfg.AuthMode != AuthFirebase {
			return nil, fmt.Errorf("STORAGE_BACKEND=firebase requires AUTH_MODE=firebase")
		}
	case StorageDrive:
		cfg.DriveFolderID = require("GOOGLE_DRIVE_FOLDER_ID")
		cfg.DriveCredentials = require("DRIVE_CREDENTIALS")
	case StorageMinio:
		cfg.MinioEndpoint = getEnvString("MINIO_ENDPOINT", "localhost:9000")
		cfg.MinioAccessKey = require("MINIO_ACCESS_KEY")
		cfg.MinioSecretKey = require("MINIO_SECRET_KEY")
		cfg.MinioBucket = getEnvString("MINIO_BUCKET", "notes")
		cfg.MinioUseSSL = getEnvBool("MINIO_USE_SSL", false)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.Env = getEnvString("ENV", "development")
	cfg.Port = getEnvString("PORT", "8080")
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", 10*time.Second)
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second)
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.UserCacheTTL = getEnvDuration("USER_CACHE_TTL", 5*time.Minute)
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", 120)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 120)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "*")
	cfg.UploadMaxBytes = getEnvInt64("UPLOAD_MAX_BYTES", 20<<20)
	cfg.NotePlaceholderImage = getEnvString("NOTE_PLACEHOLDER_IMAGE", "https://picsum.photos/200")
	cfg.SentryDSN = os.Getenv("SENTRY_DSN")
	cfg.SentryEnvironment = getEnvString("SENTRY_ENVIRONMENT", cfg.Env)

	return cfg, nil
}

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageConfig selects and configures the byte-storage backend.
// Backend is "fs" (local directory tree) or "s3" (MinIO-compatible).
type StorageConfig struct {
	Backend string
	FSRoot  string
	MinIO   MinIOConfig
}

// LegacyConfig points the migration tool at the legacy document store:
// a read-only database plus the root of its file tree.
type LegacyConfig struct {
	Database DatabaseConfig
	FileRoot string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	Storage  StorageConfig
	Legacy   LegacyConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: loadDatabase("DB"),
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "fs"),
			FSRoot:  getEnv("STORAGE_FS_ROOT", "./data/documents"),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
		Legacy: LegacyConfig{
			Database: loadDatabase("LEGACY_DB"),
			FileRoot: getEnv("LEGACY_FILE_ROOT", ""),
		},
	}
}

func loadDatabase(prefix string) DatabaseConfig {
	return DatabaseConfig{
		Host:               getEnv(prefix+"_HOST", ""),
		Port:               getEnv(prefix+"_PORT", "5432"),
		User:               getEnv(prefix+"_USER", ""),
		Password:           getEnv(prefix+"_PASSWORD", ""),
		Name:               getEnv(prefix+"_NAME", ""),
		SSLMode:            getEnv(prefix+"_SSLMODE", "disable"),
		MaxOpenConns:       getEnvInt(prefix+"_MAX_OPEN_CONNS", 10),
		MaxIdleConns:       getEnvInt(prefix+"_MAX_IDLE_CONNS", 5),
		ConnMaxLifetimeSec: getEnvInt(prefix+"_CONN_MAX_LIFETIME_SEC", 300),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

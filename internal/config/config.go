package config

import (
	"os"
	"strconv"
)

// BlobConfig holds object storage settings for the S3-compatible blob store
// that backs both the content database and uploaded photos.
type BlobConfig struct {
	Endpoint string
	// AccessKey/SecretKey authorize writes and deletes. They may be absent at
	// startup; missing credentials surface as storage errors on the first
	// write, not as a boot failure.
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the externally reachable prefix for stored objects
	// (e.g. a CDN host). When empty, URLs are built from Endpoint and Bucket.
	PublicBaseURL string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Blob    BlobConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Blob: BlobConfig{
			Endpoint:      getEnv("BLOB_ENDPOINT", ""),
			AccessKey:     getEnv("BLOB_ACCESS_KEY", ""),
			SecretKey:     getEnv("BLOB_SECRET_KEY", ""),
			Bucket:        getEnv("BLOB_BUCKET", "content"),
			UseSSL:        getEnvBool("BLOB_USE_SSL", false),
			PublicBaseURL: getEnv("BLOB_PUBLIC_BASE_URL", ""),
		},
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

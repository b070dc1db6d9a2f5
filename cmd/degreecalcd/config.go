package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	pkgconfig "github.com/degreecalc/degreecalc/pkg/config"
)

type config struct {
	Port            string
	DatabaseURL     string
	LogLevel        string
	LogFormat       string
	APIKey          string
	AllowedOrigins  []string
	Archive         pkgconfig.ArchiveConfig
	ResultCacheSize int
	StrictMarks     bool
}

// loadConfig reads configuration from the environment, loading a .env file
// first if one exists.
func loadConfig() config {
	_ = godotenv.Load() // .env is optional

	return config{
		Port:           envOrDefault("PORT", "8080"),
		DatabaseURL:    envOrDefault("DATABASE_URL", "postgres://localhost:5432/degreecalc?sslmode=disable"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		APIKey:         os.Getenv("API_KEY"),
		AllowedOrigins: parseOrigins(os.Getenv("ALLOWED_ORIGINS")),
		Archive: pkgconfig.ArchiveConfig{
			Backend: envOrDefault("ARCHIVE_BACKEND", "local"),
			Dir:     envOrDefault("ARCHIVE_DIR", "/tmp/degreecalc-reports"),
			S3: pkgconfig.S3Config{
				Bucket:    os.Getenv("S3_BUCKET"),
				Region:    os.Getenv("S3_REGION"),
				Endpoint:  os.Getenv("S3_ENDPOINT"),
				AccessKey: os.Getenv("S3_ACCESS_KEY"),
				SecretKey: os.Getenv("S3_SECRET_KEY"),
			},
			GCS: pkgconfig.GCSConfig{
				Bucket: os.Getenv("GCS_BUCKET"),
			},
		},
		ResultCacheSize: envInt("RESULT_CACHE_SIZE", 256),
		StrictMarks:     envBool("STRICT_MARKS", false),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return n
}

func envBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return b
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

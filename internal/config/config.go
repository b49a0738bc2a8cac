package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	ForgeAPIKey string

	// Template catalog
	TemplatesDir      string
	LoadConcurrency   int
	AnalysisCacheSize int

	// Upload limits
	MaxUploadBytes int64

	// Compliance statistics
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads an optional .env file, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		ForgeAPIKey: os.Getenv("FORGE_API_KEY"),

		TemplatesDir:      envOr("TEMPLATES_DIR", "templates"),
		LoadConcurrency:   envInt("LOAD_CONCURRENCY", 4),
		AnalysisCacheSize: envInt("ANALYSIS_CACHE_SIZE", 256),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 5242880), // 5MB

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = 4
	}
	if cfg.AnalysisCacheSize <= 0 {
		cfg.AnalysisCacheSize = 256
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5242880
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ForgeAPIKey == "" {
		return fmt.Errorf("FORGE_API_KEY is required")
	}
	if c.TemplatesDir == "" {
		return fmt.Errorf("TEMPLATES_DIR must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

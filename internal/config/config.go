package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration. Strategy selection (local vs S3
// storage, mock vs cloud analyzer) is driven by which values are present.
type Config struct {
	Port             string
	CORSAllowOrigin  []string
	DatabaseURL      string
	UploadDir        string
	AWSRegion        string
	S3Bucket         string
	S3Prefix         string
	AnalyzerEndpoint string
	AnalyzerKey      string
	Env              string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of a local env file for dev convenience.
	_ = godotenv.Load()

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Fatal("DATABASE_URL is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "3000"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      dbURL,
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		AWSRegion:        getEnv("AWS_REGION", ""),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Prefix:         getEnv("S3_PREFIX", "faxes"),
		AnalyzerEndpoint: getEnv("ANALYZER_ENDPOINT", ""),
		AnalyzerKey:      getEnv("ANALYZER_KEY", ""),
		Env:              env,
	}
}

// CloudStorageEnabled reports whether uploads should be mirrored to S3.
func (c Config) CloudStorageEnabled() bool {
	return strings.TrimSpace(c.S3Bucket) != ""
}

// CloudAnalyzerEnabled reports whether the external analysis service is
// configured; both the endpoint and the key are required.
func (c Config) CloudAnalyzerEnabled() bool {
	return strings.TrimSpace(c.AnalyzerEndpoint) != "" && strings.TrimSpace(c.AnalyzerKey) != ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

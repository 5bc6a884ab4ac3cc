package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	// Attorney document
	AttorneysFile  string // Local path, or object key when R2 is configured
	SeedSampleData bool
	// HTTP
	AllowedOrigins []string
	WriteRateLimit int // Mutating requests per minute per IP
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	// CLI
	APIBaseURL string
	Language   string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AttorneysFile:     getEnv("ATTORNEYS_FILE", "data/attorneys.json"),
		SeedSampleData:    getEnvBool("SEED_SAMPLE_DATA", false),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		WriteRateLimit:    getEnvInt("WRITE_RATE_LIMIT", 60),
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
		Language:          getEnv("ATTORNEY_LANG", "en"),
	}
}

// R2Enabled reports whether all R2 credentials are present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Warn().Str("key", key).Str("value", value).Int("default", defaultValue).Msg("Invalid integer value, using default")
		return defaultValue
	}
	return n
}

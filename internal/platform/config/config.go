package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// DefaultAccountID is the account credited by intake requests. The API
	// serves a single implicit account today, but every internal operation
	// threads an explicit account ID so the ledger contract generalizes.
	DefaultAccountID string

	// Extraction oracle (Gemini). Upload is disabled when the key is empty.
	GeminiAPIKey string
	GeminiModel  string

	// UploadRateLimit uses the limiter format, e.g. "30-M" for 30 per minute.
	UploadRateLimit string
	MaxUploadBytes  int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DEFAULT_ACCOUNT_ID", "primary")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("UPLOAD_RATE_LIMIT", "30-M")
	viper.SetDefault("MAX_UPLOAD_BYTES", int64(10<<20))

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DefaultAccountID = viper.GetString("DEFAULT_ACCOUNT_ID")

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Receipt image upload will be unavailable.")
	}

	cfg.UploadRateLimit = viper.GetString("UPLOAD_RATE_LIMIT")
	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")

	return cfg, nil
}

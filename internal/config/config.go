package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultGenAIModel = "gemini-2.5-flash-lite"
	DefaultEmbedModel = "text-embedding-004"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	GenAI    GenAIConfig
	Storage  StorageConfig
	Prompts  PromptConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	CORSOrigins    string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	// Retention is how long request logs are kept; zero disables pruning.
	Retention time.Duration
}

type QdrantConfig struct {
	Enabled    bool
	URL        string
	APIKey     string
	Collection string
}

type GenAIConfig struct {
	APIKey          string
	Model           string
	EmbedModel      string
	EmbedDimensions int
}

type StorageConfig struct {
	TempDir     string
	MaxFileSize int64
}

type PromptConfig struct {
	Dir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8000"),
			Env:            getEnv("ENV", "development"),
			CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", "60s"),
		},
		Database: DatabaseConfig{
			Enabled:   getEnvAsBool("DB_ENABLED", false),
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "5432"),
			User:      getEnv("DB_USER", "postgres"),
			Password:  getEnv("DB_PASSWORD", "postgres"),
			DBName:    getEnv("DB_NAME", "resume_analyzer"),
			Retention: getEnvAsDuration("AUDIT_RETENTION", "720h"),
		},
		Qdrant: QdrantConfig{
			Enabled:    getEnvAsBool("QDRANT_ENABLED", false),
			URL:        getEnv("QDRANT_URL", "http://localhost:6334"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "role_profiles"),
		},
		GenAI: GenAIConfig{
			APIKey:          getEnv("GENAI_API_KEY", getEnv("GEMINI_API_KEY", "")),
			Model:           getEnv("GENAI_MODEL", DefaultGenAIModel),
			EmbedModel:      getEnv("EMBED_MODEL", DefaultEmbedModel),
			EmbedDimensions: getEnvAsInt("EMBED_DIMENSIONS", 768),
		},
		Storage: StorageConfig{
			TempDir:     getEnv("TEMP_DIR", os.TempDir()),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Prompts: PromptConfig{
			Dir: getEnv("PROMPTS_DIR", "./prompts"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// AllowedOrigins returns the configured CORS origins with blanks removed.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.Server.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

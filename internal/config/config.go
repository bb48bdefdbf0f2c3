package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Embedding EmbeddingConfig
	Grammar   GrammarConfig
	Catalog   CatalogConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Storage   StorageConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// LogConfig drives the zap logger. Debug forces the debug level whatever
// Level says.
type LogConfig struct {
	JSON   bool
	Debug  bool
	Level  string
	Caller bool
	Output string
}

// EmbeddingConfig selects the embedding provider once at process start.
type EmbeddingConfig struct {
	Provider string

	TFIDFCorpusPath string

	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiModel      string
	GeminiDimensions int

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	OpenAIDimensions int
}

type GrammarConfig struct {
	Enabled       bool
	URL           string
	Language      string
	Timeout       time.Duration
	RatePerMinute int
}

type CatalogConfig struct {
	Enabled bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type StorageConfig struct {
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency       int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	PollInterval      time.Duration
}

// Load reads configuration from the environment, falling back to a .env file
// in the working directory when one exists.
func Load() *Config {
	// Missing .env is fine; the process environment is authoritative.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			JSON:   getEnvAsBool("LOG_JSON", false),
			Debug:  getEnvAsBool("LOG_DEBUG", false),
			Level:  getEnv("LOG_LEVEL", "info"),
			Caller: getEnvAsBool("LOG_CALLER", false),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
		Embedding: EmbeddingConfig{
			Provider:         strings.ToLower(getEnv("EMBEDDING_PROVIDER", "tfidf")),
			TFIDFCorpusPath:  getEnv("TFIDF_CORPUS_PATH", ""),
			GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
			GeminiBaseURL:    getEnv("GEMINI_BASE_URL", ""),
			GeminiModel:      getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			GeminiDimensions: getEnvAsInt("GEMINI_EMBED_DIMENSIONS", 768),
			OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
			OpenAIModel:      getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
			OpenAIDimensions: getEnvAsInt("OPENAI_EMBED_DIMENSIONS", 1536),
		},
		Grammar: GrammarConfig{
			Enabled:       getEnvAsBool("GRAMMAR_ENABLED", false),
			URL:           getEnv("LANGUAGETOOL_URL", "https://api.languagetool.org/v2/check"),
			Language:      getEnv("GRAMMAR_LANGUAGE", "en-US"),
			Timeout:       getEnvAsDuration("GRAMMAR_TIMEOUT", "10s"),
			RatePerMinute: getEnvAsInt("GRAMMAR_RATE_PER_MINUTE", 20),
		},
		Catalog: CatalogConfig{
			Enabled: getEnvAsBool("CATALOG_ENABLED", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_radar"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6334"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "job_descriptions"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:       getEnvAsInt("WORKER_CONCURRENCY", 2),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
			PollInterval:      getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
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

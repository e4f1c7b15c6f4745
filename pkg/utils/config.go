package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	// chat platform
	TelegramToken string

	// inference service
	OpenAIKey     string
	OpenAIBaseURL string // optional, for self-hosted OpenAI-compatible gateways
	OpenAIModel   string
	ExtractTime   time.Duration

	// catalog API
	HTTPAddr   string
	FeedAddr   string
	APIBaseURL string // where the bot posts listings

	// storage
	Backend      string // "sqlite" or "file"
	SnapshotPath string // file backend snapshot
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using system env vars")
	}

	return Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
		ExtractTime:   time.Duration(getEnvInt("EXTRACT_TIMEOUT_SECONDS", 30)) * time.Second,

		HTTPAddr:   getEnv("HTTP_ADDR", ":5000"),
		FeedAddr:   getEnv("FEED_ADDR", ":7071"),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),

		Backend:      getEnv("CATALOG_BACKEND", "sqlite"),
		SnapshotPath: getEnv("CATALOG_SNAPSHOT", "products.json"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
)

type AppConfig struct {
	Addr         string
	DatabasePath string
	TweetFile    string

	EmbedderProvider  string
	EmbedderModelDir  string
	EmbedderModelName string
	EmbedderBaseURL   string
	EmbedderDimension int
	OpenAIAPIKey      string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func GetAppConfig() AppConfig {
	return AppConfig{
		Addr:         getEnv("HTTP_ADDR", "127.0.0.1:8000"),
		DatabasePath: getEnv("DATABASE_PATH", "entries.db"),
		TweetFile:    getEnv("TWEET_FILE", "17616581.tweets.jl"),

		EmbedderProvider:  getEnv("EMBEDDER_PROVIDER", "hugot"),
		EmbedderModelDir:  getEnv("EMBEDDER_MODEL_DIR", "./models"),
		EmbedderModelName: getEnv("EMBEDDER_MODEL", ""),
		EmbedderBaseURL:   getEnv("EMBEDDER_BASE_URL", ""),
		EmbedderDimension: getEnvInt("EMBEDDER_DIMENSION", 384),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
	}
}

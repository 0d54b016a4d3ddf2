package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Completion provider (Gemini)
	GeminiAPIKey         string
	GeminiModel          string
	GeminiConcurrentReqs int

	// Speech provider (Deepgram)
	DeepgramAPIKey string
	DeepgramVoice  string

	// Redis (optional; enables audio cache and session event feed)
	RedisURL         string
	AudioCacheTTLMin int

	// Client origin allowed by CORS
	AllowedOrigin string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Env:                  getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:         mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		DeepgramAPIKey:       mustGetEnv("DEEPGRAM_API_KEY"),
		DeepgramVoice:        getEnvOrDefault("DEEPGRAM_VOICE", "aura-athena-en"),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		AudioCacheTTLMin:     getEnvAsIntOrDefault("AUDIO_CACHE_TTL_MINUTES", 60),
		AllowedOrigin:        getEnvOrDefault("ALLOWED_ORIGIN", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

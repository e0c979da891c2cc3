package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application-wide configuration populated from environment variables.
type Config struct {
	Port            string
	OpenAIAPIKey    string
	ChatModel       string
	TTSModel        string
	DefaultVoice    string
	FetchTimeout    time.Duration
	GenerateTimeout time.Duration
	MaxContentChars int
	MinContentChars int
}

// Load reads environment variables and returns Config with defaults applied.
func Load() *Config {
	// Load .env from the working directory if present; absence is fine.
	_ = godotenv.Load()
	return &Config{
		Port:            getEnv("PORT", "8080"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		TTSModel:        getEnv("OPENAI_TTS_MODEL", "tts-1"),
		DefaultVoice:    getEnv("DEFAULT_VOICE", "alloy"),
		FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		GenerateTimeout: getEnvDuration("GENERATE_TIMEOUT", 120*time.Second),
		MaxContentChars: getEnvInt("MAX_CONTENT_CHARS", 40000),
		MinContentChars: getEnvInt("MIN_CONTENT_CHARS", 50),
	}
}

// Validate checks configuration required before serving any request.
// A missing credential must fail at startup, not deep inside a request path.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	APIBaseURL     string
	LogLevel       string
	LogFormat      string
	LogFile        string
	RequestTimeout time.Duration
	// TokenFile stores the JWT between runs.
	TokenFile string
	// HistoryDBPath is the local attempt cache (sqlite).
	HistoryDBPath string
	// AudioPlayerCmd is the external command used to stream audio clips.
	AudioPlayerCmd string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	dataDir := getEnv("QUIZ_DATA_DIR", defaultDataDir())

	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:3000/api"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		LogFile:        getEnv("LOG_FILE", filepath.Join(dataDir, "quiz.log")),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		TokenFile:      getEnv("TOKEN_FILE", filepath.Join(dataDir, "token")),
		HistoryDBPath:  getEnv("HISTORY_DB_PATH", filepath.Join(dataDir, "history.db")),
		AudioPlayerCmd: getEnv("AUDIO_PLAYER_CMD", "mpv --no-video --really-quiet"),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".quizgo")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

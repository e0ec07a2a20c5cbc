package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL string
	RedisURL    string

	// PositionFeedURL points at the external position data provider; when
	// empty, PositionFile is tried instead.
	PositionFeedURL string
	PositionFile    string

	HTTPPort         int
	APIKey           string
	RefreshPollSecs  int
	ReportTTLSecs    int
	NarrativeTTLSecs int

	TelegramBotToken string

	OpenAIAPIKey string
	OpenAIModel  string

	SSHPort        int
	SSHHostKeyPath string
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		PositionFeedURL:  strings.TrimSpace(os.Getenv("POSITION_FEED_URL")),
		PositionFile:     strings.TrimSpace(os.Getenv("POSITION_FILE")),
		APIKey:           strings.TrimSpace(os.Getenv("API_KEY")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, positions will not be persisted")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.PositionFeedURL == "" && cfg.PositionFile == "" {
		log.Println("Warning: neither POSITION_FEED_URL nor POSITION_FILE set")
	}

	cfg.HTTPPort = intEnv("HTTP_PORT", 8080)
	cfg.RefreshPollSecs = intEnv("REFRESH_POLL_SECS", 300)
	cfg.ReportTTLSecs = intEnv("REPORT_TTL_SECS", 300)
	cfg.NarrativeTTLSecs = intEnv("NARRATIVE_TTL_SECS", 3600)

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, narratives will be disabled")
	}
	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.SSHPort = intEnv("SSH_PORT", 2222)
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/radar_ed25519"
	}

	return cfg
}

func intEnv(name string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", name, v, fallback)
		return fallback
	}
	return n
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("POSITION_FEED_URL", "")
	t.Setenv("POSITION_FILE", "")
	t.Setenv("REFRESH_POLL_SECS", "")
	t.Setenv("OPENAI_MODEL", "")

	cfg := Load()
	if cfg.RedisURL != "localhost:6379" {
		t.Fatalf("expected default redis url, got %s", cfg.RedisURL)
	}
	if cfg.HTTPPort != 8080 || cfg.SSHPort != 2222 {
		t.Fatalf("unexpected default ports: %d %d", cfg.HTTPPort, cfg.SSHPort)
	}
	if cfg.RefreshPollSecs != 300 {
		t.Fatalf("expected default poll secs 300, got %d", cfg.RefreshPollSecs)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %s", cfg.OpenAIModel)
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("POSITION_FEED_URL", "https://example.com/positions.json")
	t.Setenv("REFRESH_POLL_SECS", "30")
	t.Setenv("API_KEY", "sekret")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://example" || cfg.RedisURL != "redis:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.PositionFeedURL != "https://example.com/positions.json" {
		t.Fatalf("unexpected feed url: %s", cfg.PositionFeedURL)
	}
	if cfg.RefreshPollSecs != 30 {
		t.Fatalf("expected poll secs 30, got %d", cfg.RefreshPollSecs)
	}
	if cfg.APIKey != "sekret" {
		t.Fatalf("expected api key to load, got %q", cfg.APIKey)
	}

	t.Setenv("REFRESH_POLL_SECS", "bad")
	cfg = Load()
	if cfg.RefreshPollSecs != 300 {
		t.Fatalf("invalid poll secs should fall back to default, got %d", cfg.RefreshPollSecs)
	}
}

package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USERNAME", "league")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_DATABASE", "tracker")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	t.Setenv("RIOT_DEFAULT_REGION", "euw")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DiscordToken != "token" || cfg.RiotAPIKey != "RGAPI-test" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DefaultRegion != "euw" {
		t.Errorf("DefaultRegion = %q, want euw", cfg.DefaultRegion)
	}
}

func TestLoadDefaultRegion(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RIOT_DEFAULT_REGION", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultRegion != "na" {
		t.Errorf("DefaultRegion = %q, want na", cfg.DefaultRegion)
	}
}

func TestLoadWithoutRiotKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RIOT_API_KEY", "")

	if _, err := Load(); err != nil {
		t.Fatalf("Load without RIOT_API_KEY: %v", err)
	}
}

func TestLoadMissingRequiredVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded without DISCORD_TOKEN")
	}
	if !strings.Contains(err.Error(), "DISCORD_TOKEN") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken   string
	DiscordOwnerID string
	RiotAPIKey     string
	DefaultRegion  string
	DBHost         string
	DBPort         string
	DBUsername     string
	DBPassword     string
	DBDatabase     string
}

func Load() (*Config, error) {
	// A missing .env file is fine when variables come from the environment.
	_ = godotenv.Load()

	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordOwnerID: os.Getenv("DISCORD_OWNER_ID"),
		RiotAPIKey:     os.Getenv("RIOT_API_KEY"),
		DefaultRegion:  os.Getenv("RIOT_DEFAULT_REGION"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUsername:     os.Getenv("DB_USERNAME"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBDatabase:     os.Getenv("DB_DATABASE"),
	}

	if config.DefaultRegion == "" {
		config.DefaultRegion = "na"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	// RIOT_API_KEY is deliberately not required: the bot starts without one,
	// suspends polling and tells the owner to supply a key with /riot-key.
	requiredVars := map[string]*string{
		"DISCORD_TOKEN": &c.DiscordToken,
		"DB_HOST":       &c.DBHost,
		"DB_PORT":       &c.DBPort,
		"DB_USERNAME":   &c.DBUsername,
		"DB_PASSWORD":   &c.DBPassword,
		"DB_DATABASE":   &c.DBDatabase,
	}

	var missingVars []string

	for envVar, value := range requiredVars {
		if *value == "" {
			missingVars = append(missingVars, envVar)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Token     string
	GuildID   string
	PubKeyHex string
	Port      string
}

// loadConfig reads settings from a local .env file if present, then the
// environment, then Secret Manager overrides. Only the bot token is required.
func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded", "err", err)
	}

	cfg := &Config{
		Token:     os.Getenv("BOT_TOKEN"),
		GuildID:   os.Getenv("GUILD_ID"),
		PubKeyHex: os.Getenv("INTERACTIONS_PUBKEY"),
		Port:      os.Getenv("PORT"),
	}
	if err := cfg.loadSecrets(); err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, errors.New("BOT_TOKEN not set")
	}
	return cfg, nil
}

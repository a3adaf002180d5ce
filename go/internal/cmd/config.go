package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds the optional yaml configuration. Environment variables
// override what the file sets; everything has a usable default so the
// server boots with no config at all.
type Config struct {
	Game struct {
		QuestionSeconds int `yaml:"question_seconds"`
	} `yaml:"game"`
	NATS struct {
		URL           string `yaml:"url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) *Config {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("no config file, using defaults")
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to parse config, using defaults")
		config = Config{}
	}

	config.Game.QuestionSeconds = getEnvAsInt("QUESTION_SECONDS", config.Game.QuestionSeconds)
	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)
	config.NATS.SubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", config.NATS.SubjectPrefix)

	return &config
}

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Bot      Bot      `yaml:"bot"`
	Sessions Sessions `yaml:"sessions"`
	Events   Events   `yaml:"events"`
}

type Bot struct {
	Difficulty string `yaml:"difficulty" env:"BOT_DIFFICULTY" env-default:"hard"`
}

type Sessions struct {
	TTL             time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"30m"`
	CleanupInterval time.Duration `yaml:"cleanup-interval" env:"SESSION_CLEANUP_INTERVAL" env-default:"5m"`
	KeepFinished    int           `yaml:"keep-finished" env:"SESSION_KEEP_FINISHED" env-default:"50"`
}

type Events struct {
	PollInterval time.Duration `yaml:"poll-interval" env:"EVENTS_POLL_INTERVAL" env-default:"500ms"`
	Heartbeat    time.Duration `yaml:"heartbeat" env:"EVENTS_HEARTBEAT" env-default:"15s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

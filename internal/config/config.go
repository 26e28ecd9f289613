package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	xdgConfigFile = "tictactoe/config.yml"

	GameModeAI  = "ai"
	GameModePVP = "pvp"
)

type Config struct {
	LogLevel    string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	GameMode    string `yaml:"game-mode" env:"TICTACTOE_GAME_MODE" env-default:"ai"`
	FirstPlayer string `yaml:"first-player" env:"TICTACTOE_FIRST_PLAYER" env-default:"X"`
	AI          AI     `yaml:"ai"`
	Redis       Redis  `yaml:"redis"`
}

type AI struct {
	Mode string `yaml:"mode" env:"TICTACTOE_AI_MODE" env-default:"exhaustive"`
	Mark string `yaml:"mark" env:"TICTACTOE_AI_MARK" env-default:"O"`
	Seed uint64 `yaml:"seed" env:"TICTACTOE_AI_SEED" env-default:"0"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"TICTACTOE_REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in the config file at path. An empty
// path falls back to the XDG config directory, and then to the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	path = locate(path)
	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return config, nil
}

// locate returns path if it exists, otherwise the XDG config file if any.
func locate(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		} else if !errors.Is(err, os.ErrNotExist) {
			return path
		}
	}

	found, err := xdg.SearchConfigFile(xdgConfigFile)
	if err != nil {
		return ""
	}

	return found
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

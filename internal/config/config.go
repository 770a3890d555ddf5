package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

var ErrUnknownDriver = errors.New("unknown scoreboard driver")

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	HumanMark  string     `yaml:"human-mark" env:"TTT_HUMAN_MARK" env-default:"X" env-description:"mark played by the human, X moves first"`
	Scoring    string     `yaml:"scoring" env:"TTT_SCORING" env-default:"depth" env-description:"depth or fixed terminal scoring"`
	NoColor    bool       `yaml:"no-color" env:"TTT_NO_COLOR" env-description:"plain board output"`
	Scoreboard Scoreboard `yaml:"scoreboard"`
}

type Scoreboard struct {
	Driver     string `yaml:"driver" env:"TTT_SCOREBOARD_DRIVER" env-default:"sqlite" env-description:"sqlite or redis"`
	SQLitePath string `yaml:"sqlite-path" env:"TTT_SQLITE_PATH" env-default:"tictactoe.db"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"TTT_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TTT_REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations from the yml file at path, falling back to
// environment variables and defaults when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Scoreboard.Driver {
	case DriverSQLite, DriverRedis:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, that.Scoreboard.Driver)
	}
}

// Usage - describes every environment variable, for the -h output.
func Usage() string {
	description, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}

	return description
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

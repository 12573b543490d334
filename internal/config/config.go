package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
)

const (
	BackendNats   = "nats"
	BackendMemory = "memory"
)

var validate = validator.New() //nolint:gochecknoglobals

type Config struct {
	HttpPort int `env:"HTTP_PORT" envDefault:"8180" validate:"min=1,max=65535"` //nolint:stylecheck

	BackendName string `env:"BACKEND"   envDefault:"nats" validate:"oneof=nats memory"`
	NATSURL     string `env:"NATS_URL"`
	Loglevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`

	EnableElectronicVoting bool `env:"ENABLE_ELECTRONIC_VOTING" envDefault:"false"`
}

// Load reads the config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c Config) NatsURL() string {
	if c.NATSURL == "" {
		return nats.DefaultURL
	}

	return c.NATSURL
}

func (c Config) HTTPPort() int {
	return c.HttpPort
}

func (c Config) LogLevel() string {
	return c.Loglevel
}

func (c Config) Backend() string {
	return c.BackendName
}

func (c Config) ElectronicVotingEnabled() bool {
	return c.EnableElectronicVoting
}

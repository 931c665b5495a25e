// Package config loads the client configuration from SKILLSWAP_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	apperrors "github.com/octabyte/skillswap-client/errors"
)

const Prefix = "SKILLSWAP_"

type Config struct {
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:5000" validate:"required,http_url"`
	AppURL     string        `env:"APP_URL" validate:"omitempty,http_url"`
	Timeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s" validate:"gte=0"`

	Storage StorageConfig `envPrefix:"STORAGE_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`

	Callback CallbackConfig `envPrefix:"CALLBACK_"`

	LoginPath   string `env:"LOGIN_PATH" envDefault:"/login" validate:"required,startswith=/"`
	DefaultPath string `env:"DEFAULT_PATH" envDefault:"/dashboard" validate:"required,startswith=/"`

	Log  LogConfig  `envPrefix:"LOG_"`
	Otel OtelConfig `envPrefix:"OTEL_"`
	AMQP AMQPConfig `envPrefix:"AMQP_"`
}

type StorageConfig struct {
	Backend string `env:"BACKEND" envDefault:"file" validate:"oneof=memory file redis"`
	// Path of the session document for the file backend. Defaults to
	// $XDG_CONFIG_HOME/skillswap/session.json.
	Path string `env:"PATH"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0" validate:"gte=0"`
	Prefix   string `env:"PREFIX" envDefault:"skillswap:"`
}

type CallbackConfig struct {
	Addr         string        `env:"ADDR" envDefault:"127.0.0.1:8765" validate:"required,hostname_port"`
	Path         string        `env:"PATH" envDefault:"/auth/google/callback" validate:"required,startswith=/"`
	SuccessDelay time.Duration `env:"SUCCESS_DELAY" envDefault:"2s" validate:"gte=0"`
	FailureDelay time.Duration `env:"FAILURE_DELAY" envDefault:"3s" validate:"gte=0"`
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Env         string `env:"ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"skillswap-client"`
}

type OtelConfig struct {
	Enabled    bool              `env:"ENABLED" envDefault:"false"`
	Endpoint   string            `env:"ENDPOINT" validate:"required_if=Enabled true"`
	Headers    map[string]string `env:"HEADERS"`
	SampleRate float64           `env:"SAMPLE_RATE" envDefault:"1" validate:"gte=0,lte=1"`
}

// AMQPConfig enables publishing of session events when URI is set.
type AMQPConfig struct {
	URI   string `env:"URI" validate:"omitempty,url"`
	Queue string `env:"QUEUE" envDefault:"skillswap.session-events"`
	// QueueType is the x-queue-type the queue is declared with. Quorum and
	// stream queues are always durable.
	QueueType string `env:"QUEUE_TYPE" envDefault:"classic" validate:"oneof=classic quorum stream"`
}

// Load reads the given .env files (missing files are ignored, existing
// variables win) and parses the environment.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return nil, apperrors.Wrapf(err, "load %s", file)
		}
	}
	return Parse(env.Options{})
}

// Parse reads the configuration with the SKILLSWAP_ prefix. opts.Environment
// may replace the process environment.
func Parse(opts env.Options) (*Config, error) {
	opts.Prefix = Prefix

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, apperrors.Wrapf(err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return apperrors.Wrapf(err, "invalid configuration")
	}
	return nil
}

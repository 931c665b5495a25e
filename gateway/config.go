package gateway

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/octabyte/skillswap-client/enums"
)

type Config struct {
	BaseURL string        `validate:"required,http_url"`
	Timeout time.Duration `validate:"gte=0"`
	// LoginPath is where the user is sent when the session cannot be
	// recovered.
	LoginPath   string `validate:"required,startswith=/"`
	ServiceName string
	UserAgent   string
}

func (cfg *Config) setDefaults() {
	if cfg.LoginPath == "" {
		cfg.LoginPath = enums.RouteLogin
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "skillswap-client"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "skillswap-client"
	}
}

func (cfg *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}

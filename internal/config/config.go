package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultAPIURL = "http://localhost:8000"

type Config struct {
	// APIURL is the base URL of the National Activity Indicator backend.
	// All resource paths are relative to it.
	APIURL string `env:"NAI_API_URL" envDefault:"http://localhost:8000"`

	// PollInterval is how often the dashboard pollers re-fetch.
	PollInterval time.Duration `env:"NAI_POLL_INTERVAL" envDefault:"30s"`

	// RequestTimeout bounds each individual backend request.
	RequestTimeout time.Duration `env:"NAI_REQUEST_TIMEOUT" envDefault:"10s"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}

package config

import (
	"github.com/jsphweid/mididiff/constants"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	OutDir   string `envconfig:"OUT_DIR" default:"./out"`
	Width    int    `default:"1500"`
	Height   int    `default:"1200"`
	Addr     string `default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads MIDIDIFF_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(constants.EnvPrefix, &cfg); err != nil {
		return cfg, errors.Wrap(err, "could not process environment")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, errors.Errorf("image size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

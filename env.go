package mylogger

import (
	"github.com/caarlos0/env/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// envLevel reports the level named by LOG_LEVEL. ok is false when the
// variable is unset or empty.
func envLevel() (level logrus.Level, ok bool, err error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return 0, false, errors.Wrap(err, "mylogger: read environment")
	}
	if cfg.Level == "" {
		return 0, false, nil
	}
	level, err = ParseLevel(cfg.Level)
	if err != nil {
		return 0, false, errors.WithMessage(err, EnvLevel)
	}
	return level, true, nil
}

// resolveLevel applies the override policy: LOG_LEVEL, when set, always wins
// over the configured level.
func resolveLevel(c *config) (logrus.Level, error) {
	if level, ok, err := envLevel(); err != nil || ok {
		return level, err
	}
	if c.levelName != "" {
		return ParseLevel(c.levelName)
	}
	return c.level, nil
}

package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings that may come from the environment. Unset
// variables leave their field empty.
type Env struct {
	Format    string `env:"STACKAGG_FORMAT"`
	Workers   int    `env:"STACKAGG_WORKERS"`
	LogLevel  string `env:"STACKAGG_LOG_LEVEL"`
	LogFormat string `env:"STACKAGG_LOG_FORMAT"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return e, nil
}

// ParseEnv reads Env from environ, a KEY=value list as returned by
// os.Environ.
func ParseEnv(environ []string) (Env, error) {
	e, err := env.ParseAsWithOptions[Env](env.Options{Environment: env.ToMap(environ)})
	if err != nil {
		return Env{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return e, nil
}

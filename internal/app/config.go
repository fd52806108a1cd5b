package app

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/stackagg/internal/config"
	"github.com/specialistvlad/stackagg/internal/render"
)

// ErrInvalidConfig marks configuration problems, as opposed to failures
// while running.
var ErrInvalidConfig = errors.New("invalid configuration")

// Defaults applied to fields left unset by flags, environment and file.
const (
	DefaultFormat    = render.FormatText
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultWorkers   = 1
)

// Config holds all the necessary configuration for an App instance to run.
// Empty fields are unset and get filled from the config file, then from the
// defaults.
type Config struct {
	Inputs     []string `flag:"input" validate:"dive,required"` // report files, directories, or "-" for stdin
	ConfigPath string   // optional .hcl run configuration

	Format      string `flag:"format" validate:"omitempty,oneof=text json"`
	OutputPath  string
	MetricsPath string // optional Prometheus textfile
	Workers     int    `flag:"workers" validate:"gte=0"`

	LogLevel  string `flag:"log-level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `flag:"log-format" validate:"omitempty,oneof=text json"`
}

// configValidate reports field errors under their command-line names.
var configValidate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}()

// NewConfig validates the fields that are set. Inputs may come from the
// config file, so at least one of Inputs and ConfigPath is required.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Inputs) == 0 && cfg.ConfigPath == "" {
		return nil, fmt.Errorf("%w: no inputs given and no config file to read them from", ErrInvalidConfig)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WithFile returns a copy of c with unset fields taken from the file model.
func (c Config) WithFile(m *config.Model) Config {
	if m == nil {
		return c
	}
	if len(c.Inputs) == 0 {
		c.Inputs = append([]string(nil), m.Inputs...)
	}
	if c.Format == "" {
		c.Format = m.Output.Format
	}
	if c.OutputPath == "" {
		c.OutputPath = m.Output.File
	}
	if c.MetricsPath == "" {
		c.MetricsPath = m.MetricsFile
	}
	if c.Workers == 0 {
		c.Workers = m.Workers
	}
	if c.LogLevel == "" {
		c.LogLevel = m.Logging.Level
	}
	if c.LogFormat == "" {
		c.LogFormat = m.Logging.Format
	}
	return c
}

// WithDefaults returns a copy of c with every remaining unset field given
// its default.
func (c Config) WithDefaults() Config {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	return c
}

func (c Config) validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, describe(fieldErrs[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be one of %s", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must not be negative, got %v", fe.Field(), fe.Value())
	case "required":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	default:
		return fe.Error()
	}
}

// resolve merges the file model, applies defaults and checks the result is
// runnable.
func (c Config) resolve(m *config.Model) (*Config, error) {
	merged := c.WithFile(m).WithDefaults()
	if err := merged.validate(); err != nil {
		return nil, err
	}
	if len(merged.Inputs) == 0 {
		return nil, fmt.Errorf("%w: no inputs: pass report paths or set inputs in %s", ErrInvalidConfig, c.ConfigPath)
	}
	return &merged, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", s)
	}
	return level, nil
}

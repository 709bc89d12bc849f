package faultsim

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for configuration that fails validation.
var ErrInvalidConfig = errors.New("faultsim: invalid config")

// ErrSharedRandomSource is returned when a TrialRunner is given a RandomSource.
var ErrSharedRandomSource = errors.New("faultsim: trials cannot share a RandomSource")

var configValidate = validator.New()

/*
Config holds the construction-time parameters of a session and of the trial
runner. Nothing here can be changed on a running session; the control
messages are the only runtime surface.
*/
type Config struct {
	// Probability that an armed session fires on a given gate call.
	Probability float64 `yaml:"probability" validate:"gte=0,lte=1"`
	// Policy selects the ErrorModel.
	Policy ErrorPolicy `yaml:"policy" validate:"oneof=simple compound"`
	// Seed for the RandomSource. Zero seeds from the clock and is therefore
	// not reproducible; use a non-zero seed to replay a run.
	Seed uint64 `yaml:"seed"`
	// Workers bounds the number of trials run at once.
	Workers int `yaml:"workers" validate:"gte=1,lte=1024"`
	// Trials is the default number of runs for a TrialRunner.
	Trials int `yaml:"trials" validate:"gte=0"`
}

func NewConfig() *Config {
	return &Config{
		Probability: 0.05,
		Policy:      PolicySimple,
		Workers:     4,
		Trials:      100,
	}
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// validateSession checks only what a single session uses.
func (c *Config) validateSession() error {
	if err := configValidate.StructPartial(c, "Probability", "Policy"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

/*
LoadConfig reads a YAML file on top of the defaults of NewConfig, so a file
only needs the keys it wants to change. The result is validated.
*/
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("faultsim: read config %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig is LoadConfig for in-memory YAML.
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("faultsim: parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

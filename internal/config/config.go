// Package config loads training settings from the environment.
//
// Values come from SEQNET_* environment variables. A .env file in the
// working directory or up to four of its parents is loaded first; variables
// already set in the process environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variable names.
const (
	EnvHiddenSize     = "SEQNET_HIDDEN_SIZE"
	EnvSequenceLength = "SEQNET_SEQUENCE_LENGTH"
	EnvSamples        = "SEQNET_SAMPLES"
	EnvEpochs         = "SEQNET_EPOCHS"
	EnvLearningRate   = "SEQNET_LEARNING_RATE"
	EnvLRDecay        = "SEQNET_LR_DECAY"
	EnvLRDecayEvery   = "SEQNET_LR_DECAY_EVERY"
	EnvLogEvery       = "SEQNET_LOG_EVERY"
	EnvCheckpoint     = "SEQNET_CHECKPOINT"
	EnvLogLevel       = "SEQNET_LOG_LEVEL"
	EnvSeed           = "SEQNET_SEED"
)

// ErrInvalidValue is returned by Validate for a setting outside its range.
var ErrInvalidValue = errors.New("config: invalid value")

// Config holds the settings of a sequence training run.
type Config struct {
	HiddenSize     int          // Recurrent hidden width
	SequenceLength int          // Timesteps per sample
	Samples        int          // Number of training samples
	Epochs         int          // Passes over the training set
	LearningRate   float64      // Initial learning rate
	LRDecay        float64      // Multiplier applied every LRDecayEvery epochs
	LRDecayEvery   int          // Decay period in epochs; 0 keeps the rate constant
	LogEvery       int          // Log progress every N epochs
	Checkpoint     string       // Path of the best-model checkpoint
	LogLevel       logrus.Level // Logger verbosity
	Seed           int64        // RNG seed; 0 seeds from the clock
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HiddenSize:     20,
		SequenceLength: 5,
		Samples:        100,
		Epochs:         2000,
		LearningRate:   0.0006,
		LRDecay:        1,
		LRDecayEvery:   0,
		LogEvery:       20,
		Checkpoint:     "best_model.json",
		LogLevel:       logrus.InfoLevel,
		Seed:           0,
	}
}

// Load reads an optional .env file, then overrides Default with any
// SEQNET_* variables that are set.
func Load() (Config, error) {
	_ = loadEnvFile()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, which is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	p := parser{lookup: lookup}

	p.positiveInt(EnvHiddenSize, &c.HiddenSize)
	p.positiveInt(EnvSequenceLength, &c.SequenceLength)
	p.positiveInt(EnvSamples, &c.Samples)
	p.positiveInt(EnvEpochs, &c.Epochs)
	p.positiveFloat(EnvLearningRate, &c.LearningRate)
	p.positiveFloat(EnvLRDecay, &c.LRDecay)
	p.nonNegativeInt(EnvLRDecayEvery, &c.LRDecayEvery)
	p.positiveInt(EnvLogEvery, &c.LogEvery)
	p.int64Value(EnvSeed, &c.Seed)

	if v, ok := p.get(EnvCheckpoint); ok {
		c.Checkpoint = v
	}
	if v, ok := p.get(EnvLogLevel); ok && p.err == nil {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			p.err = fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = level
	}

	if p.err != nil {
		return Config{}, p.err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first setting outside its allowed range.
//
// FromEnv calls it after parsing; callers that override fields afterwards,
// such as command-line flags, must call it again.
func (c Config) Validate() error {
	ints := []struct {
		name   string
		value  int
		lowest int
	}{
		{"hidden size", c.HiddenSize, 1},
		{"sequence length", c.SequenceLength, 1},
		{"samples", c.Samples, 1},
		{"epochs", c.Epochs, 1},
		{"lr decay period", c.LRDecayEvery, 0},
		{"log interval", c.LogEvery, 1},
	}
	for _, f := range ints {
		if f.value < f.lowest {
			return fmt.Errorf("%w: %s must be at least %d, got %d", ErrInvalidValue, f.name, f.lowest, f.value)
		}
	}

	floats := []struct {
		name  string
		value float64
	}{
		{"learning rate", c.LearningRate},
		{"lr decay", c.LRDecay},
	}
	for _, f := range floats {
		// !(v > 0) also rejects NaN.
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidValue, f.name, f.value)
		}
	}

	if strings.TrimSpace(c.Checkpoint) == "" {
		return fmt.Errorf("%w: checkpoint path is empty", ErrInvalidValue)
	}
	return nil
}

// parser keeps the first error so FromEnv can read every variable in a row.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(name string) (string, bool) {
	v, ok := p.lookup(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) positiveInt(name string, dst *int) {
	p.intAtLeast(name, dst, 1)
}

func (p *parser) nonNegativeInt(name string, dst *int) {
	p.intAtLeast(name, dst, 0)
}

func (p *parser) intAtLeast(name string, dst *int, lowest int) {
	v, ok := p.get(name)
	if !ok || p.err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	switch {
	case err != nil:
		p.err = fmt.Errorf("%s: invalid integer %q", name, v)
	case n < lowest:
		p.err = fmt.Errorf("%s: must be at least %d, got %d", name, lowest, n)
	default:
		*dst = n
	}
}

func (p *parser) positiveFloat(name string, dst *float64) {
	v, ok := p.get(name)
	if !ok || p.err != nil {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	switch {
	case err != nil:
		p.err = fmt.Errorf("%s: invalid number %q", name, v)
	case f <= 0:
		p.err = fmt.Errorf("%s: must be positive, got %v", name, f)
	default:
		*dst = f
	}
}

func (p *parser) int64Value(name string, dst *int64) {
	v, ok := p.get(name)
	if !ok || p.err != nil {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: invalid integer %q", name, v)
		return
	}
	*dst = n
}

// loadEnvFile looks up to 5 levels for a .env file and loads the first one found.
func loadEnvFile() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	for range_i := 0; range_i < 5; range_i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}

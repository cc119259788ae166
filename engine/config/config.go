package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/tilegl/engine/core"
)

const (
	DEFAULT_HEAP_SIZE           = 4 << 20
	DEFAULT_STAGING_BUFFER_SIZE = 512 << 10
	DEFAULT_STAGING_BUFFERS     = 2
	DEFAULT_MAX_BATCHED_DRAWS   = 64
	DEFAULT_HISTORY_DEPTH       = 8
	DEFAULT_FRAMES              = 3
)

// Config holds the settings of a drawing session.
type Config struct {
	// One of debug, info, warn, error, fatal.
	LogLevel string `toml:"log_level"`
	// Size in bytes of the GPU-readable linear heap.
	HeapSize int `toml:"heap_size"`
	// Size in bytes of each staging region.
	StagingBufferSize int `toml:"staging_buffer_size"`
	// Number of staging regions rotated on flush.
	StagingBuffers  int `toml:"staging_buffers"`
	MaxBatchedDraws int `toml:"max_batched_draws"`
	// Number of submitted command lists kept for inspection. Also bounds the
	// lists waiting for the command processor.
	HistoryDepth int `toml:"history_depth"`
	// Frames rendered by the testbed before exiting. 0 runs until stopped.
	Frames int `toml:"frames"`
}

func Default() *Config {
	return &Config{
		LogLevel:          core.InfoLevel.String(),
		HeapSize:          DEFAULT_HEAP_SIZE,
		StagingBufferSize: DEFAULT_STAGING_BUFFER_SIZE,
		StagingBuffers:    DEFAULT_STAGING_BUFFERS,
		MaxBatchedDraws:   DEFAULT_MAX_BATCHED_DRAWS,
		HistoryDepth:      DEFAULT_HISTORY_DEPTH,
		Frames:            DEFAULT_FRAMES,
	}
}

// Load reads the TOML file at path on top of the defaults. Keys missing from
// the file keep their default value; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", core.ErrInvalidConfig, row, col, decodeErr.Error())
		}
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and returns all problems found.
func (c *Config) Validate() error {
	var errs []error
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.StagingBufferSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: staging_buffer_size must be positive, got %d", core.ErrInvalidConfig, c.StagingBufferSize))
	}
	if c.StagingBuffers <= 0 {
		errs = append(errs, fmt.Errorf("%w: staging_buffers must be positive, got %d", core.ErrInvalidConfig, c.StagingBuffers))
	}
	if c.StagingBufferSize > 0 && c.StagingBuffers > 0 && c.HeapSize < c.StagingBufferSize*c.StagingBuffers {
		errs = append(errs, fmt.Errorf("%w: heap_size %d cannot hold %d staging buffers of %d bytes",
			core.ErrInvalidConfig, c.HeapSize, c.StagingBuffers, c.StagingBufferSize))
	}
	if c.MaxBatchedDraws <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_batched_draws must be positive, got %d", core.ErrInvalidConfig, c.MaxBatchedDraws))
	}
	if c.HistoryDepth <= 0 {
		errs = append(errs, fmt.Errorf("%w: history_depth must be positive, got %d", core.ErrInvalidConfig, c.HistoryDepth))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("%w: frames must not be negative, got %d", core.ErrInvalidConfig, c.Frames))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level. It falls back to info for a config
// that was never validated.
func (c *Config) Level() core.LogLevel {
	l, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return core.InfoLevel
	}
	return l
}

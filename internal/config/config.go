// Package config provides configuration for fen-extract.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lgbarn/fen-extract-go/internal/errors"
)

// OutputFormat selects how processed positions are written.
type OutputFormat int

const (
	TextFormat OutputFormat = iota // One canonical FEN per line
	JSONFormat                     // A JSON document with one record per line
)

// String returns the flag spelling of the format.
func (f OutputFormat) String() string {
	if f == JSONFormat {
		return "json"
	}
	return "text"
}

// Config holds all program configuration.
type Config struct {
	// 0=errors only, 1=summary statistics, 2=running commentary
	Verbosity int

	// Output
	Format    OutputFormat
	ShowBoard bool // Add an ASCII diagram after each position

	// Duplicate handling
	SuppressDuplicates bool
	ExactDuplicates    bool // Also compare move counters
	DuplicateCapacity  int  // 0 = unlimited

	// Number of parser goroutines
	Workers int

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Format:     TextFormat,
		Workers:    runtime.GOMAXPROCS(0),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate checks option values and ranges.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity %d not in 0-2: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.DuplicateCapacity < 0 {
		return fmt.Errorf("duplicate capacity %d is negative: %w", c.DuplicateCapacity, errors.ErrInvalidConfig)
	}
	if c.Format != TextFormat && c.Format != JSONFormat {
		return fmt.Errorf("unknown output format %d: %w", c.Format, errors.ErrInvalidConfig)
	}
	if c.OutputFile == nil || c.LogFile == nil {
		return fmt.Errorf("output and log streams must be set: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.Verbosity < level || c.LogFile == nil {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}

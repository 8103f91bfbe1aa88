// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/fen-extract-go/internal/config"
	"github.com/lgbarn/fen-extract-go/internal/matching"
)

var (
	// Input options
	fenString = flag.String("f", "", "Parse a single FEN string")
	startPos  = flag.Bool("start", false, "Output the standard starting position")
	suiteFile = flag.String("suite", "", "Run a YAML position suite and exit")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	logFile      = flag.String("l", "", "Write diagnostics to this file (default: stderr)")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	showBoard    = flag.Bool("board", false, "Print an ASCII diagram after each position")

	// Position selection
	fenFilter          = flag.String("Tf", "", "Select positions matching a full FEN or a placement pattern with wildcards")
	positionFile       = flag.String("x", "", "File of FEN and FENPattern lines selecting positions")
	materialMatch      = flag.String("z", "", "Material balance to match (e.g., 'KQR:kqrr')")
	materialMatchExact = flag.String("y", "", "Exact material balance to match")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate positions")
	exactDuplicates    = flag.Bool("exact", false, "Duplicates must also match the move counters")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")

	// Processing
	workers = flag.Int("workers", 0, "Number of parser goroutines (0 = GOMAXPROCS)")

	// Verbosity
	quiet   = flag.Bool("s", false, "Silent mode: only report errors")
	verbose = flag.Bool("v", false, "Verbose mode: report every duplicate and suite case")

	// Help and version
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// runOptions carries the flags that select what run does.
type runOptions struct {
	FEN       string
	Start     bool
	SuiteFile string
	Filter    *matching.PositionFilter // nil selects every position
}

// optionsFromFlags collects the run-selection flags.
func optionsFromFlags() (runOptions, error) {
	opts := runOptions{
		FEN:       *fenString,
		Start:     *startPos,
		SuiteFile: *suiteFile,
	}
	filter, err := filterFromFlags()
	if err != nil {
		return opts, err
	}
	if filter.HasCriteria() {
		opts.Filter = filter
	}
	return opts, nil
}

// filterFromFlags builds the position filter from the selection flags.
func filterFromFlags() (*matching.PositionFilter, error) {
	filter := matching.NewPositionFilter()
	if *fenFilter != "" {
		if err := filter.AddFENFilter(*fenFilter, ""); err != nil {
			return nil, err
		}
	}
	if *positionFile != "" {
		if err := filter.LoadPatternFile(*positionFile); err != nil {
			return nil, err
		}
	}
	switch {
	case *materialMatchExact != "":
		if err := filter.SetMaterial(*materialMatchExact, true); err != nil {
			return nil, err
		}
	case *materialMatch != "":
		if err := filter.SetMaterial(*materialMatch, false); err != nil {
			return nil, err
		}
	}
	return filter, nil
}

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	if *jsonOutput {
		cfg.Format = config.JSONFormat
	}
	cfg.ShowBoard = *showBoard

	cfg.SuppressDuplicates = *suppressDuplicates || *exactDuplicates
	cfg.ExactDuplicates = *exactDuplicates
	cfg.DuplicateCapacity = *duplicateCapacity

	if *workers > 0 {
		cfg.Workers = *workers
	}

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// fen-extract validates and normalizes chess positions in Forsyth-Edwards Notation.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/fen-extract-go/internal/chess"
	"github.com/lgbarn/fen-extract-go/internal/config"
	"github.com/lgbarn/fen-extract-go/internal/fen"
	"github.com/lgbarn/fen-extract-go/internal/hashing"
	"github.com/lgbarn/fen-extract-go/internal/output"
	"github.com/lgbarn/fen-extract-go/internal/suite"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("fen-extract-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	// Set up logging and output files
	closeLog := setupLogFile(cfg)
	closeOut := setupOutputFile(cfg)

	code := 1
	opts, err := optionsFromFlags()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
	} else {
		code = run(context.Background(), cfg, opts, flag.Args())
	}

	closeOut()
	closeLog()
	os.Exit(code)
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) func() {
	if *logFile == "" {
		return func() {}
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
	return func() { file.Close() } //nolint:errcheck,gosec // G104: cleanup on exit
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) func() {
	if *outputFile == "" {
		return func() {}
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
	return func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(cfg.LogFile, "Error closing output file %s: %v\n", *outputFile, err)
		}
	}
}

// run does the work selected by opts and returns the process exit code.
func run(ctx context.Context, cfg *config.Config, opts runOptions, args []string) int {
	if opts.SuiteFile != "" {
		return runSuite(cfg, opts.SuiteFile)
	}

	var inputs []input
	if opts.Start {
		inputs = append(inputs, input{name: "start", open: stringOpener(fen.Encode(chess.StartingPosition()))})
	}
	if opts.FEN != "" {
		inputs = append(inputs, input{name: "-f", open: stringOpener(opts.FEN)})
	}
	for _, name := range args {
		inputs = append(inputs, fileInput(name))
	}
	if len(inputs) == 0 {
		inputs = append(inputs, input{name: "-", open: stdinOpener})
	}

	out := sinks{
		writer: output.NewPositionWriter(cfg.OutputFile, cfg),
		filter: opts.Filter,
	}
	if cfg.SuppressDuplicates {
		out.detector = hashing.NewDuplicateDetector(cfg.ExactDuplicates, cfg.DuplicateCapacity)
	}

	stats, err := processInputs(ctx, cfg, inputs, out)
	if cerr := out.writer.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		return 1
	}

	reportStatistics(cfg, stats)
	if stats.Invalid > 0 || stats.InputErrors > 0 {
		return 1
	}
	return 0
}

// runSuite loads and runs a YAML position suite.
func runSuite(cfg *config.Config, filename string) int {
	s, err := suite.Load(filename)
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error loading suite: %v\n", err)
		return 1
	}
	report := suite.Run(s)
	report.Write(cfg.OutputFile, cfg.Verbosity > 1)
	if err := report.Err(); err != nil {
		cfg.Logf(1, "%v\n", err)
		return 1
	}
	return 0
}

// reportStatistics prints the final statistics to the log.
func reportStatistics(cfg *config.Config, stats Stats) {
	if stats.Total == 0 {
		return
	}
	cfg.Logf(1, "%d position(s) read: %d valid, %d invalid.\n",
		stats.Total, stats.Valid, stats.Invalid)
	if stats.Filtered > 0 {
		cfg.Logf(1, "%d position(s) did not match the selection criteria.\n", stats.Filtered)
	}
	if cfg.SuppressDuplicates {
		cfg.Logf(1, "%d duplicate(s) suppressed.\n", stats.Duplicates)
	}
}

// input is a named line source opened on demand.
type input struct {
	name string
	open func() (io.ReadCloser, error)
}

func fileInput(name string) input {
	if name == "-" {
		return input{name: name, open: stdinOpener}
	}
	return input{name: name, open: func() (io.ReadCloser, error) {
		return os.Open(name) //nolint:gosec // G304: CLI tool opens user-specified files
	}}
}

func stringOpener(s string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func stdinOpener() (io.ReadCloser, error) {
	return io.NopCloser(os.Stdin), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: fen-extract [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Validates chess positions in FEN and writes them in canonical form.\n")
	fmt.Fprintf(os.Stderr, "Input holds one FEN per line; blank lines and lines starting with # are skipped.\n")
	fmt.Fprintf(os.Stderr, "With no input files and no -f or -start, standard input is read.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nSuite files (-suite) are YAML:\n")
	fmt.Fprintf(os.Stderr, "  name: regression\n")
	fmt.Fprintf(os.Stderr, "  positions:\n")
	fmt.Fprintf(os.Stderr, "    - name: bad turn\n")
	fmt.Fprintf(os.Stderr, "      fen: \"8/8/8/8/8/8/8/8 x - - 0 1\"\n")
	fmt.Fprintf(os.Stderr, "      error: invalid-turn\n")
}

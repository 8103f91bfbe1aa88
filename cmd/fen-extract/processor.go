// processor.go - Parallel line processing pipeline
package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/fen-extract-go/internal/config"
	"github.com/lgbarn/fen-extract-go/internal/errors"
	"github.com/lgbarn/fen-extract-go/internal/hashing"
	"github.com/lgbarn/fen-extract-go/internal/matching"
	"github.com/lgbarn/fen-extract-go/internal/output"
	"github.com/lgbarn/fen-extract-go/internal/worker"
)

// maxLineLength bounds a single input line.
const maxLineLength = 1 << 20

// Stats counts what happened to the input lines.
type Stats struct {
	Total       int // FEN lines read
	Valid       int // Lines that parsed, duplicates included
	Invalid     int // Lines that failed to parse
	Filtered    int // Valid lines rejected by the position filter
	Duplicates  int // Valid lines suppressed as duplicates
	InputErrors int // Inputs that could not be opened or read
}

// sinks holds where parsed positions go after the pool. filter and
// detector may be nil.
type sinks struct {
	writer   output.PositionWriter
	filter   *matching.PositionFilter
	detector *hashing.DuplicateDetector
}

// processInputs parses every FEN line of inputs on a worker pool and writes
// the results in input order.
func processInputs(ctx context.Context, cfg *config.Config, inputs []input, out sinks) (Stats, error) {
	var stats Stats
	if len(inputs) == 0 {
		return stats, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := worker.NewPool(worker.WithWorkers(cfg.Workers), worker.WithBufferSize(4*cfg.Workers))
	pool.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer pool.Close()
		inputErrors, err := feedLines(gctx, cfg, inputs, pool)
		stats.InputErrors = inputErrors
		return err
	})

	var writeErr error
	g.Go(func() error {
		c := &collector{cfg: cfg, sinks: out, pending: make(map[int]worker.ProcessResult)}
		for res := range pool.Results() {
			if writeErr != nil {
				continue // drain so the workers can exit
			}
			if err := c.add(res); err != nil {
				writeErr = err
				pool.Stop()
				cancel()
			}
		}
		stats.Total, stats.Valid, stats.Invalid = c.total, c.valid, c.invalid
		stats.Filtered, stats.Duplicates = c.filtered, c.duplicates
		return writeErr
	})

	err := g.Wait()
	if writeErr != nil {
		return stats, errors.Wrap(writeErr, "writing output")
	}
	return stats, err
}

// feedLines submits every FEN line of every input to the pool.
// It returns how many inputs could not be read.
func feedLines(ctx context.Context, cfg *config.Config, inputs []input, pool *worker.Pool) (int, error) {
	index := 0
	inputErrors := 0
	for _, in := range inputs {
		rc, err := in.open()
		if err != nil {
			fmt.Fprintf(cfg.LogFile, "Error opening file %s: %v\n", in.name, err)
			inputErrors++
			continue
		}
		cfg.Logf(2, "Reading %s\n", in.name)

		scanner := bufio.NewScanner(rc)
		scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			item := worker.WorkItem{Text: text, Index: index, Line: lineNum, Source: in.name}
			if err := pool.Submit(ctx, item); err != nil {
				rc.Close() //nolint:errcheck,gosec // G104: abandoning input
				return inputErrors, err
			}
			index++
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(cfg.LogFile, "Error reading %s: %v\n", in.name, err)
			inputErrors++
		}
		rc.Close() //nolint:errcheck,gosec // G104: read-only input
	}
	return inputErrors, nil
}

// collector restores input order and writes each result.
type collector struct {
	cfg *config.Config
	sinks

	next    int
	pending map[int]worker.ProcessResult

	total, valid, invalid, filtered, duplicates int
}

// add buffers res and writes every result that is now in sequence.
func (c *collector) add(res worker.ProcessResult) error {
	c.pending[res.Item.Index] = res
	for {
		r, ok := c.pending[c.next]
		if !ok {
			return nil
		}
		delete(c.pending, c.next)
		c.next++
		if err := c.emit(r); err != nil {
			return err
		}
	}
}

// emit logs failures, applies the filter, marks duplicates and writes one record.
func (c *collector) emit(res worker.ProcessResult) error {
	c.total++
	rec := output.Record{
		Source: res.Item.Source,
		Line:   res.Item.Line,
		Input:  res.Item.Text,
		Err:    res.Err,
	}

	if res.Err != nil {
		c.invalid++
		fmt.Fprintf(c.cfg.LogFile, "%v\n", &errors.LineError{Err: res.Err, File: res.Item.Source, Line: res.Item.Line})
		return c.writer.WriteRecord(rec)
	}

	c.valid++
	if c.filter != nil {
		label, ok := c.filter.Match(res.Position)
		if !ok {
			c.filtered++
			return nil
		}
		rec.Match = label
	}

	rec.Position = res.Position
	rec.FEN = res.FEN
	rec.Zobrist = hashing.GenerateZobristHash(res.Position)
	if c.detector != nil && c.detector.CheckAndAdd(res.Position) {
		rec.Duplicate = true
		c.duplicates++
		c.cfg.Logf(2, "%s:%d: duplicate position %s\n", res.Item.Source, res.Item.Line, res.FEN)
	}
	return c.writer.WriteRecord(rec)
}

package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lgbarn/fen-extract-go/internal/hashing"
	"github.com/lgbarn/fen-extract-go/internal/matching"
	"github.com/lgbarn/fen-extract-go/internal/output"
	"github.com/lgbarn/fen-extract-go/internal/testutil"
)

// recordingWriter keeps every record it is given.
type recordingWriter struct {
	records []output.Record
	failAt  int // fail the n-th write when > 0
}

func (w *recordingWriter) WriteRecord(r output.Record) error {
	if w.failAt > 0 && len(w.records)+1 == w.failAt {
		return errDiskFull
	}
	w.records = append(w.records, r)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

var errDiskFull = stderrors.New("disk full")

// numberedFENs returns n distinct positions, one per line.
func numberedFENs(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "4k3/8/8/8/8/8/8/4K3 w - - 0 %d\n", i)
	}
	return sb.String()
}

func TestProcessInputsKeepsOrder(t *testing.T) {
	const n = 500
	for _, workers := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			var log bytes.Buffer
			cfg := newTestConfig(&bytes.Buffer{}, &log).WithWorkers(workers).Build()
			w := &recordingWriter{}
			inputs := []input{{name: "gen", open: stringOpener(numberedFENs(n))}}

			stats, err := processInputs(context.Background(), cfg, inputs, sinks{writer: w})
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, stats, Stats{Total: n, Valid: n})

			if len(w.records) != n {
				t.Fatalf("got %d records, want %d", len(w.records), n)
			}
			for i, r := range w.records {
				want := fmt.Sprintf("4k3/8/8/8/8/8/8/4K3 w - - 0 %d", i+1)
				if r.FEN != want || r.Line != i+1 {
					t.Fatalf("record %d = line %d %q; want line %d %q", i, r.Line, r.FEN, i+1, want)
				}
			}
		})
	}
}

func TestProcessInputsLineNumbersPerInput(t *testing.T) {
	var log bytes.Buffer
	cfg := newTestConfig(&bytes.Buffer{}, &log).Build()
	w := &recordingWriter{}
	inputs := []input{
		{name: "a", open: stringOpener("\n# comment\n8/8/8/8/8/8/8/4K3 w - - 0 1\n")},
		{name: "b", open: stringOpener("  8/8/8/8/8/8/8/4K3 b - - 0 1  \n")},
	}

	stats, err := processInputs(context.Background(), cfg, inputs, sinks{writer: w})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats.Total, 2)
	if len(w.records) != 2 {
		t.Fatalf("got %d records, want 2", len(w.records))
	}
	testutil.AssertEqual(t, w.records[0].Source, "a")
	testutil.AssertEqual(t, w.records[0].Line, 3)
	testutil.AssertEqual(t, w.records[1].Source, "b")
	testutil.AssertEqual(t, w.records[1].Line, 1)
	testutil.AssertEqual(t, w.records[1].Input, "8/8/8/8/8/8/8/4K3 b - - 0 1")
}

func TestProcessInputsZobrist(t *testing.T) {
	var log bytes.Buffer
	cfg := newTestConfig(&bytes.Buffer{}, &log).Build()
	w := &recordingWriter{}
	inputs := []input{{name: "x", open: stringOpener("8/8/8/8/8/8/8/4K3 w - - 0 1\nnot a fen\n")}}

	stats, err := processInputs(context.Background(), cfg, inputs, sinks{writer: w})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats, Stats{Total: 2, Valid: 1, Invalid: 1})
	testutil.AssertEqual(t, w.records[0].Zobrist, hashing.GenerateZobristHash(w.records[0].Position))
	if w.records[1].Err == nil {
		t.Error("second record has no error")
	}
	testutil.AssertEqual(t, w.records[1].Zobrist, uint64(0))
	testutil.AssertContains(t, log.String(), "x:2:")
}

func TestProcessInputsDuplicateCapacity(t *testing.T) {
	var log bytes.Buffer
	cfg := newTestConfig(&bytes.Buffer{}, &log).Build()
	w := &recordingWriter{}
	text := "4k3/8/8/8/8/8/8/4K3 w - - 0 1\n" +
		"4k3/8/8/8/8/8/8/3K4 w - - 0 1\n" +
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1\n"
	inputs := []input{{name: "x", open: stringOpener(text)}}

	stats, err := processInputs(context.Background(), cfg, inputs, sinks{writer: w, detector: hashing.NewDuplicateDetector(false, 1)})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats.Duplicates, 1)
	testutil.AssertEqual(t, w.records[2].Duplicate, true)
}

func TestProcessInputsFilter(t *testing.T) {
	var log bytes.Buffer
	cfg := newTestConfig(&bytes.Buffer{}, &log).Build()
	filter := matching.NewPositionFilter()
	testutil.AssertNoError(t, filter.AddFENFilter("*/*/*/*/*/*/*/4K3", "king home"))
	w := &recordingWriter{}
	text := "4k3/8/8/8/8/8/8/4K3 w - - 0 1\n" +
		"4k3/8/8/8/8/8/8/3K4 w - - 0 1\n" +
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1\n"
	inputs := []input{{name: "x", open: stringOpener(text)}}

	stats, err := processInputs(context.Background(), cfg, inputs,
		sinks{writer: w, filter: filter, detector: hashing.NewDuplicateDetector(false, 0)})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats, Stats{Total: 3, Valid: 3, Filtered: 1, Duplicates: 1})
	if len(w.records) != 2 {
		t.Fatalf("got %d records, want 2", len(w.records))
	}
	testutil.AssertEqual(t, w.records[0].Match, "king home")
	testutil.AssertEqual(t, w.records[1].Line, 3)
	testutil.AssertEqual(t, w.records[1].Duplicate, true)
}

func TestProcessInputsWriteError(t *testing.T) {
	var log bytes.Buffer
	cfg := newTestConfig(&bytes.Buffer{}, &log).WithWorkers(4).Build()
	w := &recordingWriter{failAt: 10}
	inputs := []input{{name: "gen", open: stringOpener(numberedFENs(2000))}}

	_, err := processInputs(context.Background(), cfg, inputs, sinks{writer: w})
	testutil.AssertErrorIs(t, err, errDiskFull)
	testutil.AssertContains(t, err.Error(), "writing output")
	testutil.AssertEqual(t, len(w.records), 9)
}

func TestProcessInputsCancelled(t *testing.T) {
	var log bytes.Buffer
	cfg := newTestConfig(&bytes.Buffer{}, &log).Build()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inputs := []input{{name: "gen", open: stringOpener(numberedFENs(5000))}}

	_, err := processInputs(ctx, cfg, inputs, sinks{writer: &recordingWriter{}})
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestProcessInputsNoInputs(t *testing.T) {
	cfg := newTestConfig(&bytes.Buffer{}, &bytes.Buffer{}).Build()
	stats, err := processInputs(context.Background(), cfg, nil, sinks{writer: &recordingWriter{}})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats, Stats{})
}

// Package worker provides a worker pool for parsing FEN lines in parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/fen-extract-go/internal/chess"
	"github.com/lgbarn/fen-extract-go/internal/fen"
)

// WorkItem is one input line to be parsed.
type WorkItem struct {
	Text   string // The FEN text, already trimmed
	Index  int    // 0-based submission order
	Line   int    // 1-based line number in Source
	Source string // Input name, "-" for stdin
}

// ProcessResult is the outcome of parsing one WorkItem.
type ProcessResult struct {
	Item     WorkItem
	Position chess.Position // Zero value when Err is set
	FEN      string         // Canonical FEN when Err is nil
	Err      error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// ParseItem is the default ProcessFunc: it parses and re-encodes the line.
func ParseItem(item WorkItem) ProcessResult {
	p, err := fen.Parse(item.Text)
	if err != nil {
		return ProcessResult{Item: item, Err: err}
	}
	return ProcessResult{Item: item, Position: p, FEN: fen.Encode(p)}
}

// Pool manages a fixed set of goroutines applying a ProcessFunc.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	closeOnce   sync.Once
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithProcessFunc replaces ParseItem.
func WithProcessFunc(fn ProcessFunc) PoolOption {
	return func(p *Pool) {
		if fn != nil {
			p.processFunc = fn
		}
	}
}

// NewPool creates a pool. Defaults: 1 worker, buffer size 64, ParseItem.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  64,
		processFunc: ParseItem,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items until the work channel is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.stopped.Load() {
			continue // drain without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues an item, blocking while the buffer is full.
// It gives up with ctx.Err() if ctx is cancelled first.
func (p *Pool) Submit(ctx context.Context, item WorkItem) error {
	select {
	case p.workChan <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop makes workers drop queued items instead of processing them.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends submission and waits for the workers; the result channel is
// closed once they are done. It is safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.workChan)
		p.wg.Wait()
		close(p.resultChan)
	})
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Package worker provides a worker pool for validating saved matches in
// parallel.
package worker

import (
	"context"
	"sync"

	"github.com/lgbarn/chessmatch-go/internal/match"
)

// WorkItem is one saved match to process.
type WorkItem struct {
	Name  string // Source name, usually a file path
	Data  []byte // Persisted match document
	Index int    // Position in the caller's input
}

// ProcessResult is the outcome of processing one work item.
type ProcessResult struct {
	Name  string
	Index int
	Match *match.Match // Loaded match (nil on error)

	// Consistent reports whether the saved legal sets and king states
	// agree with a fresh resolution cycle.
	Consistent bool
	Error      error
}

// ProcessFunc processes one work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc over submitted items on a fixed set of goroutines.
// Every submitted item yields exactly one result; items taken after the pool
// is stopped carry the cancellation error instead of being processed.
type Pool struct {
	workers int
	buffer  int
	process ProcessFunc

	work    chan WorkItem
	results chan ProcessResult
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below 1 are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets the capacity of the work and result channels.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.buffer = size
		}
	}
}

// NewPool creates a pool with one worker and a buffer of 10 unless options
// say otherwise.
func NewPool(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		workers: 1,
		buffer:  10,
		process: process,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.work = make(chan WorkItem, p.buffer)
	p.results = make(chan ProcessResult, p.buffer)
	return p
}

// Start launches the workers. Cancelling ctx has the same effect as Stop.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for item := range p.work {
		if err := p.ctx.Err(); err != nil {
			p.results <- ProcessResult{Name: item.Name, Index: item.Index, Error: err}
			continue
		}
		p.results <- p.process(item)
	}
}

// Submit queues an item. It blocks while the work buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.work <- item
}

// Stop makes the workers fail the remaining items without processing them.
func (p *Pool) Stop() {
	p.cancel()
}

// Stopped reports whether the pool was stopped or its context cancelled.
func (p *Pool) Stopped() bool {
	return p.ctx.Err() != nil
}

// Close ends submission, waits for the workers, and then closes Results.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
	p.cancel()
	close(p.results)
}

// Results returns the channel results are delivered on.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

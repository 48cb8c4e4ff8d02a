package worker

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func echo(item WorkItem) ProcessResult {
	return ProcessResult{Name: item.Name, Index: item.Index}
}

func counting(counter *int32) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Name: item.Name, Index: item.Index, Consistent: true}
	}
}

func items(n int) []WorkItem {
	out := make([]WorkItem, n)
	for i := range out {
		out[i] = WorkItem{Name: fmt.Sprintf("match-%02d.json", i), Index: i}
	}
	return out
}

func drain(pool *Pool) map[int]ProcessResult {
	seen := make(map[int]ProcessResult)
	for res := range pool.Results() {
		seen[res.Index] = res
	}
	return seen
}

func TestPool_ProcessesEveryItem(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		buffer  int
		count   int
	}{
		{"single worker", 1, 5, 5},
		{"several workers", 4, 10, 10},
		{"small buffer", 8, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var processed int32
			pool := NewPool(counting(&processed), WithWorkers(tt.workers), WithBufferSize(tt.buffer))
			pool.Start(context.Background())

			go func() {
				for _, item := range items(tt.count) {
					pool.Submit(item)
				}
				pool.Close()
			}()

			seen := drain(pool)
			if len(seen) != tt.count {
				t.Errorf("results = %d; want %d", len(seen), tt.count)
			}
			for i := 0; i < tt.count; i++ {
				if res, ok := seen[i]; !ok || res.Error != nil {
					t.Errorf("index %d: present=%v error=%v", i, ok, res.Error)
				}
			}
			if got := atomic.LoadInt32(&processed); int(got) != tt.count {
				t.Errorf("processed = %d; want %d", got, tt.count)
			}
		})
	}
}

func TestPool_Stop(t *testing.T) {
	release := make(chan struct{})
	var processed int32
	gated := func(item WorkItem) ProcessResult {
		<-release
		atomic.AddInt32(&processed, 1)
		return echo(item)
	}

	pool := NewPool(gated, WithWorkers(1), WithBufferSize(20))
	pool.Start(context.Background())
	if pool.Stopped() {
		t.Fatal("pool should not be stopped initially")
	}
	for _, item := range items(10) {
		pool.Submit(item)
	}

	pool.Stop()
	if !pool.Stopped() {
		t.Error("pool should be stopped after Stop()")
	}
	close(release)
	go pool.Close()
	seen := drain(pool)

	if len(seen) != 10 {
		t.Fatalf("results = %d; want one per item", len(seen))
	}
	failed := 0
	for _, res := range seen {
		if res.Error != nil {
			if !stderrors.Is(res.Error, context.Canceled) {
				t.Errorf("index %d error = %v; want context.Canceled", res.Index, res.Error)
			}
			failed++
		}
	}
	if got := int(atomic.LoadInt32(&processed)); got+failed != 10 || got > 1 {
		t.Errorf("processed = %d, cancelled = %d", got, failed)
	}
}

func TestPool_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var processed int32
	pool := NewPool(counting(&processed), WithWorkers(2))
	pool.Start(ctx)
	if !pool.Stopped() {
		t.Error("pool started with a cancelled context should report Stopped")
	}

	go func() {
		for _, item := range items(5) {
			pool.Submit(item)
		}
		pool.Close()
	}()
	for idx, res := range drain(pool) {
		if !stderrors.Is(res.Error, context.Canceled) {
			t.Errorf("index %d error = %v", idx, res.Error)
		}
	}
	if atomic.LoadInt32(&processed) != 0 {
		t.Errorf("processed = %d; want 0", processed)
	}
}

func TestNewPool(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"buffer", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"both", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid values ignored", []PoolOption{WithWorkers(0), WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(echo, tt.opts...)
			if pool.Workers() != tt.wantWorkers {
				t.Errorf("Workers() = %d; want %d", pool.Workers(), tt.wantWorkers)
			}
			if cap(pool.work) != tt.wantBuffer || cap(pool.results) != tt.wantBuffer {
				t.Errorf("buffers = %d/%d; want %d", cap(pool.work), cap(pool.results), tt.wantBuffer)
			}
		})
	}
}

func TestRun_PreservesOrder(t *testing.T) {
	delayed := func(item WorkItem) ProcessResult {
		if item.Index%2 == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		return echo(item)
	}

	results := Run(context.Background(), items(20), 4, delayed)
	if len(results) != 20 {
		t.Fatalf("results = %d; want 20", len(results))
	}
	for i, res := range results {
		if res.Index != i || res.Name != fmt.Sprintf("match-%02d.json", i) {
			t.Errorf("results[%d] = %+v", i, res)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, items(3), 2, echo)
	if len(results) != 3 {
		t.Fatalf("results = %d; want 3", len(results))
	}
	for i, res := range results {
		if res.Index != i || !stderrors.Is(res.Error, context.Canceled) {
			t.Errorf("results[%d] = %+v", i, res)
		}
	}
}

func TestRun_Empty(t *testing.T) {
	if got := Run(context.Background(), nil, 3, echo); len(got) != 0 {
		t.Errorf("Run(nil) = %v", got)
	}
}

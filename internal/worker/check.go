package worker

import (
	"context"
	"fmt"
	"sort"

	"github.com/lgbarn/chessmatch-go/internal/output"
)

// CheckMatch loads a saved match and re-resolves it.
func CheckMatch(item WorkItem) ProcessResult {
	res := ProcessResult{Name: item.Name, Index: item.Index}
	m, err := output.UnmarshalMatch(item.Data)
	if err != nil {
		res.Error = fmt.Errorf("%s: %w", item.Name, err)
		return res
	}
	res.Consistent = m.Reresolve()
	res.Match = m
	return res
}

// Run processes items on a pool of the given size and returns one result
// per item in input order.
func Run(ctx context.Context, items []WorkItem, workers int, fn ProcessFunc) []ProcessResult {
	pool := NewPool(fn, WithWorkers(workers), WithBufferSize(len(items)+1))
	pool.Start(ctx)

	go func() {
		for _, item := range items {
			pool.Submit(item)
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	for res := range pool.Results() {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}

// Package accumulator implements a sharded map[int]float64 used by the
// parallel scorer to merge per-term relevance contributions from many
// goroutines without a global lock. It is a registry of
// independently-locked per-shard maps, specialized down to the single
// operation the scorer actually needs: add a contribution, or erase an
// entry outright.
package accumulator

import "sync"

type shard struct {
	mu   sync.Mutex
	data map[int]float64
}

// Accumulator is a concurrency-safe map[int]float64 split into a fixed
// number of independently-locked shards, keyed by key % len(shards).
type Accumulator struct {
	shards []*shard
}

// New returns an Accumulator with the given number of shards. shardCount
// must be positive; a value of 1 degrades gracefully to a single locked map.
func New(shardCount int) *Accumulator {
	if shardCount < 1 {
		shardCount = 1
	}
	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{data: make(map[int]float64)}
	}
	return &Accumulator{shards: shards}
}

func (a *Accumulator) shardFor(key int) *shard {
	return a.shards[key%len(a.shards)]
}

// Add adds delta to the entry for key, default-initializing it to 0 first
// if absent. Safe to call concurrently with Add/Erase for any other key,
// and for the same key from multiple goroutines (the shard's mutex still
// serializes those).
func (a *Accumulator) Add(key int, delta float64) {
	s := a.shardFor(key)
	s.mu.Lock()
	s.data[key] += delta
	s.mu.Unlock()
}

// Erase removes the entry for key, if any.
func (a *Accumulator) Erase(key int) {
	s := a.shardFor(key)
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// Drain merges every shard into a single map and returns it. Shards are
// locked in ascending index order, one at a time, so Drain can never
// deadlock against concurrent Add/Erase calls. Intended to be called once,
// after all scoring goroutines have joined.
func (a *Accumulator) Drain() map[int]float64 {
	out := make(map[int]float64)
	for _, s := range a.shards {
		s.mu.Lock()
		for k, v := range s.data {
			out[k] = v
		}
		s.mu.Unlock()
	}
	return out
}

// ShardSizes returns the number of entries held in each shard, in shard
// index order. Intended to be called after Drain, for reporting.
func (a *Accumulator) ShardSizes() []int {
	sizes := make([]int, len(a.shards))
	for i, s := range a.shards {
		s.mu.Lock()
		sizes[i] = len(s.data)
		s.mu.Unlock()
	}
	return sizes
}

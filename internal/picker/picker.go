// Package picker selects random items while avoiding recent repeats.
//
// A Picker remembers the keys of the items it returned in a bounded
// History. Each pick chooses uniformly among the candidates whose key is
// not in the history. When every candidate has been shown, the history is
// cleared and the whole pool is eligible again, so a non-empty pool always
// yields an item.
package picker

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// DefaultCapacity is the number of recent keys remembered by default.
const DefaultCapacity = 55

// ErrNoCandidates is returned when asked to pick from an empty pool.
var ErrNoCandidates = errors.New("picker: no candidates")

// History stores the keys of recently returned items, oldest first.
// Implementations evict the oldest key once their capacity is exceeded.
type History interface {
	Recent(ctx context.Context) ([]string, error)
	Push(ctx context.Context, key string) error
	Reset(ctx context.Context) error
}

// Picker chooses random items, skipping keys found in its History.
type Picker struct {
	mu      sync.Mutex
	history History
	intn    func(n int) int
}

// Option configures a Picker.
type Option func(*Picker)

// WithRand replaces the random source. intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(p *Picker) {
		p.intn = intn
	}
}

// New creates a Picker backed by history.
func New(history History, opts ...Option) *Picker {
	p := &Picker{
		history: history,
		intn:    rand.IntN,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PickIndex returns the index of the chosen key and records it in the
// history. The filter, choice and record happen under one lock.
func (p *Picker) PickIndex(ctx context.Context, keys []string) (int, error) {
	return p.pickIndex(ctx, keys, nil)
}

// pickIndex is PickIndex with a set of keys to avoid even after the
// history is reset. Excluded keys are used only when nothing else is left.
func (p *Picker) pickIndex(ctx context.Context, keys []string, exclude map[string]struct{}) (int, error) {
	if len(keys) == 0 {
		return 0, ErrNoCandidates
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	recent, err := p.history.Recent(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read history: %w", err)
	}

	shown := make(map[string]struct{}, len(recent))
	for _, k := range recent {
		shown[k] = struct{}{}
	}

	available := filter(keys, shown, exclude)
	if len(available) == 0 {
		if err := p.history.Reset(ctx); err != nil {
			return 0, fmt.Errorf("failed to reset history: %w", err)
		}
		available = filter(keys, nil, exclude)
	}
	if len(available) == 0 {
		available = filter(keys, nil, nil)
	}

	idx := available[p.intn(len(available))]
	if err := p.history.Push(ctx, keys[idx]); err != nil {
		return 0, fmt.Errorf("failed to record pick: %w", err)
	}

	return idx, nil
}

// filter returns the indexes of keys found in neither set.
func filter(keys []string, a, b map[string]struct{}) []int {
	out := make([]int, 0, len(keys))
	for i, k := range keys {
		if _, ok := a[k]; ok {
			continue
		}
		if _, ok := b[k]; ok {
			continue
		}
		out = append(out, i)
	}
	return out
}

func keysOf[T any](items []T, key func(T) string) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = key(item)
	}
	return keys
}

// Pick returns one item of items, keyed by key, avoiding recent repeats.
func Pick[T any](ctx context.Context, p *Picker, items []T, key func(T) string) (T, error) {
	var zero T

	idx, err := p.PickIndex(ctx, keysOf(items, key))
	if err != nil {
		return zero, err
	}
	return items[idx], nil
}

// PickN performs n successive picks. Every pick updates the history.
// Items returned by one call are distinct unless the pool holds fewer
// than n distinct keys, even when the history resets between picks.
func PickN[T any](ctx context.Context, p *Picker, items []T, n int, key func(T) string) ([]T, error) {
	keys := keysOf(items, key)
	picked := make(map[string]struct{}, n)

	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		idx, err := p.pickIndex(ctx, keys, picked)
		if err != nil {
			return nil, err
		}
		picked[keys[idx]] = struct{}{}
		out = append(out, items[idx])
	}
	return out, nil
}

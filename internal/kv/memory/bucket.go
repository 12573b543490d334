package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/zhulik/pollcfg/internal/core"
)

type Bucket struct {
	name string

	mu      sync.RWMutex
	seq     uint64
	entries map[string]core.KVEntry
}

func newBucket(name string) *Bucket {
	return &Bucket{
		name:    name,
		entries: map[string]core.KVEntry{},
	}
}

func (b *Bucket) Name() string {
	return b.name
}

// All returns entries ordered by their last write.
func (b *Bucket) All(_ context.Context) ([]core.KVEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.sorted(lo.Values(b.entries)), nil
}

func (b *Bucket) Get(_ context.Context, key string) (core.KVEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, ok := b.entries[key]
	if !ok {
		return core.KVEntry{}, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
	}

	return copyEntry(entry), nil
}

func (b *Bucket) Create(_ context.Context, key string, value []byte) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.entries[key]; ok {
		return 0, fmt.Errorf("%w: %s", core.ErrKeyExists, key)
	}

	return b.store(key, value), nil
}

func (b *Bucket) Put(_ context.Context, key string, value []byte) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.store(key, value), nil
}

func (b *Bucket) Update(_ context.Context, key string, value []byte, seq uint64) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
	}

	if entry.Revision != seq {
		return 0, fmt.Errorf("%w: %s expected revision %d, got %d", core.ErrWrongOperation, key, entry.Revision, seq)
	}

	return b.store(key, value), nil
}

func (b *Bucket) store(key string, value []byte) uint64 {
	b.seq++

	b.entries[key] = core.KVEntry{
		Key:      key,
		Value:    slices.Clone(value),
		Revision: b.seq,
	}

	return b.seq
}

func (b *Bucket) sorted(entries []core.KVEntry) []core.KVEntry {
	slices.SortFunc(entries, func(x, y core.KVEntry) int {
		return cmp.Compare(x.Revision, y.Revision)
	})

	return lo.Map(entries, func(entry core.KVEntry, _ int) core.KVEntry {
		return copyEntry(entry)
	})
}

func copyEntry(entry core.KVEntry) core.KVEntry {
	entry.Value = slices.Clone(entry.Value)

	return entry
}

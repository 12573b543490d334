package nats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zhulik/pollcfg/internal/core"
)

type Bucket struct {
	bucket jetstream.KeyValue
}

// All reads the entire bucket, make sure to use it only for small buckets.
func (b Bucket) All(ctx context.Context) ([]core.KVEntry, error) {
	lister, err := b.bucket.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	return b.listKeys(ctx, lister)
}

func (b Bucket) Get(ctx context.Context, key string) (core.KVEntry, error) {
	entry, err := b.bucket.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return core.KVEntry{}, fmt.Errorf("%w: %w", core.ErrKeyNotFound, err)
		}

		return core.KVEntry{}, fmt.Errorf("failed to get value: %w", err)
	}

	return core.KVEntry{
		Key:      entry.Key(),
		Value:    entry.Value(),
		Revision: entry.Revision(),
	}, nil
}

func (b Bucket) Create(ctx context.Context, key string, value []byte) (uint64, error) {
	seq, err := b.bucket.Create(ctx, key, value)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return 0, fmt.Errorf("%w: %w", core.ErrKeyExists, err)
		}

		return 0, fmt.Errorf("failed to put value: %w", err)
	}

	return seq, nil
}

func (b Bucket) Put(ctx context.Context, key string, value []byte) (uint64, error) {
	seq, err := b.bucket.Put(ctx, key, value)
	if err != nil {
		return 0, fmt.Errorf("failed to put value: %w", err)
	}

	return seq, nil
}

func (b Bucket) Update(ctx context.Context, key string, value []byte, seq uint64) (uint64, error) {
	seq, err := b.bucket.Update(ctx, key, value, seq)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return 0, fmt.Errorf("%w: %w", core.ErrKeyNotFound, err)
		}

		// JetStream reports a revision mismatch as "key exists".
		if errors.Is(err, jetstream.ErrKeyExists) {
			return 0, fmt.Errorf("%w: %w", core.ErrWrongOperation, err)
		}

		return 0, fmt.Errorf("failed to put value: %w", err)
	}

	return seq, nil
}

func (b Bucket) Name() string {
	return b.bucket.Bucket()
}

func (b Bucket) listKeys(ctx context.Context, lister jetstream.KeyLister) ([]core.KVEntry, error) {
	var entries []core.KVEntry //nolint:prealloc

	for key := range lister.Keys() {
		entry, err := b.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to get value: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

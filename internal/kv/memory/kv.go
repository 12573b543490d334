package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zhulik/pollcfg/internal/core"
)

// KV is an in-process implementation of core.KV. It mirrors JetStream KV
// semantics closely enough to be swapped in for tests and single-node runs.
type KV struct {
	mu      sync.Mutex
	buckets map[string]*Bucket
}

func NewKV() *KV {
	return &KV{
		buckets: map[string]*Bucket{},
	}
}

// CreateBucket creates a bucket or returns the existing one with the same name. TTL is ignored.
func (k *KV) CreateBucket(_ context.Context, name string, _ time.Duration) (core.KVBucket, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if bucket, ok := k.buckets[name]; ok {
		return bucket, nil
	}

	bucket := newBucket(name)
	k.buckets[name] = bucket

	return bucket, nil
}

func (k *KV) Bucket(_ context.Context, name string) (core.KVBucket, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	bucket, ok := k.buckets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrBucketNotFound, name)
	}

	return bucket, nil
}

func (k *KV) HealthCheck() error {
	return nil
}

func (k *KV) Shutdown() error {
	return nil
}

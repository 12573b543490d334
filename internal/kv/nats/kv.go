package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/do"
	"github.com/zhulik/pollcfg/internal/core"
	pubsubNats "github.com/zhulik/pollcfg/internal/pubsub/nats"
)

func NewKV(injector *do.Injector) (*KV, error) {
	client, err := do.Invoke[*pubsubNats.Client](injector)
	if err != nil {
		return nil, err
	}

	return &KV{
		Nats: client,
	}, nil
}

type KV struct {
	Nats *pubsubNats.Client
}

// CreateBucket creates a bucket or returns the existing one with the same name.
func (k KV) CreateBucket(ctx context.Context, name string, ttl time.Duration) (core.KVBucket, error) {
	bucket, err := k.Nats.JetStream.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: name,
		TTL:    ttl,
	})
	if err != nil {
		if errors.Is(err, jetstream.ErrBucketExists) {
			return k.Bucket(ctx, name)
		}

		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return Bucket{bucket: bucket}, nil
}

func (k KV) Bucket(ctx context.Context, name string) (core.KVBucket, error) {
	bucket, err := k.Nats.JetStream.KeyValue(ctx, name)
	if err != nil {
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			return nil, fmt.Errorf("%w: %w", core.ErrBucketNotFound, err)
		}

		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return Bucket{bucket: bucket}, nil
}

func (k KV) HealthCheck() error {
	return k.Nats.HealthCheck()
}

func (k KV) Shutdown() error {
	return nil
}

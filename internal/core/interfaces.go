package core

import (
	"context"
	"time"

	"github.com/samber/do"
)

type ServiceDependency interface {
	do.Healthcheckable
	do.Shutdownable
}

type Config interface {
	HTTPPort() int

	Backend() string
	NatsURL() string
	LogLevel() string

	// ElectronicVotingEnabled is the default used until an admin stores an explicit value.
	ElectronicVotingEnabled() bool
}

// VotingSettings must be consulted on every call, the value may be changed at runtime.
type VotingSettings interface {
	ElectronicVotingEnabled(ctx context.Context) (bool, error)
	SetElectronicVotingEnabled(ctx context.Context, enabled bool) error
}

type KVEntry struct {
	Key      string
	Value    []byte
	Revision uint64
}

type KVBucket interface {
	Name() string

	All(ctx context.Context) ([]KVEntry, error)

	Get(ctx context.Context, key string) (KVEntry, error)
	Create(ctx context.Context, key string, value []byte) (uint64, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Update(ctx context.Context, key string, value []byte, seq uint64) (uint64, error)
}

type KV interface {
	ServiceDependency

	CreateBucket(ctx context.Context, name string, ttl time.Duration) (KVBucket, error)
	Bucket(ctx context.Context, name string) (KVBucket, error)
}

type PollsRepo interface {
	Get(ctx context.Context, id string) (Poll, uint64, error)
	List(ctx context.Context) ([]Poll, error)
	Create(ctx context.Context, poll Poll) (uint64, error)
	// Update fails with ErrConcurrentUpdate if the stored revision differs from revision.
	Update(ctx context.Context, poll Poll, revision uint64) (uint64, error)
}

type Publisher interface {
	ServiceDependency

	Publish(ctx context.Context, subject string, msg any) error
}

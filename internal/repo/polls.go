package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/pollcfg/internal/core"
	"github.com/zhulik/pollcfg/pkg/json"
)

type PollsRepo struct {
	logger logrus.FieldLogger
	bucket core.KVBucket
}

func NewPollsRepo(injector *do.Injector) (*PollsRepo, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	kv, err := do.Invoke[core.KV](injector)
	if err != nil {
		return nil, err
	}

	bucket, err := kv.CreateBucket(context.Background(), core.BucketNamePolls, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create polls bucket: %w", err)
	}

	return &PollsRepo{
		logger: logger.WithField("component", "repo.PollsRepo"),
		bucket: bucket,
	}, nil
}

func (r PollsRepo) Get(ctx context.Context, id string) (core.Poll, uint64, error) {
	entry, err := r.bucket.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return core.Poll{}, 0, fmt.Errorf("%w: %s", core.ErrPollNotFound, id)
		}

		return core.Poll{}, 0, fmt.Errorf("failed to get poll %s: %w", id, err)
	}

	poll, err := json.Unmarshal[core.Poll](entry.Value)
	if err != nil {
		return core.Poll{}, 0, err
	}

	return poll, entry.Revision, nil
}

func (r PollsRepo) List(ctx context.Context) ([]core.Poll, error) {
	entries, err := r.bucket.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	polls := make([]core.Poll, 0, len(entries))

	for _, entry := range entries {
		poll, err := json.Unmarshal[core.Poll](entry.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode poll %s: %w", entry.Key, err)
		}

		polls = append(polls, poll)
	}

	return polls, nil
}

func (r PollsRepo) Create(ctx context.Context, poll core.Poll) (uint64, error) {
	data, err := json.Marshal(poll)
	if err != nil {
		return 0, err
	}

	revision, err := r.bucket.Create(ctx, poll.ID, data)
	if err != nil {
		return 0, fmt.Errorf("failed to create poll %s: %w", poll.ID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"pollID":   poll.ID,
		"revision": revision,
	}).Debug("Poll created")

	return revision, nil
}

func (r PollsRepo) Update(ctx context.Context, poll core.Poll, revision uint64) (uint64, error) {
	data, err := json.Marshal(poll)
	if err != nil {
		return 0, err
	}

	newRevision, err := r.bucket.Update(ctx, poll.ID, data, revision)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrKeyNotFound):
			return 0, fmt.Errorf("%w: %s", core.ErrPollNotFound, poll.ID)
		case errors.Is(err, core.ErrWrongOperation):
			return 0, fmt.Errorf("%w: %s: %w", core.ErrConcurrentUpdate, poll.ID, err)
		}

		return 0, fmt.Errorf("failed to update poll %s: %w", poll.ID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"pollID":   poll.ID,
		"revision": newRevision,
	}).Debug("Poll updated")

	return newRevision, nil
}

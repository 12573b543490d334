package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/pollcfg/internal/core"
)

// KVSettings keeps runtime-switchable settings in a KV bucket. Values are
// read on every call, nothing is cached.
type KVSettings struct {
	logger logrus.FieldLogger
	config core.Config
	bucket core.KVBucket
}

func NewKVSettings(injector *do.Injector) (*KVSettings, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	kv, err := do.Invoke[core.KV](injector)
	if err != nil {
		return nil, err
	}

	bucket, err := kv.CreateBucket(context.Background(), core.BucketNameSettings, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings bucket: %w", err)
	}

	return &KVSettings{
		logger: logger.WithField("component", "settings.KVSettings"),
		config: config,
		bucket: bucket,
	}, nil
}

// ElectronicVotingEnabled returns the stored value, or the config default when nothing is stored.
func (s KVSettings) ElectronicVotingEnabled(ctx context.Context) (bool, error) {
	entry, err := s.bucket.Get(ctx, core.SettingKeyElectronicVoting)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return s.config.ElectronicVotingEnabled(), nil
		}

		return false, fmt.Errorf("failed to read setting %s: %w", core.SettingKeyElectronicVoting, err)
	}

	enabled, err := strconv.ParseBool(string(entry.Value))
	if err != nil {
		return false, fmt.Errorf("failed to parse setting %s: %w", core.SettingKeyElectronicVoting, err)
	}

	return enabled, nil
}

func (s KVSettings) SetElectronicVotingEnabled(ctx context.Context, enabled bool) error {
	_, err := s.bucket.Put(ctx, core.SettingKeyElectronicVoting, []byte(strconv.FormatBool(enabled)))
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", core.SettingKeyElectronicVoting, err)
	}

	s.logger.WithField("enabled", enabled).Info("Electronic voting setting changed")

	return nil
}

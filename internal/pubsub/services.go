package pubsub

import (
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/pollcfg/internal/config"
	"github.com/zhulik/pollcfg/internal/core"
	"github.com/zhulik/pollcfg/internal/pubsub/nats"
)

func Register(injector *do.Injector) {
	do.Provide(injector, nats.NewClient)

	do.Provide(injector, func(injector *do.Injector) (core.Publisher, error) {
		cfg := do.MustInvoke[core.Config](injector)

		if cfg.Backend() == config.BackendMemory {
			logger := do.MustInvoke[logrus.FieldLogger](injector)

			return Noop{Logger: logger.WithField("component", "pubsub.Noop")}, nil
		}

		return nats.NewPublisher(injector)
	})
}

package pubsub

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Noop drops every message. Used by the in-memory backend.
type Noop struct {
	Logger logrus.FieldLogger
}

func (n Noop) Publish(_ context.Context, subject string, _ any) error {
	if n.Logger != nil {
		n.Logger.WithField("subject", subject).Debug("Message dropped by noop publisher")
	}

	return nil
}

func (n Noop) HealthCheck() error {
	return nil
}

func (n Noop) Shutdown() error {
	return nil
}

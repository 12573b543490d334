package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	libNats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/pollcfg/internal/core"
)

const (
	clientName     = "pollcfg"
	connectTimeout = 5 * time.Second
	reconnectWait  = time.Second
	maxReconnects  = 60
)

var errNotConnected = errors.New("not connected")

// Client is the connection shared by the polls KV, the settings KV and the
// event publisher.
type Client struct {
	Nats      *libNats.Conn
	JetStream jetstream.JetStream

	logger logrus.FieldLogger
}

func NewClient(injector *do.Injector) (*Client, error) {
	config := do.MustInvoke[core.Config](injector)

	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	logger = logger.WithField("component", "pubsub.nats.Client")

	conn, err := libNats.Connect(config.NatsURL(),
		libNats.Name(clientName),
		libNats.Timeout(connectTimeout),
		libNats.ReconnectWait(reconnectWait),
		libNats.MaxReconnects(maxReconnects),
		libNats.DisconnectErrHandler(func(_ *libNats.Conn, err error) {
			logger.WithError(err).Warn("Disconnected from NATS")
		}),
		libNats.ReconnectHandler(func(conn *libNats.Conn) {
			logger.WithField("url", conn.ConnectedUrl()).Info("Reconnected to NATS")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", config.NatsURL(), err)
	}

	jetStream, err := jetstream.New(conn)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to build JetStream client: %w", err)
	}

	logger.WithField("url", conn.ConnectedUrl()).Info("Connected to NATS")

	return &Client{
		Nats:      conn,
		JetStream: jetStream,
		logger:    logger,
	}, nil
}

// HealthCheck fails while the connection is reconnecting or JetStream is unavailable.
func (c Client) HealthCheck() error {
	if !c.Nats.IsConnected() {
		return fmt.Errorf("healthcheck failed: %w: %s", errNotConnected, c.Nats.Status())
	}

	_, err := c.JetStream.AccountInfo(context.Background())
	if err != nil {
		return fmt.Errorf("healthcheck failed: %w", err)
	}

	return nil
}

func (c Client) Shutdown() error {
	c.JetStream.CleanupPublisher()
	c.Nats.Close()

	c.logger.Info("NATS connection closed")

	return nil
}

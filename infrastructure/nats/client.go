package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"todo-api/pkg/logger"
)

const StreamName = "TASK_EVENTS"

// Client wraps NATS connection with JetStream context
type Client struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	prefix string
}

// ClientConfig configuration for the NATS client
type ClientConfig struct {
	URL           string // nats://localhost:4222
	SubjectPrefix string // subjects become <prefix>.task.<event>
}

// NewClient connects to NATS and makes sure the task event stream exists.
func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("todo-api"),
		nats.MaxReconnects(-1), // Reconnect forever
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = "todo"
	}

	client := &Client{conn: nc, js: js, prefix: prefix}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.setupStream(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "stream", StreamName, "prefix", prefix)
	return client, nil
}

func (c *Client) setupStream(ctx context.Context) error {
	_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{c.prefix + ".task.>"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      24 * time.Hour,
		Replicas:    1,
		Description: "Task lifecycle events",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update task event stream: %w", err)
	}
	logger.Info("JetStream stream ready", "name", StreamName)
	return nil
}

// Subject returns the subject a given event type is published on.
func (c *Client) Subject(eventType string) string {
	return TaskSubject(c.prefix, eventType)
}

func TaskSubject(prefix, eventType string) string {
	return prefix + ".task." + eventType
}

// Close drains and closes the connection
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		logger.Warn("NATS drain failed", "error", err)
		c.conn.Close()
	}
	logger.Info("NATS connection closed")
}

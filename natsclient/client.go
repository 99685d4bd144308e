// Package natsclient manages NATS connections for KV-backed parameter
// sources, with reconnect handling and a failure-count circuit breaker.
package natsclient

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/raultapia/rush/errors"
	"github.com/raultapia/rush/metric"
	"github.com/raultapia/rush/pkg/retry"
)

// ConnectionStatus represents the state of the NATS connection
type ConnectionStatus int

// Possible connection statuses
const (
	StatusDisconnected ConnectionStatus = iota
	StatusConnecting
	StatusConnected
	StatusReconnecting
	StatusCircuitOpen
)

// String returns the string representation of ConnectionStatus
func (s ConnectionStatus) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusReconnecting:
		return "reconnecting"
	case StatusCircuitOpen:
		return "circuit_open"
	default:
		return "unknown"
	}
}

// Client manages a NATS connection plus JetStream access for KV buckets
type Client struct {
	url    string
	status atomic.Value // stores ConnectionStatus
	logger *slog.Logger

	conn *nats.Conn
	js   jetstream.JetStream

	// Circuit breaker
	failures         atomic.Int32
	circuitThreshold int32

	// Connection options
	maxReconnects int
	reconnectWait time.Duration
	timeout       time.Duration
	drainTimeout  time.Duration

	// Authentication - cleared on close
	username string
	password string
	token    string

	clientName string
	metrics    *metric.Metrics

	mu     sync.RWMutex
	closed atomic.Bool
}

// NewClient creates a new NATS client with optional configuration
func NewClient(url string, opts ...ClientOption) (*Client, error) {
	if url == "" {
		return nil, errors.WrapInvalid(
			fmt.Errorf("empty URL"), "Client", "NewClient", "validate URL")
	}

	c := &Client{
		url:              url,
		logger:           slog.Default(),
		maxReconnects:    -1, // infinite by default
		reconnectWait:    2 * time.Second,
		timeout:          5 * time.Second,
		drainTimeout:     30 * time.Second,
		circuitThreshold: 5,
		clientName:       "rush-" + uuid.NewString()[:8],
	}
	c.status.Store(StatusDisconnected)

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.WrapInvalid(err, "Client", "NewClient", "apply option")
		}
	}

	return c, nil
}

// Connect establishes the NATS connection and initializes JetStream.
// Connection attempts are retried with backoff; the passed context bounds
// the whole operation.
func (c *Client) Connect(ctx context.Context) error {
	if c.closed.Load() {
		return errors.WrapInvalid(
			fmt.Errorf("client closed"), "Client", "Connect", "reuse closed client")
	}

	c.status.Store(StatusConnecting)

	natsOpts := []nats.Option{
		nats.Name(c.clientName),
		nats.MaxReconnects(c.maxReconnects),
		nats.ReconnectWait(c.reconnectWait),
		nats.Timeout(c.timeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			c.status.Store(StatusReconnecting)
			if c.metrics != nil {
				c.metrics.SourceConnected.Set(0)
			}
			c.logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			c.status.Store(StatusConnected)
			c.failures.Store(0)
			if c.metrics != nil {
				c.metrics.SourceConnected.Set(1)
				c.metrics.SourceReconnects.Inc()
			}
			c.logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			c.status.Store(StatusDisconnected)
			if c.metrics != nil {
				c.metrics.SourceConnected.Set(0)
			}
		}),
	}

	if c.username != "" {
		natsOpts = append(natsOpts, nats.UserInfo(c.username, c.password))
	}
	if c.token != "" {
		natsOpts = append(natsOpts, nats.Token(c.token))
	}

	conn, err := retry.DoWithResult(ctx, retry.Quick(), func() (*nats.Conn, error) {
		return nats.Connect(c.url, natsOpts...)
	})
	if err != nil {
		c.status.Store(StatusDisconnected)
		c.recordFailure()
		return errors.WrapTransient(err, "Client", "Connect", "establish connection")
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		c.status.Store(StatusDisconnected)
		return errors.WrapFatal(err, "Client", "Connect", "initialize JetStream")
	}

	c.mu.Lock()
	c.conn = conn
	c.js = js
	c.mu.Unlock()

	c.status.Store(StatusConnected)
	c.failures.Store(0)
	if c.metrics != nil {
		c.metrics.SourceConnected.Set(1)
	}
	c.logger.Info("NATS connected", "url", conn.ConnectedUrl(), "name", c.clientName)
	return nil
}

// KeyValueBucket returns an existing KV bucket, retrying while JetStream
// catches up after a fresh server start
func (c *Client) KeyValueBucket(ctx context.Context, bucket string) (jetstream.KeyValue, error) {
	js, err := c.jetStream()
	if err != nil {
		return nil, err
	}

	kv, err := retry.DoWithResult(ctx, retry.Quick(), func() (jetstream.KeyValue, error) {
		return js.KeyValue(ctx, bucket)
	})
	if err != nil {
		c.recordFailure()
		return nil, errors.WrapTransient(err, "Client", "KeyValueBucket",
			fmt.Sprintf("open bucket %s", bucket))
	}
	return kv, nil
}

// CreateKeyValueBucket creates a KV bucket or returns the existing one
func (c *Client) CreateKeyValueBucket(ctx context.Context, cfg jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	js, err := c.jetStream()
	if err != nil {
		return nil, err
	}

	kv, err := js.CreateKeyValue(ctx, cfg)
	if err != nil {
		if stderrors.Is(err, jetstream.ErrBucketExists) {
			return js.KeyValue(ctx, cfg.Bucket)
		}
		c.recordFailure()
		return nil, errors.WrapTransient(err, "Client", "CreateKeyValueBucket",
			fmt.Sprintf("create bucket %s", cfg.Bucket))
	}
	return kv, nil
}

// Status returns the current connection status
func (c *Client) Status() ConnectionStatus {
	if s, ok := c.status.Load().(ConnectionStatus); ok {
		return s
	}
	return StatusDisconnected
}

// IsHealthy reports whether the client holds a live connection
func (c *Client) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil && c.conn.IsConnected() && c.Status() == StatusConnected
}

// RTT measures the round-trip time to the server
func (c *Client) RTT() (time.Duration, error) {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil || !conn.IsConnected() {
		return 0, errors.ErrNoConnection
	}
	return conn.RTT()
}

// Close drains the connection and releases resources. Safe to call twice.
func (c *Client) Close(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil // Already closed
	}

	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.js = nil
	// Clear credentials
	c.password = ""
	c.token = ""
	c.mu.Unlock()

	c.status.Store(StatusDisconnected)
	if c.metrics != nil {
		c.metrics.SourceConnected.Set(0)
	}

	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Drain()
	}()

	select {
	case err := <-done:
		if err != nil {
			conn.Close()
			return errors.WrapTransient(err, "Client", "Close", "drain connection")
		}
	case <-time.After(c.drainTimeout):
		conn.Close()
		c.logger.Warn("drain timeout, connection closed hard", "timeout", c.drainTimeout)
	case <-ctx.Done():
		conn.Close()
		return errors.WrapTransient(ctx.Err(), "Client", "Close", "drain connection")
	}

	return nil
}

// jetStream returns the JetStream handle, honoring the circuit breaker
func (c *Client) jetStream() (jetstream.JetStream, error) {
	if c.failures.Load() >= c.circuitThreshold {
		c.status.Store(StatusCircuitOpen)
		return nil, errors.WrapTransient(errors.ErrCircuitOpen,
			"Client", "jetStream", "check circuit breaker")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.js == nil {
		return nil, errors.WrapTransient(errors.ErrNoConnection,
			"Client", "jetStream", "check connection")
	}
	return c.js, nil
}

func (c *Client) recordFailure() {
	if c.failures.Add(1) >= c.circuitThreshold {
		c.status.Store(StatusCircuitOpen)
		c.logger.Error("circuit breaker open", "failures", c.failures.Load())
	}
}

// ResetCircuit clears the failure count and closes the circuit
func (c *Client) ResetCircuit() {
	c.failures.Store(0)
	if c.Status() == StatusCircuitOpen {
		c.status.Store(StatusDisconnected)
	}
}

// Package events publishes per-record engine outcomes to external systems.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kestrelpay/kestrel-go/interfaces"
	"github.com/kestrelpay/kestrel-go/internal"
)

// outcomeEvent is the wire payload for one processed record.
type outcomeEvent struct {
	RunID string `json:"run_id"`
	interfaces.Outcome
}

// NATSPublisher emits engine outcomes as JSON messages on a single subject.
// Publishing is fire-and-forget; the engine never waits on it.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	runID   string
	logger  *internal.Logger
}

// NewNATSPublisher connects to url and returns a publisher for subject.
func NewNATSPublisher(url, subject, runID string, logger *internal.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = internal.GetLogger()
	}

	opts := []nats.Option{
		nats.Name("kestrel-" + runID),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error(internal.ComponentNATS, "NATS error: %v", err)
		}),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			logger.Warn(internal.ComponentNATS, "Disconnected from NATS server")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info(internal.ComponentNATS, "Reconnected to NATS server")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("NATS connection failed: %w", err)
	}

	logger.Info(internal.ComponentNATS, "Publishing outcomes to %s on %s", subject, url)

	return &NATSPublisher{conn: conn, subject: subject, runID: runID, logger: logger}, nil
}

// Emit publishes one outcome.
func (p *NATSPublisher) Emit(ctx context.Context, outcome interfaces.Outcome) error {
	data, err := json.Marshal(outcomeEvent{RunID: p.runID, Outcome: outcome})
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish outcome: %w", err)
	}

	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Flush(); err != nil {
		p.logger.Warn(internal.ComponentNATS, "Flush before close failed: %v", err)
	}
	p.conn.Close()
	return nil
}

package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSSource receives full snapshots published on a NATS subject
type NATSSource struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSSource connects to NATS, reconnecting forever on failure
func NewNATSSource(url, subject string, logger *slog.Logger) (*NATSSource, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &NATSSource{conn: conn, subject: subject, logger: logger}, nil
}

// FetchSubject is the request/reply subject answering with the latest snapshot
func (s *NATSSource) FetchSubject() string {
	return s.subject + ".fetch"
}

// Fetch asks a responder for the latest snapshot
func (s *NATSSource) Fetch(ctx context.Context) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	msg, err := s.conn.RequestWithContext(ctx, s.FetchSubject(), nil)
	if err != nil {
		return nil, fmt.Errorf("nats fetch %s: %w", s.FetchSubject(), err)
	}
	return msg.Data, nil
}

// Subscribe calls fn with every snapshot published on the subject
func (s *NATSSource) Subscribe(ctx context.Context, fn func([]byte)) (Subscription, error) {
	sub, err := s.conn.Subscribe(s.subject, func(msg *nats.Msg) {
		fn(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %s: %w", s.subject, err)
	}

	s.logger.Info("subscribed to snapshots", "subject", s.subject)

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()

	return sub, nil
}

// Publish pushes a snapshot to subscribers
func (s *NATSSource) Publish(data []byte) error {
	if err := s.conn.Publish(s.subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", s.subject, err)
	}
	return s.conn.Flush()
}

// Serve answers fetch requests with whatever data returns until ctx is done
func (s *NATSSource) Serve(ctx context.Context, data func() ([]byte, error)) error {
	sub, err := s.conn.Subscribe(s.FetchSubject(), func(msg *nats.Msg) {
		payload, err := data()
		if err != nil {
			s.logger.Error("snapshot fetch failed", "error", err)
			return
		}
		if err := msg.Respond(payload); err != nil {
			s.logger.Error("snapshot reply failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %s: %w", s.FetchSubject(), err)
	}
	defer sub.Unsubscribe()

	<-ctx.Done()
	return nil
}

// Close drains the connection
func (s *NATSSource) Close() error {
	return s.conn.Drain()
}

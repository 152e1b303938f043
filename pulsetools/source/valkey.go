package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/valkey-io/valkey-go"
)

// ValkeySource reads snapshots stored under a Valkey key and refreshes on
// pub/sub notifications
type ValkeySource struct {
	client  valkey.Client
	key     string
	channel string
	logger  *slog.Logger
}

// NewValkeySource creates a new Valkey client
func NewValkeySource(addr, key, channel string, logger *slog.Logger) (*ValkeySource, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &ValkeySource{client: client, key: key, channel: channel, logger: logger}, nil
}

// Fetch returns the stored snapshot, a missing key reads as an empty snapshot
func (s *ValkeySource) Fetch(ctx context.Context) ([]byte, error) {
	cmd := s.client.Do(ctx, s.client.B().Get().Key(s.key).Build())
	if err := cmd.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return []byte("null"), nil
		}
		return nil, fmt.Errorf("valkey get %s: %w", s.key, err)
	}
	return cmd.AsBytes()
}

// Subscribe listens on the channel. Notifications carrying a JSON object are
// delivered as is, anything else triggers a fresh Fetch. fn is called from a
// single goroutine, with the latest pending update only.
func (s *ValkeySource) Subscribe(ctx context.Context, fn func([]byte)) (Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &cancelSubscription{cancel: cancel, done: make(chan struct{})}

	var wg sync.WaitGroup
	wg.Add(2)

	// nil asks for a refresh
	updates := newLatest()

	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case body := <-updates.c:
				if body == nil {
					data, err := s.Fetch(ctx)
					if err != nil {
						if ctx.Err() == nil {
							s.logger.Warn("snapshot refresh failed", "key", s.key, "error", err)
						}
						continue
					}
					body = data
				}
				if ctx.Err() != nil {
					return
				}
				fn(body)
			}
		}
	}()

	go func() {
		defer wg.Done()
		err := s.client.Receive(ctx, s.client.B().Subscribe().Channel(s.channel).Build(), func(msg valkey.PubSubMessage) {
			if body := bytes.TrimSpace([]byte(msg.Message)); len(body) > 0 && body[0] == '{' {
				updates.put(body)
				return
			}
			updates.put(nil)
		})
		if err != nil && ctx.Err() == nil {
			s.logger.Error("valkey subscription ended", "channel", s.channel, "error", err)
		}
	}()

	go func() {
		wg.Wait()
		close(sub.done)
	}()

	s.logger.Info("subscribed to snapshots", "channel", s.channel, "key", s.key)
	return sub, nil
}

// Publish stores the snapshot and notifies subscribers
func (s *ValkeySource) Publish(ctx context.Context, data []byte) error {
	set := s.client.B().Set().Key(s.key).Value(string(data)).Build()
	if err := s.client.Do(ctx, set).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", s.key, err)
	}

	pub := s.client.B().Publish().Channel(s.channel).Message("changed").Build()
	if err := s.client.Do(ctx, pub).Error(); err != nil {
		return fmt.Errorf("valkey publish %s: %w", s.channel, err)
	}
	return nil
}

// Close releases the client
func (s *ValkeySource) Close() {
	s.client.Close()
}

package source

import (
	"context"
	"sync"
)

// SnapshotSource delivers raw snapshots, each one a complete document
type SnapshotSource interface {
	// Fetch returns the latest snapshot
	Fetch(ctx context.Context) ([]byte, error)
	// Subscribe calls fn with every new snapshot until ctx is done or the
	// subscription is cancelled
	Subscribe(ctx context.Context, fn func([]byte)) (Subscription, error)
}

// Subscription is an active snapshot subscription
type Subscription interface {
	Unsubscribe() error
}

type cancelSubscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *cancelSubscription) Unsubscribe() error {
	s.cancel()
	<-s.done
	return nil
}

// latest holds at most one pending update, a newer one replaces it
type latest struct {
	mu sync.Mutex
	c  chan []byte
}

func newLatest() *latest {
	return &latest{c: make(chan []byte, 1)}
}

func (l *latest) put(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.c:
	default:
	}
	l.c <- b
}

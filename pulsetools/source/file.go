package source

import (
	"context"
	"fmt"
	"io/ioutil"
	"log/slog"
	"os"
	"time"
)

// FileSource reads snapshots from a JSON file on disk
type FileSource struct {
	Path     string
	Interval time.Duration
	Logger   *slog.Logger
}

// NewFileSource creates a file source polling at the given interval
func NewFileSource(path string, interval time.Duration, logger *slog.Logger) *FileSource {
	return &FileSource{Path: path, Interval: interval, Logger: logger}
}

// Fetch reads the whole file
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := ioutil.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return data, nil
}

// Subscribe delivers the file whenever its modification time or size changes
func (s *FileSource) Subscribe(ctx context.Context, fn func([]byte)) (Subscription, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot file: %w", err)
	}

	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &cancelSubscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)

		modTime, size := info.ModTime(), info.Size()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				info, err := os.Stat(s.Path)
				if err != nil {
					s.logger().Warn("snapshot file unavailable", "path", s.Path, "error", err)
					continue
				}
				if info.ModTime().Equal(modTime) && info.Size() == size {
					continue
				}
				modTime, size = info.ModTime(), info.Size()
				s.deliver(ctx, fn)
			}
		}
	}()

	return sub, nil
}

func (s *FileSource) deliver(ctx context.Context, fn func([]byte)) {
	data, err := s.Fetch(ctx)
	if err != nil {
		s.logger().Warn("snapshot file read failed", "path", s.Path, "error", err)
		return
	}
	fn(data)
}

func (s *FileSource) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

package source_test

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"pulse-tools/pulsetools/logging"
	"pulse-tools/pulsetools/source"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileSourceFetch(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.json")
	require.NoError(ioutil.WriteFile(path, []byte(`{"devA": {}}`), 0644))

	src := source.NewFileSource(path, 10*time.Millisecond, logging.Discard())
	data, err := src.Fetch(context.Background())
	require.NoError(err)
	require.Equal(`{"devA": {}}`, string(data))

	_, err = source.NewFileSource(filepath.Join(dir, "missing.json"), 0, logging.Discard()).Fetch(context.Background())
	require.Error(err)
	require.True(errors.Is(err, os.ErrNotExist))
}

func TestFileSourceSubscribe(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "pulse.json")
	require.NoError(ioutil.WriteFile(path, []byte(`{"a": {}}`), 0644))

	src := source.NewFileSource(path, 10*time.Millisecond, logging.Discard())

	got := make(chan string, 10)
	sub, err := src.Subscribe(context.Background(), func(data []byte) {
		got <- string(data)
	})
	require.NoError(err)

	select {
	case data := <-got:
		t.Fatalf("unchanged file delivered: %s", data)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(ioutil.WriteFile(path, []byte(`{"a": {}, "b": {}}`), 0644))

	select {
	case data := <-got:
		require.Equal(`{"a": {}, "b": {}}`, data)
	case <-time.After(2 * time.Second):
		t.Fatal("change not delivered")
	}

	require.NoError(sub.Unsubscribe())
}

func TestFileSourceSubscribeMissingFile(t *testing.T) {
	require := require.New(t)

	src := source.NewFileSource(filepath.Join(t.TempDir(), "missing.json"), 0, logging.Discard())
	sub, err := src.Subscribe(context.Background(), func([]byte) {})
	require.Nil(sub)
	require.Error(err)
}

func TestFileSourceStopsOnCancel(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "pulse.json")
	require.NoError(ioutil.WriteFile(path, []byte(`{}`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	src := source.NewFileSource(path, 10*time.Millisecond, logging.Discard())

	sub, err := src.Subscribe(ctx, func([]byte) {})
	require.NoError(err)

	cancel()
	require.NoError(sub.Unsubscribe())
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, path, serverURL string) {
	t.Helper()
	content := "server:\n  url: " + serverURL + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWatcher_StartLoadsInitialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	writeConfigFile(t, path, "http://localhost:5000")

	watcher, err := NewWatcher(path, nil)
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	defer func() { _ = watcher.Stop() }()

	last := watcher.GetLastConfig()
	require.NotNil(t, last)
	assert.Equal(t, "http://localhost:5000", last.Server.URL)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	writeConfigFile(t, path, "http://localhost:5000")

	changed := make(chan *ClientConfig, 1)
	watcher, err := NewWatcher(path, func(cfg *ClientConfig) {
		select {
		case changed <- cfg:
		default:
		}
	}, WithDebounceDelay(10*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	defer func() { _ = watcher.Stop() }()

	writeConfigFile(t, path, "http://localhost:6000")

	select {
	case cfg := <-changed:
		assert.Equal(t, "http://localhost:6000", cfg.Server.URL)
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked after config change")
	}
}

func TestWatcher_InvalidChangeKeepsLastConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	writeConfigFile(t, path, "http://localhost:5000")

	errCh := make(chan error, 1)
	watcher, err := NewWatcher(path, nil,
		WithDebounceDelay(10*time.Millisecond),
		WithErrorCallback(func(err error) {
			select {
			case errCh <- err:
			default:
			}
		}),
	)
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	defer func() { _ = watcher.Stop() }()

	writeConfigFile(t, path, "ftp://not-valid")

	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("error callback was not invoked for invalid config")
	}

	last := watcher.GetLastConfig()
	require.NotNil(t, last)
	assert.Equal(t, "http://localhost:5000", last.Server.URL)
}

func TestWatcher_StartMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	watcher, err := NewWatcher(path, nil)
	require.NoError(t, err)

	assert.Error(t, watcher.Start(context.Background()))
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	writeConfigFile(t, path, "http://localhost:5000")

	watcher, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, watcher.Start(context.Background()))

	assert.NoError(t, watcher.Stop())
	assert.NoError(t, watcher.Stop())
}

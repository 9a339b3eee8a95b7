package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_ShutsDownOnCancel(t *testing.T) {
	t.Setenv(storageBackendEnv, "none")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := executeCommandContext(ctx, t, "serve", "--addr", "127.0.0.1:0")
		done <- err
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
	require.Equal(t, "127.0.0.1:0", appConfig.Server.Addr)
}

func TestServeCommand_BadStorage(t *testing.T) {
	t.Setenv(storageBackendEnv, "ftp")

	_, err := executeCommand(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

//go:build !windows

package signal_test

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/fiffeek/displayflip/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_CancelsOnSignal(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	handler := signal.NewHandler(cancel)
	handler.Start(ctx)
	defer handler.Stop()

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGHUP))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled by the signal")
	}

	var interrupted *signal.Interrupted
	require.True(t, errors.As(context.Cause(ctx), &interrupted))
	assert.Equal(t, syscall.SIGHUP, interrupted.Signal)
	assert.Equal(t, 129, interrupted.ExitCode())
	assert.Equal(t, "interrupted by hangup", interrupted.Error())
}

func TestHandler_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	handler := signal.NewHandler(cancel)
	handler.Start(ctx)

	cancel(context.Canceled)
	handler.Stop()

	assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
}

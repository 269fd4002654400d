package interrupt

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolateRunsFunctionAndReturnsItsError(t *testing.T) {
	c := NewController()
	want := errors.New("boom")

	err := c.Isolate(func() error { return want })

	assert.ErrorIs(t, err, want)
}

func TestIsolateSuppressesInterrupts(t *testing.T) {
	c := NewController()

	// If suppression failed, the SIGINT would terminate the test process.
	err := c.Isolate(func() error {
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
			return err
		}
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	require.NoError(t, err)
}

func TestIsolateRestoresDispositionOnPanic(t *testing.T) {
	c := NewController()

	assert.Panics(t, func() {
		_ = c.Isolate(func() error { panic("boom") })
	})
	assert.False(t, c.suppressed)
}

func TestDeliverableSurfacesSignalAsCancellation(t *testing.T) {
	c := NewController()

	err := c.Isolate(func() error {
		return c.Deliverable(context.Background(), func(ctx context.Context) error {
			if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return errors.New("signal never surfaced")
			}
		})
	})

	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestDeliverablePassesThroughOrdinaryErrors(t *testing.T) {
	c := NewController()
	want := errors.New("hook fault")

	err := c.Isolate(func() error {
		return c.Deliverable(context.Background(), func(ctx context.Context) error {
			return want
		})
	})

	assert.ErrorIs(t, err, want)
}

func TestDeliverableNilErrorOnSuccess(t *testing.T) {
	c := NewController()

	err := c.Isolate(func() error {
		return c.Deliverable(context.Background(), func(ctx context.Context) error {
			return nil
		})
	})

	assert.NoError(t, err)
}

func TestDeliverableRevertsToSuppressionAfterCall(t *testing.T) {
	c := NewController()

	err := c.Isolate(func() error {
		if err := c.Deliverable(context.Background(), func(ctx context.Context) error {
			return nil
		}); err != nil {
			return err
		}
		// Back under mode A: this signal must be discarded.
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
			return err
		}
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	require.NoError(t, err)
}

func TestDeliverableRespectsCallerCancellation(t *testing.T) {
	c := NewController()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Isolate(func() error {
		return c.Deliverable(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
	})

	// Canceled by the caller, not by a signal.
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrInterrupted)
}

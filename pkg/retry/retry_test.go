package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOpts(maxAttempts int) []Option {
	return []Option{
		WithMaxAttempts(maxAttempts),
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(2 * time.Millisecond),
		WithJitter(0),
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := Do(ctx, func(ctx context.Context) error {
			calls++
			return nil
		}, fastOpts(3)...)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries retryable errors until success", func(t *testing.T) {
		calls := 0
		err := Do(ctx, func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return Retryable(errors.New("transient"))
			}
			return nil
		}, fastOpts(5)...)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts with the original error", func(t *testing.T) {
		base := errors.New("still down")
		calls := 0
		err := Do(ctx, func(ctx context.Context) error {
			calls++
			return Retryable(base)
		}, fastOpts(3)...)
		assert.ErrorIs(t, err, base)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable error returns immediately", func(t *testing.T) {
		calls := 0
		err := Do(ctx, func(ctx context.Context) error {
			calls++
			return errors.New("permanent by default")
		}, fastOpts(3)...)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestDoWithData(t *testing.T) {
	calls := 0
	got, err := DoWithData(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, Retryable(errors.New("transient"))
		}
		return 42, nil
	}, fastOpts(3)...)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

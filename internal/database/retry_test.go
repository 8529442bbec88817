package database

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestPingWithRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		ping := func(context.Context) error {
			calls++
			if calls < 2 {
				return errors.New("connection refused")
			}
			return nil
		}
		if err := pingWithRetry(context.Background(), zerolog.Nop(), "test", ping); err != nil {
			t.Fatalf("pingWithRetry: %v", err)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		ping := func(context.Context) error {
			calls++
			cancel()
			return errors.New("down")
		}
		err := pingWithRetry(ctx, zerolog.Nop(), "test", ping)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})
}

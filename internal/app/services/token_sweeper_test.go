package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type expiredTokenStoreFunc func(ctx context.Context) error

func (f expiredTokenStoreFunc) DeleteExpiredTokens(ctx context.Context) error { return f(ctx) }

func TestTokenSweeper_Run(t *testing.T) {
	t.Run("sweeps immediately and again on each tick", func(t *testing.T) {
		calls := make(chan struct{}, 8)
		store := expiredTokenStoreFunc(func(_ context.Context) error {
			select {
			case calls <- struct{}{}:
			default:
			}
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sweeper := NewTokenSweeper(store, time.Millisecond, zerolog.Nop())
		go sweeper.Run(ctx)

		for i := 0; i < 2; i++ {
			select {
			case <-calls:
			case <-time.After(time.Second):
				t.Fatalf("sweep %d did not happen", i+1)
			}
		}
	})

	t.Run("a failed sweep does not stop the loop", func(t *testing.T) {
		calls := make(chan struct{}, 8)
		store := expiredTokenStoreFunc(func(_ context.Context) error {
			select {
			case calls <- struct{}{}:
			default:
			}
			return errors.New("connection reset")
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sweeper := NewTokenSweeper(store, time.Millisecond, zerolog.Nop())
		go sweeper.Run(ctx)

		for i := 0; i < 2; i++ {
			select {
			case <-calls:
			case <-time.After(time.Second):
				t.Fatalf("sweep %d did not happen", i+1)
			}
		}
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		store := expiredTokenStoreFunc(func(_ context.Context) error { return nil })

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		sweeper := NewTokenSweeper(store, time.Hour, zerolog.Nop())
		go func() {
			sweeper.Run(ctx)
			close(done)
		}()

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop after cancel")
		}
	})
}

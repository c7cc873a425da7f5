package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ExpiredTokenStore is the slice of token persistence the sweeper needs
type ExpiredTokenStore interface {
	DeleteExpiredTokens(ctx context.Context) error
}

// TokenSweeper periodically removes expired refresh tokens. Refresh tokens
// are only deleted on use or logout, so without the sweep the table grows
// with every abandoned session.
type TokenSweeper struct {
	tokens   ExpiredTokenStore
	interval time.Duration
	logger   zerolog.Logger
}

// NewTokenSweeper creates a new TokenSweeper
func NewTokenSweeper(tokens ExpiredTokenStore, interval time.Duration, logger zerolog.Logger) *TokenSweeper {
	return &TokenSweeper{
		tokens:   tokens,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every interval tick until ctx is
// cancelled. Sweep failures are logged and the loop keeps going.
func (s *TokenSweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *TokenSweeper) sweep(ctx context.Context) {
	if err := s.tokens.DeleteExpiredTokens(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete expired refresh tokens")
		return
	}
	s.logger.Debug().Msg("Expired refresh tokens deleted")
}

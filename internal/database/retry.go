package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	pingAttempts = 5
	pingTimeout  = 3 * time.Second
	pingBackoff  = 500 * time.Millisecond
)

// pingWithRetry calls ping until it succeeds, attempts run out or ctx ends.
// Containers often start before their database, so the first pings may fail.
func pingWithRetry(ctx context.Context, log zerolog.Logger, name string, ping func(context.Context) error) error {
	backoff := pingBackoff
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}

		log.Warn().Err(err).
			Str("target", name).
			Int("attempt", attempt).
			Dur("retry_in", backoff).
			Msg("Ping failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}

package worker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/config"
)

// TermRefresher reloads the course data of one term.
type TermRefresher interface {
	RefreshTerm(ctx context.Context, termCode string) error
}

// RefreshWorker consumes refresh_terms_queue and reloads term course data
// into the cache. Pending items are left in Redis on shutdown.
type RefreshWorker struct {
	rdb       *redis.Client
	refresher TermRefresher
	log       zerolog.Logger
}

// NewRefreshWorker creates a new RefreshWorker.
func NewRefreshWorker(rdb *redis.Client, refresher TermRefresher, log zerolog.Logger) *RefreshWorker {
	return &RefreshWorker{
		rdb:       rdb,
		refresher: refresher,
		log:       log.With().Str("component", "refresh_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *RefreshWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *RefreshWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.RefreshTermsQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			time.Sleep(time.Second)
		}
		return
	}

	if len(result) < 2 {
		return
	}
	w.process(ctx, result[1])
}

// process refreshes one queued term. Failures are logged and dropped; the
// next request for the term reloads it anyway.
func (w *RefreshWorker) process(ctx context.Context, termCode string) bool {
	termCode = strings.TrimSpace(termCode)
	if termCode == "" {
		return false
	}

	start := time.Now()
	if err := w.refresher.RefreshTerm(ctx, termCode); err != nil {
		w.log.Error().Err(err).Str("term", termCode).Msg("Refresh failed")
		return false
	}

	w.log.Info().Str("term", termCode).Dur("took", time.Since(start)).Msg("Term refreshed")
	return true
}

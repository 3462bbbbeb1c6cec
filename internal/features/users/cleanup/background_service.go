package users_cleanup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/util/metrics"
)

type ExpiredRefreshTokenRemover interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RefreshTokenCleanupBackgroundService periodically deletes refresh tokens
// that can no longer be rotated.
type RefreshTokenCleanupBackgroundService struct {
	remover  ExpiredRefreshTokenRemover
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const expiredTokensCleanupInterval = 1 * time.Hour

func (s *RefreshTokenCleanupBackgroundService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting refresh token cleanup worker",
		slog.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.cleanupWorker()
}

func (s *RefreshTokenCleanupBackgroundService) StopWorkers() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	s.wg.Wait()
}

func (s *RefreshTokenCleanupBackgroundService) ExecuteAllTasksForTest() error {
	_, err := s.removeExpiredTokens(context.Background())
	return err
}

func (s *RefreshTokenCleanupBackgroundService) cleanupWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Refresh token cleanup worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Refresh token cleanup worker shutting down")
			return

		case <-ticker.C:
			if _, err := s.removeExpiredTokens(s.ctx); err != nil {
				s.logger.Error("Error during refresh token cleanup", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *RefreshTokenCleanupBackgroundService) removeExpiredTokens(ctx context.Context) (int64, error) {
	removed, err := s.remover.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		metrics.ExpiredRefreshTokensRemoved.Add(float64(removed))
		s.logger.Info("Expired refresh tokens removed", slog.Int64("count", removed))
	}

	return removed, nil
}

package backup

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs periodic backups. Exports identical to the previous one
// are not written again.
type Scheduler struct {
	exporter *Exporter
	interval time.Duration
	logger   *zap.Logger

	last uint64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that runs exporter every interval.
func NewScheduler(exporter *Exporter, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		exporter: exporter,
		interval: interval,
		logger:   logger,
	}
}

// Start begins periodic backups. It runs one immediately, then on each tick.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current backup (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	s.backupOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.backupOnce(ctx)
		}
	}
}

func (s *Scheduler) backupOnce(ctx context.Context) {
	snap, err := s.exporter.Fetch(ctx)
	if err != nil {
		s.logger.Error("backup export failed", zap.Error(err))
		return
	}
	if snap.Fingerprint == s.last {
		s.logger.Debug("backup skipped, database unchanged", zap.Uint64("fingerprint", snap.Fingerprint))
		return
	}
	if err := s.exporter.Write(ctx, snap); err != nil {
		s.logger.Error("backup write failed", zap.String("name", snap.Name), zap.Error(err))
		return
	}
	s.last = snap.Fingerprint
	s.logger.Info("backup completed",
		zap.String("name", snap.Name),
		zap.Int("destinations", len(s.exporter.Destinations)),
		zap.Int("bytes", len(snap.Data)))
}

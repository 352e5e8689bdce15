package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper is anything that can drop its expired entries.
type Sweeper interface {
	ClearExpired() (int, error)
}

// Janitor periodically sweeps expired entries. Reads already purge lazily, so the sweep
// only keeps storage from filling up with entries nobody reads again.
type Janitor struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *zap.Logger
}

func NewJanitor(sweeper Sweeper, interval time.Duration, logger *zap.Logger) *Janitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Janitor{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.Named("Janitor"),
	}
}

// Run blocks, sweeping every interval, until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	if j.interval <= 0 {
		return
	}
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, er := j.sweeper.ClearExpired()
			if er != nil {
				j.logger.Error("sweep failed", zap.Error(er))
				continue
			}
			if n > 0 {
				j.logger.Info("swept expired entries", zap.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

package aggregation

import (
	"context"
	"log/slog"
	"time"
)

// DriftChecker periodically verifies the aggregates against the record store
// and rebuilds them when they disagree. It is stateless: each tick runs an
// independent Verify.
type DriftChecker struct {
	interval   time.Duration
	backfiller *Backfiller
}

// NewDriftChecker creates a checker running every interval.
func NewDriftChecker(interval time.Duration, backfiller *Backfiller) *DriftChecker {
	return &DriftChecker{interval: interval, backfiller: backfiller}
}

// Start runs until ctx is cancelled.
func (d *DriftChecker) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	slog.Info("[DriftCheck] Starting drift checker", "interval", d.interval)

	for {
		select {
		case <-ticker.C:
			d.check(ctx)
		case <-ctx.Done():
			slog.Info("[DriftCheck] Stopping (context cancelled)")
			return nil
		}
	}
}

func (d *DriftChecker) check(ctx context.Context) {
	report, err := d.backfiller.Verify(ctx)
	if err != nil {
		slog.Error("[DriftCheck] Verify failed", "error", err)
		return
	}
	if !report.Drifted {
		slog.Debug("[DriftCheck] Aggregates in sync")
		return
	}

	slog.Warn("[DriftCheck] Drift detected, rebuilding aggregates")
	if _, err := d.backfiller.Run(ctx); err != nil {
		slog.Error("[DriftCheck] Rebuild after drift failed", "error", err)
	}
}

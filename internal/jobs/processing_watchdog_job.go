package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"certify/internal/core/domain/model/order"
)

// ProcessingWatchdogJob surfaces orders whose reconstruction has been running
// longer than the configured threshold. It only logs; retrying is an operator
// decision, taken through the re-trigger endpoint.
type ProcessingWatchdogJob struct {
	db        *gorm.DB
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewProcessingWatchdogJob creates the watchdog.
// threshold is how long an order may sit in "Processing" before it is
// reported as stuck.
func NewProcessingWatchdogJob(db *gorm.DB, threshold time.Duration, logger *slog.Logger) *ProcessingWatchdogJob {
	return &ProcessingWatchdogJob{
		db:        db,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "processing_watchdog_job"),
	}
}

// Start schedules the watchdog to run every minute.
func (j *ProcessingWatchdogJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Processing watchdog run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Processing watchdog started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the watchdog.
func (j *ProcessingWatchdogJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Processing watchdog stopped")
}

func (j *ProcessingWatchdogJob) run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.threshold)

	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT id, updated_at
		FROM orders
		WHERE processing_status = ?
		  AND updated_at < ?
		ORDER BY updated_at
	`, int(order.ProcessingInProgress), cutoff).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        string
			updatedAt time.Time
		)
		if err = rows.Scan(&id, &updatedAt); err != nil {
			return err
		}

		j.logger.WarnContext(ctx, "Order stuck in processing",
			"orderId", id,
			"since", updatedAt.UTC().Format(time.RFC3339),
			"stalled", time.Since(updatedAt).Round(time.Second).String())
	}

	return rows.Err()
}

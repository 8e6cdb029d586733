package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"belediyeBack/internal/logger"
	"belediyeBack/internal/metrics"
)

const cleanerTimeout = time.Minute

// startCleaners schedules the periodic maintenance jobs. Stop the returned
// scheduler on shutdown.
func (app *application) startCleaners(ctx context.Context) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(app.location))

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) (int64, error)
	}{
		{name: "expire_ads", spec: "@every 15m", run: app.adService.ExpireAds},
		{name: "purge_sessions", spec: "@hourly", run: app.userService.PurgeSessions},
		{name: "prune_rate_limiters", spec: "@every 10m", run: func(context.Context) (int64, error) {
			return int64(app.limiter.prune(30 * time.Minute)), nil
		}},
	}

	for _, job := range jobs {
		_, err := c.AddFunc(job.spec, func() {
			runCtx, cancel := context.WithTimeout(ctx, cleanerTimeout)
			defer cancel()

			n, err := job.run(runCtx)
			if err != nil {
				app.log.Error("cleaner failed", logger.String("job", job.name), logger.Error(err))
				return
			}
			metrics.CleanupRowsTotal.WithLabelValues(job.name).Add(float64(n))
			if n > 0 {
				app.log.Info("cleaner done", logger.String("job", job.name), logger.Int64("rows", n))
			}
		})
		if err != nil {
			return nil, err
		}
	}

	c.Start()
	return c, nil
}

package worker

// Background goroutine that periodically enqueues an overdue-account sweep.
// The sweep itself is idempotent, so an extra run (manual trigger via the API,
// or a restart mid-interval) never corrupts anything.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartBarridoCron ticks every intervalHoras hours and enqueues a sweep job.
// It also enqueues one immediately on startup to catch accounts that went
// overdue while the server was down.
func StartBarridoCron(ctx context.Context, dispatcher *Dispatcher, intervalHoras int) {
	go func() {
		if err := dispatcher.EnqueueBarridoVencidas(ctx, time.Now()); err != nil {
			log.Error().Err(err).Msg("barrido_cron: initial enqueue failed")
		}

		ticker := time.NewTicker(time.Duration(intervalHoras) * time.Hour)
		defer ticker.Stop()

		log.Info().Int("interval_horas", intervalHoras).Msg("barrido_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("barrido_cron: shutting down")
				return
			case <-ticker.C:
				if err := dispatcher.EnqueueBarridoVencidas(ctx, time.Now()); err != nil {
					log.Error().Err(err).Msg("barrido_cron: enqueue failed")
				}
			}
		}
	}()
}

package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueVencimientos = "jobs:vencimientos"

// Job is the generic envelope for async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// BarridoPayload carries the reference date for an overdue sweep.
type BarridoPayload struct {
	Fecha time.Time `json:"fecha"`
}

// Dispatcher enqueues async jobs into Redis lists. The worker pool dequeues
// them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueBarridoVencidas pushes an overdue-sweep job to Redis.
func (d *Dispatcher) EnqueueBarridoVencidas(ctx context.Context, fecha time.Time) error {
	return d.enqueue(ctx, QueueVencimientos, "barrido_vencidas", BarridoPayload{Fecha: fecha})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the job queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, cuentaSvc service.CuentaService, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, cuentaSvc, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, cuentaSvc service.CuentaService, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueVencimientos).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, cuentaSvc, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, cuentaSvc service.CuentaService, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "barrido_vencidas":
		var payload BarridoPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			log.Error().Err(err).Msg("barrido_vencidas: bad payload")
			return
		}
		if payload.Fecha.IsZero() {
			payload.Fecha = time.Now()
		}
		n, err := cuentaSvc.MarcarVencidas(ctx, payload.Fecha)
		if err != nil {
			log.Error().Err(err).Msg("barrido_vencidas: sweep failed")
			return
		}
		log.Info().Int64("cuentas_vencidas", n).Msg("barrido_vencidas: sweep complete")
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
)

const (
	BatchSize    = 50
	BatchTimeout = 2 * time.Second
	PollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
)

// ProctorWorker drains the proctor event queue and persists events in
// batches. The request path only touches Redis; this worker owns the
// database writes.
type ProctorWorker struct {
	proctorRepo *repository.ProctorRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewProctorWorker creates a new ProctorWorker.
func NewProctorWorker(proctorRepo *repository.ProctorRepository, rdb *redis.Client, log zerolog.Logger) *ProctorWorker {
	return &ProctorWorker{
		proctorRepo: proctorRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "proctor_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled. Events are flushed
// when the buffer fills or the batch timeout elapses; a final flush runs on
// shutdown.
func (w *ProctorWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ProctorWorker started")

	buffer := make([]*service.ProctorEventPayload, 0, BatchSize)
	lastFlush := time.Now()

	for {
		if len(buffer) > 0 {
			if len(buffer) >= BatchSize || time.Since(lastFlush) >= BatchTimeout {
				w.flushSafe(ctx, buffer)
				buffer = buffer[:0]
				lastFlush = time.Now()
			}
		}

		select {
		case <-ctx.Done():
			w.shutdown(buffer)
			return
		default:
		}

		result, err := w.rdb.BLPop(ctx, PollTimeout, config.WorkerKey.ProctorEventsQueue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // Queue empty, loop back to check the flush timer
			}
			if ctx.Err() != nil {
				w.shutdown(buffer)
				return
			}
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			time.Sleep(3 * time.Second)
			continue
		}

		if len(result) < 2 {
			continue
		}

		var payload service.ProctorEventPayload
		if err := json.Unmarshal([]byte(result[1]), &payload); err != nil {
			// Malformed JSON can never succeed on retry. Log and discard.
			w.log.Error().Err(err).Str("data", result[1]).Msg("Discarding malformed proctor event")
			continue
		}

		buffer = append(buffer, &payload)
	}
}

// flushSafe attempts bulk insert, then falls back to row-by-row with requeue.
func (w *ProctorWorker) flushSafe(ctx context.Context, batch []*service.ProctorEventPayload) {
	events, bad := convertBatch(batch)
	for _, b := range bad {
		w.log.Error().Str("attempt_id", b.AttemptID).Str("exam_id", b.ExamID).
			Msg("Dropping proctor event with invalid UUID")
	}
	if len(events) == 0 {
		return
	}

	if err := w.proctorRepo.BulkInsert(ctx, events); err != nil {
		w.log.Warn().Err(err).Int("count", len(events)).
			Msg("Bulk insert failed, attempting row-by-row recovery")
		w.fallbackInsert(ctx, events)
	}
}

// convertBatch parses queue payloads into event rows, separating out
// payloads with unparseable IDs.
func convertBatch(batch []*service.ProctorEventPayload) ([]model.ProctorEvent, []*service.ProctorEventPayload) {
	events := make([]model.ProctorEvent, 0, len(batch))
	var bad []*service.ProctorEventPayload

	for _, p := range batch {
		attemptID, err := uuid.Parse(p.AttemptID)
		if err != nil {
			bad = append(bad, p)
			continue
		}
		examID, err := uuid.Parse(p.ExamID)
		if err != nil {
			bad = append(bad, p)
			continue
		}
		events = append(events, model.ProctorEvent{
			AttemptID:  attemptID,
			ExamID:     examID,
			StudentID:  p.StudentID,
			EventType:  model.ProctorEventType(p.EventType),
			Details:    p.Details,
			RecordedAt: time.Unix(p.Timestamp, 0),
		})
	}
	return events, bad
}

func (w *ProctorWorker) fallbackInsert(ctx context.Context, events []model.ProctorEvent) {
	var requeueList []model.ProctorEvent

	for i := range events {
		if err := w.proctorRepo.Insert(ctx, &events[i]); err != nil {
			w.log.Error().Err(err).Str("attempt_id", events[i].AttemptID.String()).
				Msg("Insert failed, requeueing")
			requeueList = append(requeueList, events[i])
		}
	}

	if len(requeueList) > 0 {
		w.requeue(ctx, requeueList)
	}
}

func (w *ProctorWorker) requeue(ctx context.Context, events []model.ProctorEvent) {
	pipe := w.rdb.Pipeline()
	for _, e := range events {
		payload := service.ProctorEventPayload{
			AttemptID: e.AttemptID.String(),
			ExamID:    e.ExamID.String(),
			StudentID: e.StudentID,
			EventType: string(e.EventType),
			Details:   e.Details,
			Timestamp: e.RecordedAt.Unix(),
		}
		data, _ := json.Marshal(payload)
		pipe.RPush(ctx, config.WorkerKey.ProctorEventsQueue, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		w.log.Error().Err(err).Msg("CRITICAL: Failed to requeue proctor events. Data loss occurred.")
		return
	}

	w.log.Info().Int("count", len(events)).Msg("Requeued failed proctor events")
	// Back off briefly so a hard-down database is not hammered.
	time.Sleep(2 * time.Second)
}

func (w *ProctorWorker) shutdown(buffer []*service.ProctorEventPayload) {
	w.log.Info().Msg("Worker stopping, flushing remaining buffer")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if len(buffer) > 0 {
		w.flushSafe(shutdownCtx, buffer)
	}
}

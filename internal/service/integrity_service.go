package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
)

// ProctorEventPayload is the wire shape carried through the Redis persist
// queue and the monitor PubSub channel.
type ProctorEventPayload struct {
	AttemptID string `json:"attempt_id"`
	ExamID    string `json:"exam_id"`
	StudentID int    `json:"student_id"`
	EventType string `json:"event_type"`
	Details   string `json:"details,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// MonitorEvent is one live invigilation notification on the exam's PubSub
// channel.
type MonitorEvent struct {
	Kind       string `json:"kind"` // event | forced_submit | forced_submit_failed
	StudentID  int    `json:"student_id"`
	AttemptID  string `json:"attempt_id"`
	EventType  string `json:"event_type,omitempty"`
	Violations int64  `json:"violations"`
	Timestamp  int64  `json:"timestamp"`
}

// StudentSnapshot is the per-student line of an invigilation snapshot.
type StudentSnapshot struct {
	StudentID     int    `json:"student_id"`
	AttemptID     string `json:"attempt_id"`
	Status        string `json:"status"`
	AnsweredCount int64  `json:"answered_count"`
	Violations    int64  `json:"violations"`
	LastHeartbeat *int64 `json:"last_heartbeat,omitempty"`
}

// IntegrityService ingests proctor events from in-progress attempts. Events
// are queued to Redis for asynchronous persistence; violation counts are
// tracked live and can force-submit an attempt past the exam's threshold.
type IntegrityService struct {
	cfg         *config.Config
	rdb         *redis.Client
	examRepo    *repository.ExamRepository
	attemptRepo *repository.AttemptRepository
	proctorRepo *repository.ProctorRepository
	submissions *SubmissionService
	log         zerolog.Logger
}

// NewIntegrityService creates a new IntegrityService.
func NewIntegrityService(
	cfg *config.Config,
	rdb *redis.Client,
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	proctorRepo *repository.ProctorRepository,
	submissions *SubmissionService,
	log zerolog.Logger,
) *IntegrityService {
	return &IntegrityService{
		cfg:         cfg,
		rdb:         rdb,
		examRepo:    examRepo,
		attemptRepo: attemptRepo,
		proctorRepo: proctorRepo,
		submissions: submissions,
		log:         log.With().Str("component", "integrity_service").Logger(),
	}
}

// RecordEvent ingests one proctor event for an attempt. Heartbeats refresh
// the liveness key; violations bump the live counter and, past the exam's
// threshold, force-submit the attempt. The event itself is queued for the
// persistence worker either way.
func (s *IntegrityService) RecordEvent(ctx context.Context, attemptID uuid.UUID, studentID int, req *model.HeartbeatRequest) (*model.HeartbeatAck, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch attempt: %w", err)
	}
	if attempt.StudentID != studentID {
		return nil, ErrNotFound
	}
	if attempt.Status == model.AttemptStatusCompleted {
		return nil, ErrAttemptCompleted
	}

	now := time.Now()
	payload := ProctorEventPayload{
		AttemptID: attemptID.String(),
		ExamID:    attempt.ExamID.String(),
		StudentID: studentID,
		EventType: req.EventType,
		Details:   req.Details,
		Timestamp: now.Unix(),
	}
	if err := s.enqueue(ctx, &payload); err != nil {
		return nil, fmt.Errorf("enqueue proctor event: %w", err)
	}

	ack := &model.HeartbeatAck{}

	switch model.ProctorEventType(req.EventType) {
	case model.ProctorEventHeartbeat:
		hbKey := config.CacheKey.AttemptHeartbeatKey(attemptID.String())
		if err := s.rdb.Set(ctx, hbKey, now.Unix(), 0).Err(); err != nil {
			s.log.Error().Err(err).Str("attempt_id", attemptID.String()).Msg("Failed to store heartbeat")
		}
		violations, err := s.rdb.Get(ctx, config.CacheKey.AttemptViolationsKey(attemptID.String())).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("read violation counter: %w", err)
		}
		ack.Violations = violations

	case model.ProctorEventViolation, model.ProctorEventFocusLoss:
		exam, err := s.examRepo.GetByID(ctx, attempt.ExamID)
		if err != nil {
			return nil, fmt.Errorf("fetch exam: %w", err)
		}

		countsAsViolation := true
		if model.ProctorEventType(req.EventType) == model.ProctorEventFocusLoss {
			// Focus losses are tolerated up to the exam's limit; every loss
			// past it counts as a violation.
			losses, err := s.rdb.Incr(ctx, config.CacheKey.AttemptFocusLossesKey(attemptID.String())).Result()
			if err != nil {
				return nil, fmt.Errorf("bump focus-loss counter: %w", err)
			}
			countsAsViolation = exam.Integrity.MaxFocusLosses > 0 && losses > int64(exam.Integrity.MaxFocusLosses)
		}

		violations, err := s.violationCount(ctx, attemptID, countsAsViolation)
		if err != nil {
			return nil, err
		}
		ack.Violations = violations

		threshold := int64(exam.Integrity.AutoSubmitViolations)
		if threshold > 0 && violations >= threshold {
			ack.ThresholdExceeded = true
			ack.ForcedSubmitted = s.forceSubmit(ctx, attempt, violations)
		}

	default:
		// Unknown client event types are persisted verbatim but do not
		// touch any counter.
	}

	s.publishMonitorEvent(ctx, attempt, MonitorEvent{
		Kind:       "event",
		StudentID:  studentID,
		AttemptID:  attemptID.String(),
		EventType:  req.EventType,
		Violations: ack.Violations,
		Timestamp:  now.Unix(),
	})

	return ack, nil
}

func (s *IntegrityService) violationCount(ctx context.Context, attemptID uuid.UUID, bump bool) (int64, error) {
	key := config.CacheKey.AttemptViolationsKey(attemptID.String())
	if bump {
		violations, err := s.rdb.Incr(ctx, key).Result()
		if err != nil {
			return 0, fmt.Errorf("bump violation counter: %w", err)
		}
		return violations, nil
	}
	violations, err := s.rdb.Get(ctx, key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("read violation counter: %w", err)
	}
	return violations, nil
}

func (s *IntegrityService) enqueue(ctx context.Context, payload *ProctorEventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, config.WorkerKey.ProctorEventsQueue, data).Err()
}

// forceSubmit runs the attempt through the ordinary submission path. An
// incomplete sheet fails completeness like any other submit; the failure is
// logged and surfaced on the monitor channel, and the next violation retries.
func (s *IntegrityService) forceSubmit(ctx context.Context, attempt *model.Attempt, violations int64) bool {
	_, err := s.submissions.Submit(ctx, attempt.ID, attempt.StudentID)
	if err != nil {
		if errors.Is(err, ErrAttemptCompleted) {
			return true
		}
		s.log.Error().Err(err).Str("attempt_id", attempt.ID.String()).
			Int64("violations", violations).Msg("Forced submit failed")
		s.publishMonitorEvent(ctx, attempt, MonitorEvent{
			Kind:       "forced_submit_failed",
			StudentID:  attempt.StudentID,
			AttemptID:  attempt.ID.String(),
			Violations: violations,
			Timestamp:  time.Now().Unix(),
		})
		return false
	}

	s.log.Warn().Str("attempt_id", attempt.ID.String()).Int("student_id", attempt.StudentID).
		Int64("violations", violations).Msg("Attempt force-submitted past violation threshold")
	s.publishMonitorEvent(ctx, attempt, MonitorEvent{
		Kind:       "forced_submit",
		StudentID:  attempt.StudentID,
		AttemptID:  attempt.ID.String(),
		Violations: violations,
		Timestamp:  time.Now().Unix(),
	})
	return true
}

func (s *IntegrityService) publishMonitorEvent(ctx context.Context, attempt *model.Attempt, ev MonitorEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	channel := config.CacheKey.ExamMonitorChannel(attempt.ExamID.String())
	if err := s.rdb.Publish(ctx, channel, data).Err(); err != nil {
		s.log.Error().Err(err).Str("channel", channel).Msg("Failed to publish monitor event")
	}
}

// Snapshot assembles the current invigilation view of an exam: every
// attempt with its answered count, violation tally, and last heartbeat.
func (s *IntegrityService) Snapshot(ctx context.Context, examID uuid.UUID) ([]StudentSnapshot, error) {
	attempts, err := s.attemptRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	answered, err := s.proctorRepo.GetAnsweredCounts(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("answered counts: %w", err)
	}

	snapshots := make([]StudentSnapshot, 0, len(attempts))
	for _, a := range attempts {
		snap := StudentSnapshot{
			StudentID:     a.StudentID,
			AttemptID:     a.ID.String(),
			Status:        string(a.Status),
			AnsweredCount: answered[a.StudentID],
		}

		violations, err := s.rdb.Get(ctx, config.CacheKey.AttemptViolationsKey(a.ID.String())).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("read violation counter: %w", err)
		}
		if violations == 0 {
			// Counter may have expired with the Redis instance; fall back
			// to the durable tally.
			violations, err = s.proctorRepo.CountViolations(ctx, a.ID)
			if err != nil {
				return nil, fmt.Errorf("count violations: %w", err)
			}
		}
		snap.Violations = violations

		if hb, err := s.rdb.Get(ctx, config.CacheKey.AttemptHeartbeatKey(a.ID.String())).Int64(); err == nil {
			snap.LastHeartbeat = &hb
		}

		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

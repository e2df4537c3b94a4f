package model

import (
	"time"

	"github.com/google/uuid"
)

// ProctorEventType classifies integrity/liveness signals. Unknown client
// types are stored as-is; only "violation" affects the forced-submit counter.
type ProctorEventType string

const (
	ProctorEventHeartbeat ProctorEventType = "heartbeat"
	ProctorEventFocusLoss ProctorEventType = "focus_loss"
	ProctorEventViolation ProctorEventType = "violation"
)

// ProctorEvent is an append-only integrity log entry tied to an attempt.
// Rows are never updated or deleted.
type ProctorEvent struct {
	ID         int64            `json:"id"`
	AttemptID  uuid.UUID        `json:"attempt_id"`
	ExamID     uuid.UUID        `json:"exam_id"`
	StudentID  int              `json:"student_id"`
	EventType  ProctorEventType `json:"event_type"`
	Details    string           `json:"details,omitempty"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// HeartbeatRequest is the payload of a liveness/violation report from an
// in-progress attempt.
type HeartbeatRequest struct {
	EventType string `json:"event_type" binding:"required,min=2,max=40"`
	Details   string `json:"details" binding:"omitempty,max=2000"`
}

// HeartbeatAck reports the violation counter state back to the client.
type HeartbeatAck struct {
	Violations        int64 `json:"violations"`
	ThresholdExceeded bool  `json:"threshold_exceeded"`
	ForcedSubmitted   bool  `json:"forced_submitted"`
}

package worker

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
)

func TestConvertBatch(t *testing.T) {
	attemptID := uuid.New()
	examID := uuid.New()
	ts := time.Now().Unix()

	batch := []*service.ProctorEventPayload{
		{
			AttemptID: attemptID.String(),
			ExamID:    examID.String(),
			StudentID: 7,
			EventType: "heartbeat",
			Timestamp: ts,
		},
		{
			AttemptID: "not-a-uuid",
			ExamID:    examID.String(),
			StudentID: 8,
			EventType: "violation",
			Timestamp: ts,
		},
		{
			AttemptID: attemptID.String(),
			ExamID:    "also-bad",
			StudentID: 9,
			EventType: "focus_loss",
			Timestamp: ts,
		},
	}

	events, bad := convertBatch(batch)

	if len(events) != 1 {
		t.Fatalf("expected 1 parsed event, got %d", len(events))
	}
	if len(bad) != 2 {
		t.Fatalf("expected 2 rejected payloads, got %d", len(bad))
	}

	e := events[0]
	if e.AttemptID != attemptID || e.ExamID != examID {
		t.Errorf("IDs not carried through: %+v", e)
	}
	if e.EventType != model.ProctorEventHeartbeat {
		t.Errorf("expected heartbeat event type, got %s", e.EventType)
	}
	if e.RecordedAt.Unix() != ts {
		t.Errorf("timestamp mismatch: got %d want %d", e.RecordedAt.Unix(), ts)
	}

	if bad[0].StudentID != 8 || bad[1].StudentID != 9 {
		t.Errorf("wrong payloads rejected: %+v", bad)
	}
}

func TestConvertBatchEmpty(t *testing.T) {
	events, bad := convertBatch(nil)
	if len(events) != 0 || len(bad) != 0 {
		t.Fatalf("expected empty results, got %d events, %d bad", len(events), len(bad))
	}
}

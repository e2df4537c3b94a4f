package examwindow

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEvaluate(t *testing.T) {
	karachi, err := time.LoadLocation("Asia/Karachi")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	start := ts("2026-03-10T09:00:00+05:00")
	end := ts("2026-03-10T11:00:00+05:00")

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		duration time.Duration
		now      time.Time
		want     State
	}{
		{name: "before start", start: &start, end: &end, now: ts("2026-03-10T08:59:00+05:00"), want: StateScheduled},
		{name: "at start", start: &start, end: &end, now: start, want: StateOpen},
		{name: "mid window", start: &start, end: &end, now: ts("2026-03-10T10:00:00+05:00"), want: StateOpen},
		{name: "at explicit end", start: &start, end: &end, now: end, want: StateOpen},
		{name: "after explicit end", start: &start, end: &end, now: ts("2026-03-10T11:00:01+05:00"), want: StateClosed},
		{name: "derived end from duration", start: &start, duration: 90 * time.Minute, now: ts("2026-03-10T10:29:00+05:00"), want: StateOpen},
		{name: "after derived end", start: &start, duration: 90 * time.Minute, now: ts("2026-03-10T10:31:00+05:00"), want: StateClosed},
		{name: "explicit end wins over duration", start: &start, end: &end, duration: time.Minute, now: ts("2026-03-10T10:00:00+05:00"), want: StateOpen},
		{name: "no schedule at all is open", now: ts("2026-03-10T10:00:00+05:00"), want: StateOpen},
		{name: "no start honors a future end", end: &end, now: ts("2026-03-10T10:00:00+05:00"), want: StateOpen},
		{name: "no start honors a past end", end: &end, now: ts("2026-06-01T00:00:00+05:00"), want: StateClosed},
		{name: "no end and no duration never closes", start: &start, now: ts("2027-01-01T00:00:00+05:00"), want: StateOpen},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.start, tc.end, tc.duration, tc.now, karachi)
			if got.State != tc.want {
				t.Fatalf("Evaluate() state = %s, want %s", got.State, tc.want)
			}
			if got.Label == "" {
				t.Fatal("Evaluate() returned empty label")
			}
		})
	}
}

func TestEvaluateLabels(t *testing.T) {
	karachi, _ := time.LoadLocation("Asia/Karachi")
	start := ts("2026-03-10T09:00:00+05:00")
	end := ts("2026-03-10T11:00:00+05:00")

	w := Evaluate(&start, &end, 0, ts("2026-03-10T08:00:00+05:00"), karachi)
	if w.Label != "opens 10 Mar 2026 09:00" {
		t.Errorf("scheduled label = %q", w.Label)
	}

	w = Evaluate(&start, &end, 0, ts("2026-03-10T12:00:00+05:00"), karachi)
	if w.Label != "closed at 10 Mar 2026 11:00" {
		t.Errorf("closed label = %q", w.Label)
	}

	w = Evaluate(&start, &end, 0, ts("2026-03-10T10:00:00+05:00"), karachi)
	if w.Label != "closes 10 Mar 2026 11:00" {
		t.Errorf("open label = %q", w.Label)
	}
}

func TestEditLock(t *testing.T) {
	activated := ts("2026-03-10T09:00:00+05:00")
	lock := EditLock{ActivatedAt: activated, Grace: 15 * time.Minute}

	if !lock.Open(activated) {
		t.Error("lock should be open at activation")
	}
	if !lock.Open(activated.Add(15 * time.Minute)) {
		t.Error("lock should be open at the grace boundary")
	}
	if lock.Open(activated.Add(15*time.Minute + time.Second)) {
		t.Error("lock should be closed after the grace period")
	}
	if got := lock.ClosesAt(); !got.Equal(activated.Add(15 * time.Minute)) {
		t.Errorf("ClosesAt() = %v", got)
	}
}

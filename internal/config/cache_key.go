package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session.
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:student:%d", studentID)
}

// AttemptViolationsKey returns the cache key counting integrity violations
// recorded against one exam attempt.
func (r *CacheKeyStruct) AttemptViolationsKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:violations", attemptID)
}

// AttemptFocusLossesKey returns the cache key counting focus-loss events
// recorded against one exam attempt.
func (r *CacheKeyStruct) AttemptFocusLossesKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:focus_losses", attemptID)
}

// AttemptHeartbeatKey returns the cache key holding the last heartbeat
// instant for one exam attempt.
func (r *CacheKeyStruct) AttemptHeartbeatKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:last_heartbeat", attemptID)
}

// ExamMonitorChannel returns the Redis PubSub channel name carrying live
// invigilation events for an exam.
func (r *CacheKeyStruct) ExamMonitorChannel(examID string) string {
	return fmt.Sprintf("exam:%s:monitor", examID)
}

var CacheKey = NewCacheKeyStruct()

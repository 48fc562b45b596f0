package ratelimit

import (
	"fmt"
	"time"
)

// Limits for well-known operations
const (
	// syncKey ключ операции синхронизации (общий для всего клиента)
	syncKey = "sync_operation"

	// SyncMaxAttempts максимум запусков синхронизации в окне
	SyncMaxAttempts = 3

	// SyncWindow окно для попыток синхронизации
	SyncWindow = 30 * time.Second

	// SubmissionMaxAttempts максимум отправок формы одним пользователем в окне
	SubmissionMaxAttempts = 10

	// SubmissionWindow окно для отправок формы
	SubmissionWindow = time.Minute
)

// CheckSync reports whether a sync run is currently allowed
func (l *Limiter) CheckSync() Result {
	return l.Check(syncKey, SyncMaxAttempts, SyncWindow)
}

// RecordSync registers a sync attempt
func (l *Limiter) RecordSync() Result {
	return l.Record(syncKey, SyncMaxAttempts, SyncWindow)
}

// CheckSubmission reports whether the user may submit another record
func (l *Limiter) CheckSubmission(userID string) Result {
	return l.Check(submissionKey(userID), SubmissionMaxAttempts, SubmissionWindow)
}

// RecordSubmission registers a form submission for the user
func (l *Limiter) RecordSubmission(userID string) Result {
	return l.Record(submissionKey(userID), SubmissionMaxAttempts, SubmissionWindow)
}

func submissionKey(userID string) string {
	return fmt.Sprintf("form_submission_%s", userID)
}

package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that lunch record was not found
	ErrRecordNotFound = errors.New("lunch record not found")

	// ErrQueueItemNotFound indicates that sync queue item was not found
	ErrQueueItemNotFound = errors.New("sync queue item not found")

	// ErrCacheMiss indicates that cache entry is absent or expired
	ErrCacheMiss = errors.New("cache entry not found or expired")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)

package storage

import (
	"context"
	"time"
)

// CacheStorage определяет интерфейс read-through кэша справочных данных
// (например, списка пользователей), чтобы сократить обращения к серверу
// и позволить работу офлайн.
type CacheStorage interface {
	// PutCache сохраняет значение по ключу с текущим временем
	PutCache(ctx context.Context, key string, value []byte) error

	// GetCache возвращает значение если оно не старше maxAge.
	// Возвращает ErrCacheMiss если значения нет или оно устарело;
	// устаревшее значение при этом удаляется из кэша.
	GetCache(ctx context.Context, key string, maxAge time.Duration) ([]byte, error)
}

// Package data реализует клиентские операции над доменными данными:
// офлайн-сохранение записей об обедах и кэширование справочника
// пользователей.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/lunchsync/internal/client/remote"
	"github.com/iudanet/lunchsync/internal/client/storage"
	"github.com/iudanet/lunchsync/internal/models"
)

const (
	// userCacheKey ключ справочника пользователей в кэше
	userCacheKey = "users"

	// DefaultUserCacheAge возраст, после которого кэш справочника
	// считается устаревшим
	DefaultUserCacheAge = 30 * time.Minute
)

// Storage объединяет операции локального хранилища, нужные сервису
type Storage interface {
	storage.RecordStorage
	storage.QueueStorage
	storage.CacheStorage
}

// Service определяет интерфейс клиентского data сервиса
type Service interface {
	// SaveRecordOffline сохраняет запись локально и ставит мутацию в очередь
	SaveRecordOffline(ctx context.Context, record *models.LunchRecord) (*models.LunchRecord, error)

	// RefreshUserCache запрашивает справочник пользователей с сервера
	// и обновляет локальный кэш
	RefreshUserCache(ctx context.Context) ([]models.User, error)

	// CachedUsers возвращает справочник из кэша, если он не старше maxAge
	CachedUsers(ctx context.Context, maxAge time.Duration) ([]models.User, error)
}

// service handles client-side domain data operations
type service struct {
	store  Storage
	remote remote.Store
	now    func() time.Time
}

// NewService creates a new data service
func NewService(store Storage, remoteStore remote.Store) Service {
	return &service{
		store:  store,
		remote: remoteStore,
		now:    time.Now,
	}
}

// SaveRecordOffline persists a lunch record locally and enqueues the
// insert mutation for a later sync run.
// Идентификатор генерируется на клиенте: удалённое хранилище обязано
// иметь unique constraint по нему, чтобы повторная вставка не создала
// дубликат.
func (s *service) SaveRecordOffline(ctx context.Context, record *models.LunchRecord) (*models.LunchRecord, error) {
	// Генерируем ID если не задан
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	now := s.now().UTC()
	record.Synced = false
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.store.SaveRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save record locally: %w", err)
	}

	// Payload несёт клиентский ID - по нему движок синхронизации
	// найдет локальную запись после успешного применения
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record payload: %w", err)
	}

	if _, err := s.store.Enqueue(ctx, models.ActionInsert, models.CollectionLunchRecords, payload); err != nil {
		return nil, fmt.Errorf("failed to enqueue record mutation: %w", err)
	}

	return record, nil
}

// RefreshUserCache pulls the user directory and stores it in the cache
func (s *service) RefreshUserCache(ctx context.Context) ([]models.User, error) {
	users, err := s.remote.SelectUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	data, err := json.Marshal(users)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal users: %w", err)
	}

	if err := s.store.PutCache(ctx, userCacheKey, data); err != nil {
		return nil, fmt.Errorf("failed to cache users: %w", err)
	}

	return users, nil
}

// CachedUsers returns the cached user directory if it is fresh enough.
// Возвращает storage.ErrCacheMiss если кэша нет или он устарел.
func (s *service) CachedUsers(ctx context.Context, maxAge time.Duration) ([]models.User, error) {
	data, err := s.store.GetCache(ctx, userCacheKey, maxAge)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached users: %w", err)
	}

	return users, nil
}

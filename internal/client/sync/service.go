// Package sync реализует движок синхронизации: применение отложенных
// мутаций из локальной очереди к удалённому хранилищу с ограниченным
// количеством повторов.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/lunchsync/internal/client/remote"
	"github.com/iudanet/lunchsync/internal/client/storage"
	"github.com/iudanet/lunchsync/internal/models"
)

const (
	// MaxRetries максимальное количество попыток применения одного элемента.
	// После исчерпания элемент становится окончательно неуспешным и
	// требует явного сброса через RetryFailed.
	MaxRetries = 3

	// itemDelay фиксированная пауза между элементами внутри одного прогона.
	// Пауза плоская, без экспоненциального backoff - защита от всплеска
	// запросов к серверу, а не стратегия повторов (повторы считаются
	// между прогонами через retries).
	itemDelay = 100 * time.Millisecond
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс движка синхронизации
type Service interface {
	// Sync применяет все ожидающие элементы очереди к удалённому хранилищу
	Sync(ctx context.Context, onProgress func(Progress)) (*models.SyncResult, error)

	// RetryFailed сбрасывает счетчики попыток окончательно неуспешных
	// элементов, возвращая их в состояние ожидания
	RetryFailed(ctx context.Context) (int, error)

	// Status возвращает агрегированное состояние очереди синхронизации
	Status(ctx context.Context) (*models.SyncStatus, error)
}

// Progress описывает ход прогона синхронизации для отображения в UI
type Progress struct {
	Item    *models.SyncQueueItem // Item текущий обрабатываемый элемент
	Current int                   // Current номер элемента в прогоне (с 1)
	Total   int                   // Total всего элементов в прогоне
}

// Storage объединяет операции локального хранилища, нужные движку
type Storage interface {
	storage.QueueStorage
	storage.RecordStorage
}

// service handles queue drain against the remote store
type service struct {
	store      Storage
	remote     remote.Store
	logger     *slog.Logger
	maxRetries int
	delay      time.Duration
}

// NewService creates a new sync service
func NewService(store Storage, remoteStore remote.Store, logger *slog.Logger) Service {
	return &service{
		store:      store,
		remote:     remoteStore,
		logger:     logger,
		maxRetries: MaxRetries,
		delay:      itemDelay,
	}
}

// Sync drains the pending queue items against the remote store.
// Элементы обрабатываются последовательно в FIFO порядке: более ранние
// мутации одной сущности применяются раньше поздних. Ошибка применения
// одного элемента не прерывает прогон - она изолируется в результате.
// Ошибка самого локального хранилища прерывает прогон: ему больше
// нельзя доверять.
func (s *service) Sync(ctx context.Context, onProgress func(Progress)) (*models.SyncResult, error) {
	items, err := s.store.ListQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync queue: %w", err)
	}

	// Отбираем элементы с неисчерпанным лимитом попыток
	pending := make([]*models.SyncQueueItem, 0, len(items))
	for _, item := range items {
		if item.Retries < s.maxRetries {
			pending = append(pending, item)
		}
	}

	s.logger.Info("Starting sync run", "pending", len(pending), "total", len(items))

	result := &models.SyncResult{}

	for i, item := range pending {
		if onProgress != nil {
			onProgress(Progress{
				Current: i + 1,
				Total:   len(pending),
				Item:    item,
			})
		}

		applyErr := s.applyItem(ctx, item)

		switch {
		case applyErr == nil:
			if err := s.finishItem(ctx, item); err != nil {
				return result, err
			}
			result.Success++

		case errors.Is(applyErr, remote.ErrDuplicate):
			// Запись уже есть на сервере: предыдущая попытка применилась,
			// но ответ был потерян. Трактуем как успех, иначе элемент
			// застрянет в очереди навсегда.
			s.logger.Info("Duplicate on remote, treating as applied", "item_id", item.ID)
			if err := s.finishItem(ctx, item); err != nil {
				return result, err
			}
			result.Success++

		default:
			s.logger.Warn("Failed to apply queue item",
				"item_id", item.ID,
				"retries", item.Retries+1,
				"error", applyErr)

			retries := item.Retries + 1
			if err := s.store.UpdateQueueItem(ctx, item.ID, retries, applyErr.Error()); err != nil {
				return result, fmt.Errorf("failed to update queue item %d: %w", item.ID, err)
			}
			item.Retries = retries
			item.LastError = applyErr.Error()

			if retries >= s.maxRetries {
				result.Failed++
				result.Errors = append(result.Errors, models.SyncError{
					Item: item,
					Err:  applyErr.Error(),
				})
			} else {
				result.Skipped++
			}
		}

		// Пауза между элементами, после последнего не нужна
		if i < len(pending)-1 {
			time.Sleep(s.delay)
		}
	}

	s.logger.Info("Sync run completed",
		"success", result.Success,
		"failed", result.Failed,
		"skipped", result.Skipped)

	return result, nil
}

// applyItem выполняет удалённую операцию, соответствующую элементу очереди
func (s *service) applyItem(ctx context.Context, item *models.SyncQueueItem) error {
	switch item.Action {
	case models.ActionInsert:
		return s.remote.Insert(ctx, item.Collection, item.Payload)
	case models.ActionUpdate:
		return s.remote.Update(ctx, item.Collection, item.Payload)
	default:
		return fmt.Errorf("unsupported action: %s", item.Action)
	}
}

// finishItem завершает успешно применённый элемент: удаляет его из
// очереди и помечает локальную запись синхронизированной, если payload
// несёт клиентский ID
func (s *service) finishItem(ctx context.Context, item *models.SyncQueueItem) error {
	if err := s.store.DeleteQueueItem(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to delete queue item %d: %w", item.ID, err)
	}

	if item.Collection != models.CollectionLunchRecords {
		return nil
	}

	id := payloadID(item.Payload)
	if id == "" {
		return nil
	}

	if err := s.store.MarkRecordSynced(ctx, id); err != nil {
		return fmt.Errorf("failed to mark record %s synced: %w", id, err)
	}

	return nil
}

// payloadID извлекает клиентский идентификатор записи из payload
func payloadID(payload json.RawMessage) string {
	var p struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return ""
	}
	return p.ID
}

// RetryFailed resets retry bookkeeping on permanently failed items.
// Движок не запускает синхронизацию сам - решение остаётся за вызывающим.
func (s *service) RetryFailed(ctx context.Context) (int, error) {
	items, err := s.store.ListQueue(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sync queue: %w", err)
	}

	count := 0
	for _, item := range items {
		if item.Retries < s.maxRetries {
			continue
		}

		if err := s.store.UpdateQueueItem(ctx, item.ID, 0, ""); err != nil {
			return count, fmt.Errorf("failed to reset queue item %d: %w", item.ID, err)
		}
		count++
	}

	s.logger.Info("Reset failed queue items", "count", count)

	return count, nil
}

// Status recomputes the aggregated queue state on demand
func (s *service) Status(ctx context.Context) (*models.SyncStatus, error) {
	items, err := s.store.ListQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync queue: %w", err)
	}

	status := &models.SyncStatus{
		Items: items,
		Total: len(items),
	}

	for _, item := range items {
		if item.Retries >= s.maxRetries {
			status.Failed++
		} else {
			status.Pending++
		}
	}

	return status, nil
}

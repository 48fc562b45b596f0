package storage

import (
	"context"
	"encoding/json"

	"github.com/iudanet/lunchsync/internal/models"
)

// QueueStorage определяет интерфейс durable очереди синхронизации.
// Очередь хранит отложенные мутации, которые движок синхронизации
// применяет к удалённому хранилищу в порядке добавления.
type QueueStorage interface {
	// Enqueue добавляет мутацию в конец очереди.
	// Идентификатор назначается хранилищем атомарно и монотонно:
	// два конкурентных вызова никогда не получат одинаковый ID.
	Enqueue(ctx context.Context, action, collection string, payload json.RawMessage) (*models.SyncQueueItem, error)

	// ListQueue возвращает все элементы очереди в FIFO порядке
	// (по возрастанию времени постановки в очередь)
	ListQueue(ctx context.Context) ([]*models.SyncQueueItem, error)

	// UpdateQueueItem обновляет счетчик попыток и текст последней ошибки.
	// Возвращает ErrQueueItemNotFound если элемента нет.
	UpdateQueueItem(ctx context.Context, id uint64, retries int, lastError string) error

	// DeleteQueueItem удаляет элемент очереди (после успешного применения)
	DeleteQueueItem(ctx context.Context, id uint64) error

	// ClearQueue удаляет все элементы очереди (ручной сброс).
	// Возвращает количество удалённых элементов.
	ClearQueue(ctx context.Context) (int, error)
}

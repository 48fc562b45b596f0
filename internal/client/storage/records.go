package storage

import (
	"context"

	"github.com/iudanet/lunchsync/internal/models"
)

// RecordStorage определяет интерфейс локального хранилища записей об обедах.
// Записи сохраняются локально при работе офлайн и помечаются synced
// после успешного применения к удалённому хранилищу.
type RecordStorage interface {
	// SaveRecord сохраняет запись локально (создание или полная перезапись)
	SaveRecord(ctx context.Context, record *models.LunchRecord) error

	// GetRecord возвращает запись по ID
	// Возвращает ErrRecordNotFound если записи нет
	GetRecord(ctx context.Context, id string) (*models.LunchRecord, error)

	// ListRecords возвращает все локальные записи
	ListRecords(ctx context.Context) ([]*models.LunchRecord, error)

	// MarkRecordSynced помечает запись как синхронизированную.
	// Если записи с таким ID нет локально (запись была создана напрямую
	// на сервере) - это не ошибка, операция завершается успешно.
	MarkRecordSynced(ctx context.Context, id string) error
}

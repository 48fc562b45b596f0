package storage

import (
	"context"

	"github.com/iudanet/lunchsync/internal/models"
)

// RecordStorage определяет интерфейс серверного хранилища записей
type RecordStorage interface {
	// InsertRecord создает запись.
	// Возвращает ErrDuplicateRecord если запись с таким ID уже есть.
	InsertRecord(ctx context.Context, record *models.LunchRecord) error

	// UpdateRecord обновляет существующую запись по ID.
	// Возвращает ErrRecordNotFound если записи нет.
	UpdateRecord(ctx context.Context, record *models.LunchRecord) error

	// ListRecords возвращает записи с опциональными фильтрами по
	// пользователю и дате (пустая строка - без фильтра)
	ListRecords(ctx context.Context, userID, date string) ([]*models.LunchRecord, error)
}

// UserStorage определяет интерфейс справочника пользователей
type UserStorage interface {
	// ListUsers возвращает всех пользователей справочника
	ListUsers(ctx context.Context) ([]*models.User, error)
}

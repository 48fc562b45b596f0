// Package remote определяет контракт удалённого хранилища, к которому
// движок синхронизации применяет отложенные мутации.
package remote

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/iudanet/lunchsync/internal/models"
)

//go:generate moq -out store_mock.go . Store

// Store определяет интерфейс удалённого хранилища.
// Требование к реализации: вставка с уже существующим клиентским ID
// должна возвращать ErrDuplicate, а не создавать дубликат - на этом
// держится идемпотентность повторных попыток синхронизации.
type Store interface {
	// Insert создает запись в коллекции.
	// Возвращает ErrDuplicate если запись с таким ID уже есть.
	Insert(ctx context.Context, collection string, payload json.RawMessage) error

	// Update обновляет существующую запись в коллекции по ID из payload
	Update(ctx context.Context, collection string, payload json.RawMessage) error

	// SelectUsers возвращает справочник пользователей
	SelectUsers(ctx context.Context) ([]models.User, error)

	// Ping проверяет доступность удалённого хранилища
	Ping(ctx context.Context) error
}

// Remote store errors
var (
	// ErrDuplicate indicates that a record with this ID already exists.
	// Для движка синхронизации это эквивалент успеха: запись уже
	// применена предыдущей попыткой, ответ которой был потерян.
	ErrDuplicate = errors.New("record already exists")

	// ErrUnknownCollection indicates that the collection is not supported
	ErrUnknownCollection = errors.New("unknown collection")
)

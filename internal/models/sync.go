package models

import (
	"encoding/json"
	"time"
)

// Allowed sync queue actions
const (
	// ActionInsert создание новой записи в удалённом хранилище
	ActionInsert = "insert"

	// ActionUpdate обновление существующей записи
	ActionUpdate = "update"
)

// CollectionLunchRecords имя коллекции записей об обедах в удалённом хранилище
const CollectionLunchRecords = "lunch_records"

// SyncQueueItem представляет одну отложенную мутацию в очереди синхронизации.
// Очередь durable: элементы переживают перезапуск клиента и обрабатываются
// строго в порядке добавления (FIFO).
type SyncQueueItem struct {
	EnqueuedAt time.Time       `json:"enqueued_at"` // EnqueuedAt время постановки в очередь
	Action     string          `json:"action"`      // Action тип мутации (insert, update)
	Collection string          `json:"collection"`  // Collection целевая коллекция удалённого хранилища
	LastError  string          `json:"last_error"`  // LastError текст последней ошибки применения (пусто если не было)
	Payload    json.RawMessage `json:"payload"`     // Payload данные мутации в исходном виде
	ID         uint64          `json:"id"`          // ID монотонный идентификатор, назначается хранилищем
	Retries    int             `json:"retries"`     // Retries количество неудачных попыток применения
}

// SyncStatus представляет агрегированное состояние очереди синхронизации.
// Вычисляется по запросу из содержимого очереди, нигде не хранится.
type SyncStatus struct {
	Items   []*SyncQueueItem `json:"items"`   // Items все элементы очереди в FIFO порядке
	Total   int              `json:"total"`   // Total общее количество элементов
	Pending int              `json:"pending"` // Pending элементы, ожидающие попытки (retries < max)
	Failed  int              `json:"failed"`  // Failed элементы с исчерпанным лимитом попыток
}

// SyncError описывает элемент очереди, окончательно не прошедший синхронизацию
type SyncError struct {
	Item *SyncQueueItem `json:"item"`  // Item проблемный элемент очереди
	Err  string         `json:"error"` // Err текст ошибки последней попытки
}

// SyncResult contains the tally of a single sync run
type SyncResult struct {
	Errors  []SyncError `json:"errors"`  // Errors элементы, исчерпавшие лимит попыток в этом прогоне
	Success int         `json:"success"` // Success успешно применённые элементы
	Failed  int         `json:"failed"`  // Failed элементы, ставшие окончательно неуспешными
	Skipped int         `json:"skipped"` // Skipped неудачные попытки, которые будут повторены позже
}

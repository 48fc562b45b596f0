// Package monitor реализует наблюдение за связью с сервером и
// оркестрацию запусков синхронизации: автозапуск при восстановлении
// сети, периодический пересчет статуса очереди, ручные запуски
// с учетом ограничителя частоты и single-flight guard.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/iudanet/lunchsync/internal/client/remote"
	"github.com/iudanet/lunchsync/internal/client/sync"
	"github.com/iudanet/lunchsync/internal/models"
	"github.com/iudanet/lunchsync/internal/ratelimit"
)

const (
	// DefaultProbeInterval период проверки доступности сервера
	DefaultProbeInterval = 5 * time.Second

	// DefaultPollInterval период пересчета статуса очереди для отображения
	DefaultPollInterval = 5 * time.Second

	// probeTimeout таймаут одной проверки доступности
	probeTimeout = 3 * time.Second
)

// Orchestrator errors
var (
	// ErrOffline indicates that the server is currently unreachable
	ErrOffline = errors.New("server is offline")

	// ErrSyncInFlight indicates that a sync run is already executing
	ErrSyncInFlight = errors.New("sync already in progress")
)

// RateLimitError возвращается когда запуск синхронизации отклонен
// ограничителем частоты. Это не сбой, а политика: состояние очереди
// не меняется, пользователю показывается время ожидания.
type RateLimitError struct {
	RetryAfter int // RetryAfter секунд до следующей разрешенной попытки
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("sync rate limited, retry after %d seconds", e.RetryAfter)
}

// Message возвращает человекочитаемое сообщение для пользователя
func (e *RateLimitError) Message() string {
	return ratelimit.Message(e.RetryAfter)
}

// State представляет снимок состояния для отображения в UI
type State struct {
	LastSync time.Time          // LastSync время последнего успешного прогона
	Status   *models.SyncStatus // Status последний пересчитанный статус очереди
	Online   bool               // Online сервер доступен
	Syncing  bool               // Syncing прогон синхронизации выполняется
}

// Monitor наблюдает за связью и запускает синхронизацию
type Monitor struct {
	syncSvc       sync.Service
	remote        remote.Store
	limiter       *ratelimit.Limiter
	logger        *slog.Logger
	probeInterval time.Duration
	pollInterval  time.Duration

	mu       stdsync.Mutex
	online   bool
	syncing  bool
	lastSync time.Time
	status   *models.SyncStatus
}

// New creates a new connectivity monitor.
// Limiter создается на уровне приложения и передается сюда явно -
// никакого скрытого глобального состояния.
func New(syncSvc sync.Service, remoteStore remote.Store, limiter *ratelimit.Limiter, logger *slog.Logger) *Monitor {
	return &Monitor{
		syncSvc:       syncSvc,
		remote:        remoteStore,
		limiter:       limiter,
		logger:        logger,
		probeInterval: DefaultProbeInterval,
		pollInterval:  DefaultPollInterval,
		status:        &models.SyncStatus{},
	}
}

// Run blocks, probing connectivity and refreshing queue status until
// ctx is cancelled. Запущенный прогон синхронизации не отменяется
// посередине - guard освобождается после завершения прогона.
func (m *Monitor) Run(ctx context.Context) {
	// Первичная проверка без ожидания тикера
	m.pollStatus(ctx)
	m.probe(ctx)

	probeTicker := time.NewTicker(m.probeInterval)
	defer probeTicker.Stop()

	pollTicker := time.NewTicker(m.pollInterval)
	defer pollTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-probeTicker.C:
			m.probe(ctx)
		case <-pollTicker.C:
			m.pollStatus(ctx)
		}
	}
}

// probe проверяет доступность сервера и на переходе offline -> online
// запускает синхронизацию, если есть ожидающие элементы
func (m *Monitor) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	err := m.remote.Ping(pingCtx)
	cancel()

	online := err == nil

	m.mu.Lock()
	wasOnline := m.online
	m.online = online
	pending := m.status.Pending
	m.mu.Unlock()

	if online && !wasOnline {
		m.logger.Info("Server is reachable again", "pending", pending)

		if pending > 0 {
			// Автосинхронизация при восстановлении сети,
			// с учетом ограничителя частоты
			if _, err := m.trySync(ctx); err != nil {
				m.logger.Warn("Auto-sync after reconnect skipped", "reason", err)
			}
		}
	}

	if !online && wasOnline {
		m.logger.Warn("Server became unreachable", "error", err)
	}
}

// pollStatus пересчитывает статус очереди для отображения.
// Выполняется независимо от того, идет ли сейчас синхронизация.
func (m *Monitor) pollStatus(ctx context.Context) {
	status, err := m.syncSvc.Status(ctx)
	if err != nil {
		m.logger.Error("Failed to compute sync status", "error", err)
		return
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

// SyncNow запускает синхронизацию по запросу пользователя.
// Возвращает ErrOffline, ErrSyncInFlight или *RateLimitError если
// запуск сейчас невозможен.
func (m *Monitor) SyncNow(ctx context.Context) (*models.SyncResult, error) {
	m.mu.Lock()
	online := m.online
	m.mu.Unlock()

	if !online {
		return nil, ErrOffline
	}

	return m.trySync(ctx)
}

// trySync выполняет один прогон синхронизации под ограничителем частоты
// и single-flight guard
func (m *Monitor) trySync(ctx context.Context) (*models.SyncResult, error) {
	// Проверка частоты до захвата guard: отклонение лимитером
	// не должно занимать slot синхронизации
	if check := m.limiter.CheckSync(); check.Limited {
		return nil, &RateLimitError{RetryAfter: check.RetryAfter}
	}

	m.mu.Lock()
	if m.syncing {
		m.mu.Unlock()
		return nil, ErrSyncInFlight
	}
	m.syncing = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.syncing = false
		m.mu.Unlock()
	}()

	m.limiter.RecordSync()

	result, err := m.syncSvc.Sync(ctx, nil)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.lastSync = time.Now()
	m.mu.Unlock()

	// Обновляем статус сразу после прогона, не дожидаясь тикера
	m.pollStatus(ctx)

	return result, nil
}

// RetryFailed сбрасывает окончательно неуспешные элементы и, если сервер
// доступен и лимит не исчерпан, сразу запускает синхронизацию
func (m *Monitor) RetryFailed(ctx context.Context) (int, error) {
	count, err := m.syncSvc.RetryFailed(ctx)
	if err != nil {
		return 0, err
	}

	m.pollStatus(ctx)

	if count == 0 {
		return 0, nil
	}

	m.mu.Lock()
	online := m.online
	m.mu.Unlock()

	if online {
		if _, err := m.trySync(ctx); err != nil {
			// Сброс уже состоялся, поэтому отказ в немедленном запуске
			// не ошибка операции - элементы уйдут со следующим прогоном
			m.logger.Warn("Immediate sync after retry skipped", "reason", err)
		}
	}

	return count, nil
}

// Snapshot возвращает снимок состояния для отображения
func (m *Monitor) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return State{
		Online:   m.online,
		Syncing:  m.syncing,
		LastSync: m.lastSync,
		Status:   m.status,
	}
}

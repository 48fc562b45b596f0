// Package ratelimit реализует sliding-window ограничитель частоты действий.
// Используется для ограничения попыток синхронизации и отправки форм,
// чтобы не перегружать удалённое хранилище и укладываться в квоты API.
package ratelimit

import (
	"sync"
	"time"
)

// Result представляет решение ограничителя для одной проверки
type Result struct {
	// Limited true если действие сейчас запрещено
	Limited bool

	// RetryAfter через сколько секунд действие станет доступно (0 если не ограничено)
	RetryAfter int
}

// Limiter ограничивает частоту действий по ключу в скользящем окне.
// Состояние живёт только в памяти процесса; экземпляр создаётся один раз
// при старте приложения и передаётся туда, где нужен (без глобальных
// синглтонов).
type Limiter struct {
	attempts     map[string][]time.Time
	blockedUntil map[string]time.Time
	now          func() time.Time
	mu           sync.Mutex
}

// New creates a new rate limiter instance
func New() *Limiter {
	return &Limiter{
		attempts:     make(map[string][]time.Time),
		blockedUntil: make(map[string]time.Time),
		now:          time.Now,
	}
}

// Check reports whether the action for key is currently limited.
// The check itself does not count as an attempt.
func (l *Limiter) Check(key string, maxAttempts int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.check(key, maxAttempts, window)
}

// check внутренняя проверка, вызывается под мьютексом
func (l *Limiter) check(key string, maxAttempts int, window time.Duration) Result {
	now := l.now()

	// Сначала проверяем явную блокировку
	if blocked, ok := l.blockedUntil[key]; ok {
		if now.Before(blocked) {
			return Result{
				Limited:    true,
				RetryAfter: ceilSeconds(blocked.Sub(now)),
			}
		}
		// Блокировка истекла
		delete(l.blockedUntil, key)
	}

	// Отбрасываем попытки за пределами окна
	valid := pruneOld(l.attempts[key], now, window)
	l.attempts[key] = valid

	// Превышен лимит попыток в окне - ставим блокировку
	if len(valid) >= maxAttempts {
		l.blockedUntil[key] = now.Add(window)
		return Result{
			Limited:    true,
			RetryAfter: ceilSeconds(window),
		}
	}

	return Result{Limited: false}
}

// Record registers an attempt for key and re-evaluates the limit.
// Recording the attempt that crosses the threshold immediately trips
// the block, so the caller gets the limited result right away.
func (l *Limiter) Record(key string, maxAttempts int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	attempts := append(l.attempts[key], now)

	// Храним только попытки внутри окна, старые не накапливаются
	l.attempts[key] = pruneOld(attempts, now, window)

	return l.check(key, maxAttempts, window)
}

// Clear removes all limiter state for key
func (l *Limiter) Clear(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, key)
	delete(l.blockedUntil, key)
}

// ClearAll removes limiter state for every key (administrative reset)
func (l *Limiter) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attempts = make(map[string][]time.Time)
	l.blockedUntil = make(map[string]time.Time)
}

// RetryAfter returns seconds until the key is unblocked, 0 if not blocked
func (l *Limiter) RetryAfter(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	blocked, ok := l.blockedUntil[key]
	if !ok {
		return 0
	}

	remaining := blocked.Sub(l.now())
	if remaining <= 0 {
		return 0
	}

	return ceilSeconds(remaining)
}

// pruneOld оставляет только попытки, попадающие в окно
func pruneOld(attempts []time.Time, now time.Time, window time.Duration) []time.Time {
	valid := attempts[:0]
	for _, at := range attempts {
		if now.Sub(at) < window {
			valid = append(valid, at)
		}
	}
	return valid
}

// ceilSeconds округляет длительность вверх до целых секунд, не меньше 0
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

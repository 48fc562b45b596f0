package ratelimit

import "fmt"

// Message формирует человекочитаемое сообщение об ограничении частоты.
// До минуты показываем секунды, дальше округляем вверх до минут.
func Message(retryAfter int) string {
	if retryAfter < 60 {
		return fmt.Sprintf("Too many attempts. Try again in %d %s.", retryAfter, plural(retryAfter, "second", "seconds"))
	}

	minutes := retryAfter / 60
	if retryAfter%60 != 0 {
		minutes++
	}

	return fmt.Sprintf("Too many attempts. Try again in %d %s.", minutes, plural(minutes, "minute", "minutes"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

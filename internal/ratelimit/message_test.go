package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name       string
		want       string
		retryAfter int
	}{
		{
			name:       "one second",
			retryAfter: 1,
			want:       "Too many attempts. Try again in 1 second.",
		},
		{
			name:       "many seconds",
			retryAfter: 30,
			want:       "Too many attempts. Try again in 30 seconds.",
		},
		{
			name:       "exactly one minute",
			retryAfter: 60,
			want:       "Too many attempts. Try again in 1 minute.",
		},
		{
			name:       "rounded up to minutes",
			retryAfter: 61,
			want:       "Too many attempts. Try again in 2 minutes.",
		},
		{
			name:       "many minutes",
			retryAfter: 300,
			want:       "Too many attempts. Try again in 5 minutes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.retryAfter))
		})
	}
}

package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lunchsync/internal/client/storage"
	"github.com/iudanet/lunchsync/internal/models"
)

// createTestRecord создает тестовую запись об обеде
func createTestRecord(id string, synced bool) *models.LunchRecord {
	now := time.Now().UTC()
	return &models.LunchRecord{
		ID:        id,
		UserID:    "user-123",
		Date:      "2026-03-02",
		Time:      "12:30",
		Comments:  "sin cebolla",
		CreatedBy: "user-123",
		Synced:    synced,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStorage_SaveRecord(t *testing.T) {
	tests := []struct {
		record *models.LunchRecord
		name   string
	}{
		{
			name:   "unsynced offline record",
			record: createTestRecord("rec-1", false),
		},
		{
			name:   "already synced record",
			record: createTestRecord("rec-2", true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			ctx := context.Background()

			require.NoError(t, store.SaveRecord(ctx, tt.record))

			// Проверяем, что запись можно получить обратно
			got, err := store.GetRecord(ctx, tt.record.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.record.ID, got.ID)
			assert.Equal(t, tt.record.UserID, got.UserID)
			assert.Equal(t, tt.record.Date, got.Date)
			assert.Equal(t, tt.record.Synced, got.Synced)
		})
	}
}

func TestStorage_GetRecord_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_ListRecords(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, createTestRecord("rec-1", false)))
	require.NoError(t, store.SaveRecord(ctx, createTestRecord("rec-2", true)))

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStorage_MarkRecordSynced(t *testing.T) {
	t.Run("flips synced flag", func(t *testing.T) {
		store := createTestStorage(t)
		ctx := context.Background()

		require.NoError(t, store.SaveRecord(ctx, createTestRecord("rec-1", false)))
		require.NoError(t, store.MarkRecordSynced(ctx, "rec-1"))

		got, err := store.GetRecord(ctx, "rec-1")
		require.NoError(t, err)
		assert.True(t, got.Synced)
	})

	t.Run("missing record is not an error", func(t *testing.T) {
		store := createTestStorage(t)

		// Запись могла быть создана напрямую на сервере
		err := store.MarkRecordSynced(context.Background(), "server-only")
		assert.NoError(t, err)
	})
}

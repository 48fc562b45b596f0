package data

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lunchsync/internal/client/storage"
	"github.com/iudanet/lunchsync/internal/client/storage/boltdb"
	"github.com/iudanet/lunchsync/internal/models"
)

// remoteStoreMock мок удалённого хранилища для data сервиса
type remoteStoreMock struct {
	selectUsersFunc func(ctx context.Context) ([]models.User, error)
}

func (m *remoteStoreMock) Insert(ctx context.Context, collection string, payload json.RawMessage) error {
	return nil
}

func (m *remoteStoreMock) Update(ctx context.Context, collection string, payload json.RawMessage) error {
	return nil
}

func (m *remoteStoreMock) SelectUsers(ctx context.Context) ([]models.User, error) {
	if m.selectUsersFunc == nil {
		return nil, nil
	}
	return m.selectUsersFunc(ctx)
}

func (m *remoteStoreMock) Ping(ctx context.Context) error {
	return nil
}

func newTestService(t *testing.T, mock *remoteStoreMock) (Service, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewService(store, mock), store
}

func TestService_SaveRecordOffline(t *testing.T) {
	svc, store := newTestService(t, &remoteStoreMock{})
	ctx := context.Background()

	record := &models.LunchRecord{
		UserID:    "user-123",
		Date:      "2026-03-02",
		Time:      "12:30",
		Comments:  "sin postre",
		CreatedBy: "user-123",
	}

	saved, err := svc.SaveRecordOffline(ctx, record)
	require.NoError(t, err)

	// ID сгенерирован, запись не синхронизирована
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.Synced)
	assert.False(t, saved.CreatedAt.IsZero())

	// Запись лежит в локальном хранилище
	got, err := store.GetRecord(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got.UserID)
	assert.False(t, got.Synced)

	// Мутация стоит в очереди и payload несёт клиентский ID
	items, err := store.ListQueue(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.ActionInsert, items[0].Action)
	assert.Equal(t, models.CollectionLunchRecords, items[0].Collection)

	var payload models.LunchRecord
	require.NoError(t, json.Unmarshal(items[0].Payload, &payload))
	assert.Equal(t, saved.ID, payload.ID)
}

func TestService_SaveRecordOffline_KeepsProvidedID(t *testing.T) {
	svc, _ := newTestService(t, &remoteStoreMock{})

	record := &models.LunchRecord{
		ID:     "preset-id",
		UserID: "user-123",
		Date:   "2026-03-02",
	}

	saved, err := svc.SaveRecordOffline(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, "preset-id", saved.ID)
}

func TestService_UserCache(t *testing.T) {
	users := []models.User{
		{ID: "u1", Name: "Ana", Department: "Produccion"},
		{ID: "u2", Name: "Luis", Department: "Calidad"},
	}

	t.Run("refresh and read back", func(t *testing.T) {
		mock := &remoteStoreMock{
			selectUsersFunc: func(ctx context.Context) ([]models.User, error) {
				return users, nil
			},
		}
		svc, _ := newTestService(t, mock)
		ctx := context.Background()

		fetched, err := svc.RefreshUserCache(ctx)
		require.NoError(t, err)
		assert.Len(t, fetched, 2)

		cached, err := svc.CachedUsers(ctx, DefaultUserCacheAge)
		require.NoError(t, err)
		assert.Equal(t, users, cached)
	})

	t.Run("miss when cache empty", func(t *testing.T) {
		svc, _ := newTestService(t, &remoteStoreMock{})

		_, err := svc.CachedUsers(context.Background(), DefaultUserCacheAge)
		assert.ErrorIs(t, err, storage.ErrCacheMiss)
	})

	t.Run("miss when cache stale", func(t *testing.T) {
		mock := &remoteStoreMock{
			selectUsersFunc: func(ctx context.Context) ([]models.User, error) {
				return users, nil
			},
		}
		svc, _ := newTestService(t, mock)
		ctx := context.Background()

		_, err := svc.RefreshUserCache(ctx)
		require.NoError(t, err)

		// Нулевой maxAge делает любую запись устаревшей
		time.Sleep(time.Millisecond)
		_, err = svc.CachedUsers(ctx, 0)
		assert.ErrorIs(t, err, storage.ErrCacheMiss)
	})

	t.Run("remote failure propagates", func(t *testing.T) {
		mock := &remoteStoreMock{
			selectUsersFunc: func(ctx context.Context) ([]models.User, error) {
				return nil, errors.New("network down")
			},
		}
		svc, _ := newTestService(t, mock)

		_, err := svc.RefreshUserCache(context.Background())
		assert.Error(t, err)
	})
}

package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lunchsync/internal/models"
)

func TestClient_Insert(t *testing.T) {
	t.Run("successful insert", func(t *testing.T) {
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/records", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			gotBody, _ = io.ReadAll(r.Body)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "rec-1"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		payload := json.RawMessage(`{"id":"rec-1","user_id":"u1"}`)

		err := client.Insert(context.Background(), models.CollectionLunchRecords, payload)
		require.NoError(t, err)
		assert.JSONEq(t, string(payload), string(gotBody))
	})

	t.Run("duplicate id maps to ErrDuplicate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"code":"duplicate","message":"record already exists"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)

		err := client.Insert(context.Background(), models.CollectionLunchRecords, json.RawMessage(`{"id":"rec-1"}`))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":"internal_error","message":"database unavailable"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)

		err := client.Insert(context.Background(), models.CollectionLunchRecords, json.RawMessage(`{"id":"rec-1"}`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicate)
		assert.Contains(t, err.Error(), "database unavailable")
	})

	t.Run("unknown collection", func(t *testing.T) {
		client := NewClient("http://localhost:0")

		err := client.Insert(context.Background(), "departments", json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrUnknownCollection)
	})
}

func TestClient_SelectUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/users", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users":[{"id":"u1","name":"Ana","department":"Produccion"},{"id":"u2","name":"Luis","department":"Calidad"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	users, err := client.SelectUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].Name)
	assert.Equal(t, "Calidad", users[1].Department)
}

func TestClient_Ping(t *testing.T) {
	t.Run("server reachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/health", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		assert.NoError(t, client.Ping(context.Background()))
	})

	t.Run("server unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // закрываем сразу

		client := NewClient(server.URL)
		assert.Error(t, client.Ping(context.Background()))
	})
}

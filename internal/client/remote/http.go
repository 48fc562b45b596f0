package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/lunchsync/internal/models"
	"github.com/iudanet/lunchsync/pkg/api"
)

// Client представляет HTTP клиент удалённого хранилища
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый HTTP клиент удалённого хранилища.
// Таймаут на запрос ограничивает время одной попытки синхронизации,
// чтобы зависший вызов не держал single-flight guard бесконечно.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// collectionPath возвращает путь API для коллекции
func collectionPath(collection string) (string, error) {
	switch collection {
	case models.CollectionLunchRecords:
		return "/api/v1/records", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
}

// Insert creates a record in the collection.
// HTTP 409 from the server maps to ErrDuplicate.
func (c *Client) Insert(ctx context.Context, collection string, payload json.RawMessage) error {
	path, err := collectionPath(collection)
	if err != nil {
		return err
	}

	if err := c.doRequest(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("insert request failed: %w", err)
	}
	return nil
}

// Update updates an existing record in the collection
func (c *Client) Update(ctx context.Context, collection string, payload json.RawMessage) error {
	path, err := collectionPath(collection)
	if err != nil {
		return err
	}

	if err := c.doRequest(ctx, http.MethodPut, path, payload, nil); err != nil {
		return fmt.Errorf("update request failed: %w", err)
	}
	return nil
}

// SelectUsers returns the user directory from the server
func (c *Client) SelectUsers(ctx context.Context) ([]models.User, error) {
	var resp api.ListUsersResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/users", nil, &resp); err != nil {
		return nil, fmt.Errorf("list users request failed: %w", err)
	}

	users := make([]models.User, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, models.User{
			ID:         u.ID,
			Name:       u.Name,
			Department: u.Department,
		})
	}
	return users, nil
}

// Ping checks server availability via the health endpoint
func (c *Client) Ping(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, nil); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body json.RawMessage, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Конфликт уникальности клиентского ID - отдельная ошибка,
	// движок синхронизации трактует её как успех
	if resp.StatusCode == http.StatusConflict {
		return ErrDuplicate
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

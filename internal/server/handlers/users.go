package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/lunchsync/internal/server/storage"
	"github.com/iudanet/lunchsync/pkg/api"
)

// UsersHandler обрабатывает запросы к справочнику пользователей
type UsersHandler struct {
	logger  *slog.Logger
	storage storage.UserStorage
}

// NewUsersHandler creates a new users directory handler
func NewUsersHandler(logger *slog.Logger, storage storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger:  logger,
		storage: storage,
	}
}

// HandleUsers обрабатывает GET /api/v1/users
func (h *UsersHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	users, err := h.storage.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	apiUsers := make([]api.User, 0, len(users))
	for _, u := range users {
		apiUsers = append(apiUsers, api.User{
			ID:         u.ID,
			Name:       u.Name,
			Department: u.Department,
		})
	}

	writeJSON(w, h.logger, http.StatusOK, api.ListUsersResponse{Users: apiUsers})
}

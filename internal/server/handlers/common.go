package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/lunchsync/pkg/api"
)

// writeJSON сериализует ответ и пишет его с указанным статусом
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeError пишет стандартный JSON ответ об ошибке
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	writeJSON(w, logger, status, api.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

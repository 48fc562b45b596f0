package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/lunchsync/internal/models"
	"github.com/iudanet/lunchsync/internal/server/storage"
	"github.com/iudanet/lunchsync/pkg/api"
)

// RecordsHandler обрабатывает запросы к записям об обедах
type RecordsHandler struct {
	logger  *slog.Logger
	storage storage.RecordStorage
}

// NewRecordsHandler creates a new lunch records handler
func NewRecordsHandler(logger *slog.Logger, storage storage.RecordStorage) *RecordsHandler {
	return &RecordsHandler{
		logger:  logger,
		storage: storage,
	}
}

// HandleRecords обрабатывает GET, POST и PUT запросы к /api/v1/records
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleInsert(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// decodeRecord парсит и валидирует тело запроса
func (h *RecordsHandler) decodeRecord(w http.ResponseWriter, r *http.Request) (*models.LunchRecord, bool) {
	var req api.LunchRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode record request", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, api.CodeInvalid, "invalid request body")
		return nil, false
	}

	// ID назначает клиент - на нем держится идемпотентность повторов
	if req.ID == "" || req.UserID == "" || req.Date == "" || req.Time == "" {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeInvalid,
			"id, user_id, date and time are required")
		return nil, false
	}

	return &models.LunchRecord{
		ID:        req.ID,
		UserID:    req.UserID,
		Date:      req.Date,
		Time:      req.Time,
		Comments:  req.Comments,
		CreatedBy: req.CreatedBy,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}, true
}

// handleInsert обрабатывает POST /api/v1/records
func (h *RecordsHandler) handleInsert(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decodeRecord(w, r)
	if !ok {
		return
	}

	if err := h.storage.InsertRecord(r.Context(), record); err != nil {
		if errors.Is(err, storage.ErrDuplicateRecord) {
			// Повторная доставка той же записи - клиент считает 409 успехом
			h.logger.Info("Duplicate record insert", "record_id", record.ID)
			writeError(w, h.logger, http.StatusConflict, api.CodeDuplicate, "record already exists")
			return
		}
		h.logger.Error("Failed to insert record", "error", err, "record_id", record.ID)
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.logger.Info("Record created", "record_id", record.ID, "user_id", record.UserID)
	writeJSON(w, h.logger, http.StatusCreated, api.InsertRecordResponse{ID: record.ID})
}

// handleUpdate обрабатывает PUT /api/v1/records
func (h *RecordsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decodeRecord(w, r)
	if !ok {
		return
	}

	if err := h.storage.UpdateRecord(r.Context(), record); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			writeError(w, h.logger, http.StatusNotFound, api.CodeInvalid, "record not found")
			return
		}
		h.logger.Error("Failed to update record", "error", err, "record_id", record.ID)
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.logger.Info("Record updated", "record_id", record.ID, "user_id", record.UserID)
	writeJSON(w, h.logger, http.StatusOK, api.InsertRecordResponse{ID: record.ID})
}

// handleList обрабатывает GET /api/v1/records?user_id=...&date=...
func (h *RecordsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	date := r.URL.Query().Get("date")

	records, err := h.storage.ListRecords(r.Context(), userID, date)
	if err != nil {
		h.logger.Error("Failed to list records", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	apiRecords := make([]api.LunchRecord, 0, len(records))
	for _, rec := range records {
		apiRecords = append(apiRecords, api.LunchRecord{
			ID:        rec.ID,
			UserID:    rec.UserID,
			Date:      rec.Date,
			Time:      rec.Time,
			Comments:  rec.Comments,
			CreatedBy: rec.CreatedBy,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	writeJSON(w, h.logger, http.StatusOK, api.ListRecordsResponse{Records: apiRecords})
}

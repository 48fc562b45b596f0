package api

// Error codes returned by the server in ErrorResponse.Code
const (
	// CodeDuplicate запись с таким ID уже существует (unique constraint)
	CodeDuplicate = "duplicate"

	// CodeInvalid запрос не прошел валидацию
	CodeInvalid = "invalid_request"

	// CodeRateLimited клиент превысил лимит запросов
	CodeRateLimited = "rate_limited"

	// CodeInternal внутренняя ошибка сервера
	CodeInternal = "internal_error"
)

// ErrorResponse представляет ошибку API сервера
type ErrorResponse struct {
	Code    string `json:"code"`    // Code машиночитаемый код ошибки
	Message string `json:"message"` // Message человекочитаемое описание
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

package api

import "time"

// LunchRecord представляет запись об обеде в формате API сервера
type LunchRecord struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Comments  string    `json:"comments"`
	CreatedBy string    `json:"created_by"`
}

// InsertRecordResponse представляет ответ сервера на создание записи
type InsertRecordResponse struct {
	ID string `json:"id"` // ID идентификатор созданной записи
}

// ListRecordsResponse представляет ответ сервера со списком записей
type ListRecordsResponse struct {
	Records []LunchRecord `json:"records"`
}

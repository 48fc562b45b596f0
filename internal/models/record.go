package models

import "time"

// LunchRecord представляет одну запись о посещении обеда.
// Записи создаются в UI и могут быть сохранены локально до появления сети.
type LunchRecord struct {
	CreatedAt time.Time `json:"created_at"` // CreatedAt время создания записи
	UpdatedAt time.Time `json:"updated_at"` // UpdatedAt время последнего изменения
	ID        string    `json:"id"`         // ID уникальный идентификатор (UUID, генерируется клиентом)
	UserID    string    `json:"user_id"`    // UserID сотрудник, для которого регистрируется обед
	Date      string    `json:"date"`       // Date дата обеда в формате YYYY-MM-DD
	Time      string    `json:"time"`       // Time время обеда в формате HH:MM
	Comments  string    `json:"comments"`   // Comments произвольный комментарий
	CreatedBy string    `json:"created_by"` // CreatedBy кто создал запись (сам сотрудник или администратор)
	Synced    bool      `json:"synced"`     // Synced запись применена к удалённому хранилищу
}

// User представляет сотрудника из справочника пользователей.
// Справочник приходит с сервера и кэшируется локально для работы офлайн.
type User struct {
	ID         string `json:"id"`         // ID идентификатор пользователя
	Name       string `json:"name"`       // Name полное имя
	Department string `json:"department"` // Department отдел/цех
}

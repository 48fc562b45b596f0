package api

// User представляет пользователя из справочника сотрудников
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// ListUsersResponse представляет ответ сервера со справочником пользователей
type ListUsersResponse struct {
	Users []User `json:"users"`
}

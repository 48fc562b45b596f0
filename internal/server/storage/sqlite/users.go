package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/lunchsync/internal/models"
)

// ListUsers returns the whole user directory
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, department
		FROM users
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var users []*models.User

	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Department); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return users, nil
}

// UpsertUser создает или обновляет пользователя справочника.
// Используется для начального наполнения и административных утилит.
func (s *Storage) UpsertUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, department)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, department = excluded.department
	`

	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Name, user.Department); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

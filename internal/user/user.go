package user

import (
	"time"

	errors "github.com/frahmantamala/finance-tracker/internal"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
)

var (
	ErrUserNotFound  = errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound)
	ErrUsernameTaken = errors.NewConflictError("username already exists", errors.ErrCodeUsernameTaken)
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(m *userDatamodel.User) *User {
	if m == nil {
		return nil
	}
	return &User{
		ID:        m.ID,
		Username:  m.Username,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

package users

import (
	"time"

	"LabLend-backend/internal/platform/auth"
)

// User は users テーブルの1行
type User struct {
	UserID       string
	Username     string
	Email        string
	Role         auth.Role
	PasswordHash string
	IsDisabled   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Filter struct {
	Role *auth.Role
	Q    string // username / email の部分一致
}

func (u *User) toDTO() UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		IsDisabled: u.IsDisabled,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

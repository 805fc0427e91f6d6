package users

import (
	"time"

	"LabLend-backend/internal/platform/auth"
)

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"` // 未指定なら USER
}

type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	Password   *string `json:"password,omitempty"`
	IsDisabled *bool   `json:"is_disabled,omitempty"`
}

type UserResponse struct {
	UserID     string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       auth.Role `json:"role"`
	IsDisabled bool      `json:"is_disabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

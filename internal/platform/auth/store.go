package auth

import (
	"context"
	"database/sql"
	"errors"
)

type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsDisabled   bool
}

type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) AccountStore {
	return &Store{db: db}
}

const selectAccount = `
SELECT user_id, username, email, password_hash, role, is_disabled
FROM users
`

func (s *Store) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return s.get(ctx, selectAccount+`WHERE username = ? LIMIT 1`, username)
}

func (s *Store) GetByID(ctx context.Context, id string) (*Account, error) {
	return s.get(ctx, selectAccount+`WHERE user_id = ? LIMIT 1`, id)
}

// 見つからなければ (nil, nil)
func (s *Store) get(ctx context.Context, q string, arg any) (*Account, error) {
	var a Account
	var role string
	var isDisabledInt int
	err := s.db.QueryRowContext(ctx, q, arg).Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&role,
		&isDisabledInt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Role = Role(role)
	a.IsDisabled = isDisabledInt != 0
	return &a, nil
}

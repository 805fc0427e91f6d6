package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/auth"
	"LabLend-backend/internal/platform/db"
	"LabLend-backend/internal/platform/paging"
)

type Repository interface {
	Insert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, f Filter, p paging.Page) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	CountActiveByRole(ctx context.Context, role auth.Role) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

const userColumns = `user_id, username, email, role, password_hash, is_disabled, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	var role string
	if err := row.Scan(&u.UserID, &u.Username, &u.Email, &role, &u.PasswordHash, &u.IsDisabled, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = auth.Role(role)
	return &u, nil
}

func (s *Store) Insert(ctx context.Context, u *User) error {
	const q = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		u.UserID, u.Username, u.Email, string(u.Role), u.PasswordHash, u.IsDisabled, u.CreatedAt, u.UpdatedAt)
	if db.IsDuplicateKey(err) {
		return apierr.Conflict("username or email already exists")
	}
	return err
}

func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("user not found")
	}
	return u, err
}

func (s *Store) List(ctx context.Context, f Filter, p paging.Page) ([]User, int64, error) {
	p = p.Normalize()
	var wheres []string
	var args []any
	if f.Role != nil {
		wheres = append(wheres, "role = ?")
		args = append(args, string(*f.Role))
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		wheres = append(wheres, "(username LIKE ? OR email LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	where := ""
	if len(wheres) > 0 {
		where = " WHERE " + strings.Join(wheres, " AND ")
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY created_at ` + p.Order + ` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, q, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}

func (s *Store) Update(ctx context.Context, u *User) error {
	const q = `
	UPDATE users
	SET email = ?, role = ?, password_hash = ?, is_disabled = ?, updated_at = ?
	WHERE user_id = ?`
	res, err := s.db.ExecContext(ctx, q, u.Email, string(u.Role), u.PasswordHash, u.IsDisabled, u.UpdatedAt, u.UserID)
	if db.IsDuplicateKey(err) {
		return apierr.Conflict("email already exists")
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// 値が同じでも MySQL は 0 を返すので存在確認してから判断
		if _, err := s.GetByID(ctx, u.UserID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if db.IsRowReferenced(err) {
		return apierr.Conflict("user is still referenced by loans or repairs")
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apierr.NotFound("user not found")
	}
	return nil
}

func (s *Store) CountActiveByRole(ctx context.Context, role auth.Role) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ? AND is_disabled = 0`, string(role)).Scan(&n)
	return n, err
}

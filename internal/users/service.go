package users

import (
	"context"
	"log"
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/auth"
	"LabLend-backend/internal/platform/clock"
	"LabLend-backend/internal/platform/config"
	"LabLend-backend/internal/platform/idgen"
	"LabLend-backend/internal/platform/paging"
)

const minPasswordLen = 8

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,64}$`)

type Service struct {
	store Repository
	clock clock.Clock
	id    idgen.IDGen
	cost  int
}

func NewService(store Repository) *Service {
	return &Service{
		store: store,
		clock: clock.System(),
		id:    idgen.ULID(),
		cost:  bcrypt.DefaultCost,
	}
}

// POST /users
func (s *Service) Create(ctx context.Context, in CreateUserRequest) (UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if !usernamePattern.MatchString(username) {
		return UserResponse{}, apierr.InvalidField("username", "username must be 3-64 chars of letters, digits, '.', '_' or '-'")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return UserResponse{}, err
	}
	if len(in.Password) < minPasswordLen {
		return UserResponse{}, apierr.InvalidField("password", "password must be at least 8 characters")
	}
	role := auth.RoleUser
	if in.Role != "" {
		r, ok := auth.ParseRole(in.Role)
		if !ok {
			return UserResponse{}, apierr.InvalidField("role", "role must be ADMIN, TECHNICIAN or USER")
		}
		role = r
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return UserResponse{}, err
	}

	now := s.clock.Now()
	u := &User{
		UserID:       s.id.NewULID(now),
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return UserResponse{}, err
	}
	return u.toDTO(), nil
}

func (s *Service) Get(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return u.toDTO(), nil
}

func (s *Service) List(ctx context.Context, f Filter, p paging.Page) (paging.Result[UserResponse], error) {
	rows, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return paging.Result[UserResponse]{}, err
	}
	items := make([]UserResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDTO())
	}
	return paging.NewResult(items, total, p), nil
}

// PUT /users/:id
func (s *Service) Update(ctx context.Context, caller auth.Principal, id string, in UpdateUserRequest) (UserResponse, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return UserResponse{}, err
		}
		u.Email = email
	}
	if in.Role != nil {
		r, ok := auth.ParseRole(*in.Role)
		if !ok {
			return UserResponse{}, apierr.InvalidField("role", "role must be ADMIN, TECHNICIAN or USER")
		}
		if caller.UserID == id && r != auth.RoleAdmin {
			return UserResponse{}, apierr.Conflict("admins cannot demote themselves")
		}
		u.Role = r
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return UserResponse{}, apierr.InvalidField("password", "password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.cost)
		if err != nil {
			return UserResponse{}, err
		}
		u.PasswordHash = string(hash)
	}
	if in.IsDisabled != nil {
		if caller.UserID == id && *in.IsDisabled {
			return UserResponse{}, apierr.Conflict("admins cannot disable themselves")
		}
		u.IsDisabled = *in.IsDisabled
	}

	u.UpdatedAt = s.clock.Now()
	if err := s.store.Update(ctx, u); err != nil {
		return UserResponse{}, err
	}
	return u.toDTO(), nil
}

// DELETE /users/:id
func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	if caller.UserID == id {
		return apierr.Conflict("admins cannot delete themselves")
	}
	return s.store.Delete(ctx, id)
}

// EnsureAdmin は有効な ADMIN が1人もいなければ初期管理者を作る
func (s *Service) EnsureAdmin(ctx context.Context, b config.BootstrapAdmin) error {
	n, err := s.store.CountActiveByRole(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if b.Username == "" || b.Password == "" {
		log.Println("[WARN] no active admin and no bootstrap_admin configured")
		return nil
	}
	res, err := s.Create(ctx, CreateUserRequest{
		Username: b.Username,
		Email:    b.Email,
		Password: b.Password,
		Role:     string(auth.RoleAdmin),
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] bootstrap admin created: %s", res.Username)
	return nil
}

func normalizeEmail(s string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	if err != nil || addr.Name != "" {
		return "", apierr.InvalidField("email", "email is invalid")
	}
	return strings.ToLower(addr.Address), nil
}

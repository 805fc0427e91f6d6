package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"LabLend-backend/internal/platform/apierr"
)

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      AccountView `json:"user"`
}

type AccountView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type Service struct {
	store  AccountStore
	tokens *TokenIssuer
}

func NewService(store AccountStore, tokens *TokenIssuer) *Service {
	return &Service{store: store, tokens: tokens}
}

// 失敗理由（存在しない・無効化・パスワード違い）は区別せずに返す
func (s *Service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResponse{}, apierr.Invalid("username and password are required")
	}

	acct, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return LoginResponse{}, err
	}
	if acct == nil || acct.IsDisabled {
		return LoginResponse{}, apierr.Unauthenticated("authentication failed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return LoginResponse{}, apierr.Unauthenticated("authentication failed")
	}

	token, exp, err := s.tokens.Issue(acct.ID, acct.Role)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Token: token, ExpiresAt: exp, User: toView(acct)}, nil
}

func (s *Service) Me(ctx context.Context, p Principal) (AccountView, error) {
	acct, err := s.store.GetByID(ctx, p.UserID)
	if err != nil {
		return AccountView{}, err
	}
	if acct == nil || acct.IsDisabled {
		return AccountView{}, apierr.Unauthenticated("account not available")
	}
	return toView(acct), nil
}

func toView(a *Account) AccountView {
	return AccountView{ID: a.ID, Username: a.Username, Email: a.Email, Role: a.Role}
}

package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/platform/apierr"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
)

// RequireAuth: Authorization: Bearer <token> を検証して context に sub/role を詰める
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			apierr.Respond(c, apierr.Unauthenticated("missing Authorization header"))
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierr.Respond(c, apierr.Unauthenticated("invalid Authorization header"))
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			apierr.Respond(c, apierr.Unauthenticated("empty token"))
			return
		}

		p, err := Parse(secret, tokenStr)
		if err != nil {
			apierr.Respond(c, apierr.Unauthenticated(err.Error()))
			return
		}

		c.Set(CtxUserIDKey, p.UserID)
		c.Set(CtxRoleKey, string(p.Role))
		c.Next()
	}
}

// RequireActiveAccount は RequireAuth の後に置く。
// トークン発行後に無効化・権限変更されたユーザーを DB の現在値で判定する
func RequireActiveAccount(accounts AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			apierr.Respond(c, apierr.Unauthenticated("not signed in"))
			return
		}
		a, err := accounts.GetByID(c.Request.Context(), p.UserID)
		if err != nil {
			apierr.Respond(c, err)
			return
		}
		if a == nil || a.IsDisabled {
			apierr.Respond(c, apierr.Unauthenticated("account is disabled or no longer exists"))
			return
		}
		// 降格はトークンの有効期限を待たずに反映する
		c.Set(CtxRoleKey, string(a.Role))
		c.Next()
	}
}

// RequireRole: 例) admin のみ許可したい時に追加
func RequireRole(roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			apierr.Respond(c, apierr.Forbidden("missing role"))
			return
		}
		if !p.HasRole(roles...) {
			apierr.Respond(c, apierr.Forbidden("forbidden"))
			return
		}
		c.Next()
	}
}

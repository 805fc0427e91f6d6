package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTechnician Role = "TECHNICIAN"
	RoleUser       Role = "USER"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleTechnician, RoleUser:
		return r, true
	}
	return "", false
}

// Principal はリクエストの呼び出し元。ワークフロー操作には必ずこれを明示的に渡す
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// CanActFor は本人か管理者か
func (p Principal) CanActFor(userID string) bool {
	return p.IsAdmin() || (p.UserID != "" && p.UserID == userID)
}

// PrincipalFrom は RequireAuth が詰めた sub/role を取り出す
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	sub := c.GetString(CtxUserIDKey)
	if sub == "" {
		return Principal{}, false
	}
	role, ok := ParseRole(c.GetString(CtxRoleKey))
	if !ok {
		return Principal{}, false
	}
	return Principal{UserID: sub, Role: role}, true
}

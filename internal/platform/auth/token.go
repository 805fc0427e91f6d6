package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(userID string, role Role) (string, time.Time, error) {
	exp := t.now().Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  exp.Unix(),
	})
	s, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// Parse は HS256 固定で検証して sub/role を返す
func Parse(secret []byte, tokenStr string) (Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// alg 固定（none攻撃とか回避）
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || token == nil || !token.Valid {
		return Principal{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Principal{}, errors.New("invalid sub")
	}
	roleStr, _ := claims["role"].(string)
	role, ok := ParseRole(roleStr)
	if !ok {
		return Principal{}, errors.New("invalid role")
	}
	return Principal{UserID: sub, Role: role}, nil
}

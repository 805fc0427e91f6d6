package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"LabLend-backend/internal/platform/apierr"
)

const Header = "X-Request-ID"

// Middleware は X-Request-ID を引き継ぐか新規に払い出し、レスポンスにも返す
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(apierr.RequestIDKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

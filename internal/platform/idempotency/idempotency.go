package idempotency

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/auth"
)

const (
	HeaderKey      = "Idempotency-Key"
	HeaderReplayed = "Idempotent-Replayed"

	DefaultTTL  = 24 * time.Hour
	lockTTL     = 30 * time.Second
	maxKeyBytes = 128
)

// 保存するレスポンス
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New: rdb が nil のときは素通しのミドルウェアになる
func New(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func redisKey(userID, method, path, key string) string {
	return fmt.Sprintf("idem:%s:%s:%s:%s", userID, method, path, key)
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware は Idempotency-Key 付きリクエストの最初の 2xx 応答を保存し、再送時はそれを返す。
// ユーザーIDはキーの一部なので RequireAuth の後ろに置くこと
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderKey))
		if s.rdb == nil || key == "" {
			c.Next()
			return
		}
		if len(key) > maxKeyBytes {
			apierr.Respond(c, apierr.InvalidField(HeaderKey, "Idempotency-Key is too long"))
			return
		}

		ctx := c.Request.Context()
		rk := redisKey(c.GetString(auth.CtxUserIDKey), c.Request.Method, c.Request.URL.Path, key)

		raw, err := s.rdb.Get(ctx, rk).Bytes()
		switch {
		case err == nil:
			var sr storedResponse
			if err := json.Unmarshal(raw, &sr); err == nil {
				c.Header(HeaderReplayed, "true")
				c.Data(sr.Status, sr.ContentType, sr.Body)
				c.Abort()
				return
			}
			log.Printf("[WARN] idempotency: broken entry %s", rk)
		case errors.Is(err, redis.Nil):
		default:
			// Redis 障害時は冪等性を諦めて通常処理
			log.Printf("[WARN] idempotency: redis get failed: %v", err)
			c.Next()
			return
		}

		locked, err := s.rdb.SetNX(ctx, rk+":lock", "1", lockTTL).Result()
		if err != nil {
			log.Printf("[WARN] idempotency: redis lock failed: %v", err)
			c.Next()
			return
		}
		if !locked {
			apierr.Respond(c, apierr.Conflict("a request with this Idempotency-Key is still in progress"))
			return
		}
		defer s.rdb.Del(ctx, rk+":lock")

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		status := cw.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		b, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.buf.Bytes(),
		})
		if err != nil {
			return
		}
		if err := s.rdb.Set(ctx, rk, b, s.ttl).Err(); err != nil {
			log.Printf("[WARN] idempotency: redis set failed: %v", err)
		}
	}
}

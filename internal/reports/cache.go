package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache は集計結果を JSON で redis に置く。rdb が nil なら常にミス
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache { return &Cache{rdb: rdb, ttl: ttl} }

func cacheKey(report, params string) string { return fmt.Sprintf("report:%s:%s", report, params) }

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil && c.ttl > 0 }

// cached は key にヒットすればそれを返し、なければ load して保存する。
// redis の障害は集計を止めない（ログだけ出してDBから返す）
func cached[T any](ctx context.Context, c *Cache, key string, load func() (T, error)) (T, error) {
	if c.enabled() {
		b, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var v T
			if err := json.Unmarshal(b, &v); err == nil {
				return v, nil
			}
			log.Printf("[WARN] report cache %s: broken entry, reloading", key)
		case !errors.Is(err, redis.Nil):
			log.Printf("[WARN] report cache get %s: %v", key, err)
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if c.enabled() {
		b, _ := json.Marshal(v)
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			log.Printf("[WARN] report cache set %s: %v", key, err)
		}
	}
	return v, nil
}

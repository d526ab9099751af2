package compilecache_test

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ravelin-sql/saneql/internal/compilecache"
)

// unreachable returns a client pointed at a closed port, so every command
// fails fast instead of hanging on a real network.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
}

func TestGetMissesOnConnectionError(t *testing.T) {
	c := compilecache.NewRedisCache(unreachable(), "saneql:", 0)
	if _, ok := c.Get("region"); ok {
		t.Fatal("expected a miss when Redis is unreachable")
	}
}

func TestPutSwallowsConnectionError(t *testing.T) {
	c := compilecache.NewRedisCache(unreachable(), "saneql:", time.Minute)
	c.Put("region", "select 1") // must not panic
}

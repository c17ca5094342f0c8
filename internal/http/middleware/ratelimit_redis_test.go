package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisRateLimitIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	pass := os.Getenv("REDIS_PASSWORD")
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			db = n
		}
	}

	client := ConnectRedis(addr, pass, db)
	if client == nil {
		t.Fatalf("redis at %s not reachable", addr)
	}
	defer client.Close()

	// unique scope so reruns inside one window do not collide
	scope := "itest" + strconv.FormatInt(time.Now().UnixNano(), 10)
	w := 2 * time.Second
	max := 2

	limiter := NewRateLimiter(client)
	r := gin.New()
	r.GET("/test", limiter.Limit(scope, max, w), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	client2 := &http.Client{}

	for i := 0; i < max; i++ {
		res, err := client2.Get(srv.URL + "/test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != 200 {
			t.Fatalf("expected 200 got %d", res.StatusCode)
		}
	}

	res, err := client2.Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != 429 {
		t.Fatalf("expected 429 got %d", res.StatusCode)
	}

	key := "rl:" + scope + ":2:127.0.0.1"
	ttl, err := client.PTTL(context.Background(), key).Result()
	if err != nil {
		t.Fatalf("pttl: %v", err)
	}
	if ttl <= 0 || ttl > w {
		t.Fatalf("counter ttl = %v; want within (0, %v]", ttl, w)
	}
}

func TestRedisRateLimit_RestoresMissingTTL(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	client := ConnectRedis(addr, os.Getenv("REDIS_PASSWORD"), 0)
	if client == nil {
		t.Fatalf("redis at %s not reachable", addr)
	}
	defer client.Close()

	ctx := context.Background()
	key := "rl:itest-ttl" + strconv.FormatInt(time.Now().UnixNano(), 10) + ":60:127.0.0.1"
	defer client.Del(ctx, key)
	// a counter left behind without an expiry
	if err := client.Set(ctx, key, 5, 0).Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	limiter := NewRateLimiter(client)
	n, err := limiter.hit(ctx, key, time.Minute)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if n != 6 {
		t.Fatalf("count = %d; want 6", n)
	}
	ttl, err := client.PTTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("expiry not restored: ttl=%v err=%v", ttl, err)
	}
}

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// redisAddr returns the address of a test Redis, skipping the test if unset.
func redisAddr(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("FEEDSCOPE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FEEDSCOPE_TEST_REDIS_ADDR not set")
	}
	return addr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, WithAddress(redisAddr(t)), WithPrefix("feedscope-test:"))
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, "k"); !hit || err != nil || string(data) != "v" {
		t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
}

func TestRedisOptions(t *testing.T) {
	o := RedisOptions{Address: DefaultRedisAddr}
	for _, opt := range []RedisOption{WithAddress(""), WithDB(2), WithPassword("pw"), WithPrefix("p:")} {
		opt(&o)
	}
	if o.Address != DefaultRedisAddr {
		t.Errorf("empty address should keep default, got %q", o.Address)
	}
	if o.DB != 2 || o.Password != "pw" || o.Prefix != "p:" {
		t.Errorf("options = %+v", o)
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx := context.Background()
	_, err := NewRedisCache(ctx, WithAddress("127.0.0.1:1"), WithConnectBackoff(Backoff{Attempts: 1}))
	if err == nil {
		t.Fatal("NewRedisCache should fail for a closed port")
	}
	if !IsRetryable(err) {
		t.Errorf("connect error should stay marked transient: %v", err)
	}
}

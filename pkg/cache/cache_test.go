package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if _, err := c.Get(ctx, "missing"); err != ErrCacheMiss {
		t.Errorf("Get(missing) error = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want v", got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("expired Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestDiskCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c := NewDiskCache(dir)

	if _, err := c.Get(ctx, "missing"); err != ErrCacheMiss {
		t.Errorf("Get(missing) error = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// A fresh instance over the same directory sees the entry.
	c2 := NewDiskCache(dir)
	got, err := c2.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want v", got)
	}

	if err := c2.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := c2.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("Get() after clear error = %v, want ErrCacheMiss", err)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewDiskCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("expired Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestTiered_PromotesOnHit(t *testing.T) {
	ctx := context.Background()
	fast := NewMemoryCache()
	slow := NewMemoryCache()
	c := NewTiered(fast, slow)

	if err := slow.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want v", got)
	}

	// The hit should now be answered by the fast tier directly.
	if _, err := fast.Get(ctx, "k"); err != nil {
		t.Errorf("value was not promoted to the fast tier: %v", err)
	}
}

func TestTiered_SetWritesAllTiers(t *testing.T) {
	ctx := context.Background()
	fast := NewMemoryCache()
	slow := NewMemoryCache()
	c := NewTiered(fast, slow)

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	for i, tier := range []Cache{fast, slow} {
		if _, err := tier.Get(ctx, "k"); err != nil {
			t.Errorf("tier %d missing key: %v", i, err)
		}
	}
}

func TestKeyGenerator(t *testing.T) {
	kg := NewKeyGenerator("models")

	a := kg.GenerateForHost("http://localhost:11434")
	b := kg.GenerateForHost("http://other:11434")

	if a == b {
		t.Error("keys for different hosts should differ")
	}
	if a != kg.GenerateForHost("http://localhost:11434") {
		t.Error("key generation should be deterministic")
	}
}

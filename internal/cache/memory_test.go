package cache

import (
	"context"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("bn", "en", "ঢাকায় আজ বৃষ্টি হচ্ছে।")
	k2 := Key("bn", "en", "  ঢাকায় আজ বৃষ্টি হচ্ছে।  ")
	if k1 != k2 {
		t.Error("surrounding whitespace must not change the key")
	}

	k3 := Key("en", "bn", "ঢাকায় আজ বৃষ্টি হচ্ছে।")
	if k1 == k3 {
		t.Error("direction must be part of the key")
	}

	k4 := Key("bn", "en", "অন্য বাক্য")
	if k1 == k4 {
		t.Error("different texts must not collide")
	}
}

func TestMemory_GetSet(t *testing.T) {
	c := NewMemory(0)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("expected miss on empty cache")
	}

	if err := c.Set(ctx, "k", "অনুবাদ"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get(ctx, "k")
	if !ok || got != "অনুবাদ" {
		t.Errorf("Get = (%q, %v)", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "k", "v")
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected miss after expiry")
	}
}

func TestMemory_Clear(t *testing.T) {
	c := NewMemory(0)
	ctx := context.Background()

	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	c := NewMemory(0)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.Set(ctx, "shared", "value")
				c.Get(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if got, ok := c.Get(ctx, "shared"); !ok || got != "value" {
		t.Errorf("Get after concurrent writes = (%q, %v)", got, ok)
	}
}

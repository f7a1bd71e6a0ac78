package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBasicOperations(t *testing.T) {
	c := NewMemory(time.Hour, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("Get = %q, want value1", val)
	}

	if err := c.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "key1"); err != ErrMiss {
		t.Errorf("expected ErrMiss after delete, got %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory(time.Hour, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "short"); err != ErrMiss {
		t.Errorf("expected ErrMiss for expired entry, got %v", err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	c := NewMemory(time.Hour, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("abc"), 0)
	val, _ := c.Get(ctx, "k")
	val[0] = 'x'

	val2, _ := c.Get(ctx, "k")
	if string(val2) != "abc" {
		t.Errorf("cached value was mutated through a returned slice: %q", val2)
	}
}

func TestMemoryClear(t *testing.T) {
	c := NewMemory(time.Hour, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := c.Get(ctx, "a"); err != ErrMiss {
		t.Errorf("expected ErrMiss after Clear, got %v", err)
	}
}

func TestMemoryClosed(t *testing.T) {
	c := NewMemory(time.Hour, 0)
	_ = c.Close()

	if _, err := c.Get(context.Background(), "k"); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := c.Set(context.Background(), "k", nil, 0); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

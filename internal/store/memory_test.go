package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()

	ctx := context.Background()

	if _, err := ms.Get(ctx, "room:AAAAA"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key: want ErrNotFound, got: %v", err)
	}

	if err := ms.Set(ctx, "room:AAAAA", `{"code":"AAAAA"}`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := ms.Get(ctx, "room:AAAAA")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if val != `{"code":"AAAAA"}` {
		t.Fatalf("wrong value: %q", val)
	}

	exists, err := ms.Exists(ctx, "room:AAAAA")
	if err != nil || !exists {
		t.Fatalf("want exists, got (%v, %v)", exists, err)
	}

	if err := ms.Delete(ctx, "room:AAAAA"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err = ms.Exists(ctx, "room:AAAAA")
	if err != nil || exists {
		t.Fatalf("want gone, got (%v, %v)", exists, err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()

	ctx := context.Background()

	if err := ms.Set(ctx, "room:BBBBB", "{}", 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := ms.Get(ctx, "room:BBBBB"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired key: want ErrNotFound, got: %v", err)
	}

	exists, err := ms.Exists(ctx, "room:BBBBB")
	if err != nil || exists {
		t.Fatalf("expired key must not exist, got (%v, %v)", exists, err)
	}
}

func TestMemoryStoreSetRefreshesTTL(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()

	ctx := context.Background()

	if err := ms.Set(ctx, "room:CCCCC", "{}", 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := ms.Set(ctx, "room:CCCCC", "{}", time.Minute); err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := ms.Get(ctx, "room:CCCCC"); err != nil {
		t.Fatalf("refreshed key must survive, got: %v", err)
	}
}

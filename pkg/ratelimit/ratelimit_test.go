package ratelimit

import (
	"testing"
	"time"
)

func TestLocalStore_ExhaustsBucket(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewLocalStore(3)
	store.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !store.Allow("client") {
			t.Fatalf("request %d rejected, bucket should hold 3 tokens", i+1)
		}
	}
	if store.Allow("client") {
		t.Error("request allowed after bucket exhausted")
	}
}

func TestLocalStore_Refills(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewLocalStore(60) // один токен в секунду
	store.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		store.Allow("client")
	}
	if store.Allow("client") {
		t.Fatal("bucket should be empty")
	}

	now = now.Add(2 * time.Second)
	if !store.Allow("client") {
		t.Error("bucket should refill after 2 seconds")
	}
}

func TestLocalStore_CapacityIsCapped(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewLocalStore(2)
	store.now = func() time.Time { return now }

	store.Allow("client")

	// Долгий простой не дает накопить больше емкости корзины
	now = now.Add(time.Hour)
	if !store.Allow("client") || !store.Allow("client") {
		t.Fatal("bucket should refill to capacity")
	}
	if store.Allow("client") {
		t.Error("bucket must not hold more than its capacity")
	}
}

func TestLocalStore_KeysAreIndependent(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewLocalStore(1)
	store.now = func() time.Time { return now }

	if !store.Allow("a") {
		t.Fatal("first request for key a rejected")
	}
	if store.Allow("a") {
		t.Error("second request for key a allowed")
	}
	if !store.Allow("b") {
		t.Error("key b must have its own bucket")
	}
}

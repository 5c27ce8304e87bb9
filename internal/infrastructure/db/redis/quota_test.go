package redis

import (
	"context"
	"testing"
	"time"
)

func TestAdviceQuota_KeyIsStableWithinWindow(t *testing.T) {
	q := NewAdviceQuota(nil, 5, time.Hour)

	a := q.key("u1", time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC))
	b := q.key("u1", time.Date(2024, 3, 1, 10, 59, 59, 0, time.UTC))
	c := q.key("u1", time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC))

	if a != b {
		t.Fatalf("expected same key within window, got %s and %s", a, b)
	}
	if a == c {
		t.Fatalf("expected a new key for the next window")
	}
	if want := "quota:advice:u1:1709287200"; a != want {
		t.Fatalf("unexpected key %s, want %s", a, want)
	}
}

func TestAdviceQuota_DisabledLimitAlwaysAllows(t *testing.T) {
	q := NewAdviceQuota(nil, 0, 0)

	ok, err := q.Allow(context.Background(), "u1")
	if err != nil || !ok {
		t.Fatalf("expected allow with disabled quota, got %v %v", ok, err)
	}
	if q.window != defaultQuotaWindow {
		t.Fatalf("expected default window, got %s", q.window)
	}
}

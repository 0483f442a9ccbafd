package vault

import (
	"context"
	"testing"
)

func TestMemoryVault(t *testing.T) {
	ctx := context.Background()
	v := NewMemory()

	t.Run("absent key reads empty", func(t *testing.T) {
		got, err := v.Get(ctx, StateKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("expected empty value, got %q", got)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := v.Set(ctx, StateKey, "abc"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := v.Get(ctx, StateKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "abc" {
			t.Errorf("expected %q, got %q", "abc", got)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		if err := v.Set(ctx, StateKey, "first"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := v.Set(ctx, StateKey, "second"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := v.Get(ctx, StateKey)
		if got != "second" {
			t.Errorf("expected %q, got %q", "second", got)
		}
	})

	t.Run("slots are independent", func(t *testing.T) {
		if err := v.Set(ctx, StateKey, "state"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := v.Set(ctx, TokenKey, "token"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, _ := v.Get(ctx, StateKey); got != "state" {
			t.Errorf("state slot = %q, want %q", got, "state")
		}
		if got, _ := v.Get(ctx, TokenKey); got != "token" {
			t.Errorf("token slot = %q, want %q", got, "token")
		}
	})

	t.Run("delete removes value", func(t *testing.T) {
		if err := v.Set(ctx, StateKey, "abc"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := v.Delete(ctx, StateKey); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, _ := v.Get(ctx, StateKey); got != "" {
			t.Errorf("expected empty value after delete, got %q", got)
		}
	})

	t.Run("delete absent key is a no-op", func(t *testing.T) {
		if err := v.Delete(ctx, "never-set"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

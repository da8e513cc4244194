package services

import (
	"reflect"
	"testing"
)

func TestEnsureListPayload_Defaults(t *testing.T) {
	payload := map[string]any{
		"items": []any{
			map[string]any{"id": float64(1)},
			map[string]any{"id": float64(2)},
			map[string]any{"id": float64(3)},
		},
	}

	page := ensureListPayload(payload, "users")

	if page.Total != 3 {
		t.Errorf("Total = %d, want 3 (defaults to item count)", page.Total)
	}
	if page.Limit != 3 {
		t.Errorf("Limit = %d, want 3 (defaults to item count)", page.Limit)
	}
	if page.Offset != 0 {
		t.Errorf("Offset = %d, want 0", page.Offset)
	}
	if len(page.Items) != 3 {
		t.Errorf("Items length = %d, want 3", len(page.Items))
	}
}

func TestEnsureListPayload_ResourceKeyFallback(t *testing.T) {
	payload := map[string]any{
		"tokens": []any{map[string]any{"id": float64(9)}},
		"total":  float64(41),
		"limit":  float64(20),
		"offset": float64(40),
	}

	page := ensureListPayload(payload, "tokens")

	if len(page.Items) != 1 {
		t.Fatalf("Items length = %d, want 1 (resource key fallback)", len(page.Items))
	}
	if page.Total != 41 || page.Limit != 20 || page.Offset != 40 {
		t.Errorf("pagination = %d/%d/%d, want 41/20/40", page.Total, page.Limit, page.Offset)
	}
}

func TestEnsureListPayload_ExplicitZeroTotalKept(t *testing.T) {
	payload := map[string]any{
		"items": []any{},
		"total": float64(0),
	}

	page := ensureListPayload(payload, "users")
	if page.Total != 0 {
		t.Errorf("Total = %d, want explicit 0", page.Total)
	}
}

func TestEnsureListPayload_NonMapPayload(t *testing.T) {
	page := ensureListPayload("garbage", "users")
	if len(page.Items) != 0 || page.Total != 0 || page.Limit != 0 || page.Offset != 0 {
		t.Errorf("non-map payload should yield an empty page, got %+v", page)
	}
}

func TestEnsureDetailPayload(t *testing.T) {
	t.Run("bare object gets wrapped", func(t *testing.T) {
		bare := map[string]any{"id": float64(1), "username": "alice"}
		got := ensureDetailPayload(bare, "user")
		if !reflect.DeepEqual(got["user"], bare) {
			t.Errorf("got %#v, want bare object under %q", got, "user")
		}
	})

	t.Run("already wrapped passes through", func(t *testing.T) {
		wrapped := map[string]any{"user": map[string]any{"id": float64(1)}}
		got := ensureDetailPayload(wrapped, "user")
		if !reflect.DeepEqual(got, wrapped) {
			t.Errorf("got %#v, want unchanged %#v", got, wrapped)
		}
	})
}

func TestFirstOf_PriorityOrder(t *testing.T) {
	m := map[string]any{"active_count": float64(5), "active": float64(7)}

	v, ok := firstOf(m, "active", "active_count")
	if !ok || v != float64(7) {
		t.Errorf("firstOf = %v, want 7 (first candidate wins)", v)
	}

	v, ok = firstOf(m, "missing", "active_count")
	if !ok || v != float64(5) {
		t.Errorf("firstOf = %v, want fallback 5", v)
	}

	if _, ok := firstOf(m, "nope", "nothing"); ok {
		t.Error("firstOf found a value for absent keys")
	}
}

func TestFirstNonZeroInt_SkipsZero(t *testing.T) {
	m := map[string]any{"new": float64(0), "new_today": float64(4)}

	v, ok := firstNonZeroInt(m, "new", "new_today", "delta")
	if !ok || v != 4 {
		t.Errorf("firstNonZeroInt = %d/%v, want 4/true", v, ok)
	}

	if _, ok := firstNonZeroInt(map[string]any{"new": float64(0)}, "new"); ok {
		t.Error("zero-only fields should read as absent")
	}
}

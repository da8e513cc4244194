package normalize

import (
	"reflect"
	"testing"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "camelCase", in: "userId", want: "user_id"},
		{name: "kebab-case", in: "total-kopeks", want: "total_kopeks"},
		{name: "all caps splits per letter", in: "API", want: "a_p_i"},
		{name: "mixed caps and kebab", in: "API-Key", want: "a_p_i__key"},
		{name: "already snake_case", in: "user_id", want: "user_id"},
		{name: "leading uppercase", in: "TelegramId", want: "telegram_id"},
		{name: "single letter", in: "X", want: "x"},
		{name: "empty", in: "", want: ""},
		{name: "digits untouched", in: "plan2Id", want: "plan2_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnakeCase(tt.in); got != tt.want {
				t.Errorf("SnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPayload(t *testing.T) {
	in := map[string]any{
		"userId": float64(1),
		"items-list": []any{
			map[string]any{"API-Key": "x"},
		},
	}
	want := map[string]any{
		"user_id": float64(1),
		"items_list": []any{
			map[string]any{"a_p_i__key": "x"},
		},
	}

	got := Payload(in)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Payload() = %#v, want %#v", got, want)
	}
}

func TestPayload_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{name: "string", in: "camelCase stays"},
		{name: "number", in: float64(42)},
		{name: "bool", in: true},
		{name: "nil", in: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Payload(tt.in); !reflect.DeepEqual(got, tt.in) {
				t.Errorf("Payload(%#v) = %#v, want unchanged", tt.in, got)
			}
		})
	}
}

func TestPayload_Idempotent(t *testing.T) {
	in := map[string]any{
		"paymentTotals": map[string]any{
			"totalKopeks": float64(1500),
			"sub-blocks":  []any{map[string]any{"newToday": float64(3)}},
		},
	}

	once := Payload(in)
	twice := Payload(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Payload not idempotent: first %#v, second %#v", once, twice)
	}
}

func TestPayload_ListOrderPreserved(t *testing.T) {
	in := []any{"c", "a", "b"}
	got, ok := Payload(in).([]any)
	if !ok {
		t.Fatalf("Payload returned %T, want []any", Payload(in))
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("list order changed: got %v, want %v", got, in)
	}
}

func TestPayload_DeepNesting(t *testing.T) {
	// Realistic API payloads nest well past 20 levels; make sure recursion
	// survives that comfortably.
	leaf := map[string]any{"leafValue": "deep"}
	tree := any(leaf)
	for i := 0; i < 40; i++ {
		tree = map[string]any{"nestedLevel": tree}
	}

	got := Payload(tree)
	for i := 0; i < 40; i++ {
		m, ok := got.(map[string]any)
		if !ok {
			t.Fatalf("level %d: got %T, want map", i, got)
		}
		got = m["nested_level"]
	}
	m, ok := got.(map[string]any)
	if !ok || m["leaf_value"] != "deep" {
		t.Errorf("deep leaf not normalized: %#v", got)
	}
}

// Package services implements the resource-shaped operations the BFF
// exposes: Users, Subscriptions, Tokens, Stats and Health. Each service
// composes the upstream client (and, for the cached reads, the response
// cache) and reshapes the normalized upstream payload into the canonical
// response types, tolerating the several field-name variants the upstream
// is known to emit.
package services

import "encoding/json"

// asMap coerces a payload node to a mapping, yielding an empty map for
// anything else so callers can extract fields without nil checks.
func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

// firstOf returns the value of the first candidate key present and non-nil.
// Candidate order is significant: the preferred upstream field name comes
// first, known aliases follow.
func firstOf(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// intField reads a numeric field as int. JSON decoding produces float64,
// but plain ints are accepted too for convenience.
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// firstNonZeroInt walks the candidate keys and returns the first non-zero
// numeric value. Zero counts are treated the same as absent fields, which
// mirrors how the upstream omits empty sub-blocks.
func firstNonZeroInt(m map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		if v, ok := intField(m, key); ok && v != 0 {
			return v, true
		}
	}
	return 0, false
}

func floatField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// listPage is the canonical paginated shape shared by every list endpoint.
type listPage struct {
	Items  []any
	Total  int
	Limit  int
	Offset int
}

// ensureListPayload coerces a tolerant upstream list payload: the items
// array may live under "items" or a resource-specific key; total defaults
// to the observed item count; limit defaults to the item count when absent
// or zero; offset defaults to 0.
func ensureListPayload(payload any, resourceKey string) listPage {
	m := asMap(payload)

	itemsRaw, _ := firstOf(m, "items", resourceKey)
	items := asList(itemsRaw)

	page := listPage{Items: items, Offset: 0}

	if total, ok := intField(m, "total"); ok {
		page.Total = total
	} else {
		page.Total = len(items)
	}

	if limit, ok := intField(m, "limit"); ok && limit != 0 {
		page.Limit = limit
	} else {
		page.Limit = len(items)
	}

	if offset, ok := intField(m, "offset"); ok {
		page.Offset = offset
	}

	return page
}

// ensureDetailPayload wraps a bare resource object under its singular key.
// Upstream detail endpoints sometimes return the wrapped form and sometimes
// the object itself.
func ensureDetailPayload(payload any, key string) map[string]any {
	m := asMap(payload)
	if _, ok := m[key]; ok {
		return m
	}
	return map[string]any{key: payload}
}

// decodeInto maps a normalized payload onto a typed value via a JSON
// round-trip: unknown upstream fields are dropped, known ones land on
// their snake_case struct tags.
func decodeInto(payload any, target any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

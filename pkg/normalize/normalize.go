// Package normalize rewrites upstream JSON payloads into snake_case form.
//
// The RemnaWave admin API returns camelCase and occasionally kebab-case
// field names. Every upstream response passes through Payload before any
// field is interpreted, so the rest of the codebase only ever deals with
// snake_case keys.
package normalize

import (
	"strings"
	"unicode"
)

// SnakeCase converts a single key to snake_case: hyphens become
// underscores, then an underscore is inserted before every uppercase
// letter that is not the first character, then the whole string is
// lowercased.
//
// Runs of capitals are split per letter: "API" becomes "a_p_i", and a
// hyphen before a capital yields a double underscore ("API-Key" becomes
// "a_p_i__key"). That is intentional: services match exact upstream field
// names like "user_id" and "total_kopeks", and the conversion must stay
// byte-for-byte stable.
func SnakeCase(key string) string {
	key = strings.ReplaceAll(key, "-", "_")

	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Payload recursively rewrites all mapping keys of a JSON-like tree to
// snake_case. Sequence order is preserved, scalars are returned unchanged.
// The function is pure and idempotent: normalizing an already-normalized
// tree yields an equal tree.
func Payload(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[SnakeCase(key)] = Payload(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Payload(item)
		}
		return out
	default:
		return value
	}
}

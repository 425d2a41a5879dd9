package canvas

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coercion helpers for the loose `data` bags the editor produces. They
// never panic and never error: a value that cannot be coerced yields the
// zero result so the compiler can substitute a kind-specific default.

// AsString returns v as a string, or "" if v is not a string.
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsNumber coerces v to a float64. Accepted inputs are JSON numbers,
// Go integer types, and numeric strings. The second result is false when
// v cannot be read as a finite number.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		f := float64(n)
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsBool coerces v to a bool. Strings "true"/"false" (case-insensitive)
// are accepted; anything else yields ok=false.
func AsBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// AsMap returns v as a map[string]any, or nil if v is not an object.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsList returns v as a []any, or nil if v is not an array.
func AsList(v any) []any {
	l, _ := v.([]any)
	return l
}

// AsStringMap flattens an object value into map[string]string, keeping
// only entries whose values are non-empty strings.
func AsStringMap(v any) map[string]string {
	src := AsMap(v)
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, val := range src {
		if s := AsString(val); s != "" {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// AsStringList filters an array value down to its non-blank string
// elements, trimming surrounding whitespace.
func AsStringList(v any) []string {
	var out []string
	for _, item := range AsList(v) {
		if s := strings.TrimSpace(AsString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

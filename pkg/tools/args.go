package tools

import (
	"encoding/json"
	"fmt"
)

// Args is the argument mapping of a tool call as delivered by the
// model. Numbers arrive as float64 from the wire; the accessors
// normalize that.
type Args map[string]any

func (a Args) number(name string) (float64, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// IntOr returns the named number or fallback when absent/invalid.
func (a Args) IntOr(name string, fallback int) int {
	if f, ok := a.number(name); ok {
		return int(f)
	}
	return fallback
}

// RequireInt returns the named number or an error for the result payload.
func (a Args) RequireInt(name string) (int, error) {
	f, ok := a.number(name)
	if !ok {
		return 0, fmt.Errorf("missing required parameter: %s", name)
	}
	return int(f), nil
}

// Int32Ptr returns the named number as *int32, nil when absent.
func (a Args) Int32Ptr(name string) *int32 {
	if f, ok := a.number(name); ok {
		v := int32(f)
		return &v
	}
	return nil
}

// RequireString returns the named non-empty string or an error.
func (a Args) RequireString(name string) (string, error) {
	if s, ok := a[name].(string); ok && s != "" {
		return s, nil
	}
	return "", fmt.Errorf("missing required parameter: %s", name)
}

// StringPtr returns the named string, nil when absent or empty.
func (a Args) StringPtr(name string) *string {
	if s, ok := a[name].(string); ok && s != "" {
		return &s
	}
	return nil
}

// BoolOr returns the named bool or fallback when absent.
func (a Args) BoolOr(name string, fallback bool) bool {
	if b, ok := a[name].(bool); ok {
		return b
	}
	return fallback
}

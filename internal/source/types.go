package source

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one raw coupon as delivered by the coupon source. Keys are
// inconsistently named across sources and any of them may be missing.
type Record map[string]any

// Lookup returns the first key in keys whose value is present and non-empty,
// rendered as text.
func (r Record) Lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := r[key]
		if !ok {
			continue
		}
		if s := Text(v); s != "" {
			return s, true
		}
	}
	return "", false
}

// Text renders a decoded JSON scalar as a string. Null, objects and arrays
// render as "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Label returns a short human label for a record, used in logs.
func (r Record) Label() string {
	if name, ok := r.Lookup("name", "couponName"); ok {
		return strings.TrimSpace(name)
	}
	return "(unnamed)"
}

// Package shelfstore maps documents of the books, members and events
// collections to domain types. Decoding is lenient: a field with the wrong
// type is treated as absent.
package shelfstore

import (
	"math"
	"strconv"
	"strings"
)

func stringField(data map[string]any, key string) string {
	return strings.TrimSpace(rawStringField(data, key))
}

// rawStringField keeps the stored value as is. Genres compare exactly.
func rawStringField(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}

func boolField(data map[string]any, keys ...string) (bool, bool) {
	for _, key := range keys {
		if v, ok := data[key].(bool); ok {
			return v, true
		}
	}
	return false, false
}

func stringsField(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []string:
		return compact(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return compact(out)
	}
	return []string{}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// yearField accepts "2016", 2016 or 2016.0.
func yearField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}

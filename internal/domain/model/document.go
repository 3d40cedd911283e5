package model

import (
	"strconv"
	"strings"
	"time"
)

// Document is a schemaless record as kept by the document store.
type Document map[string]any

// Lookup resolves a dotted path such as "userProfile.uid" through nested documents.
func (d Document) Lookup(path string) (any, bool) {
	var current any = d
	for _, key := range strings.Split(path, ".") {
		var (
			value any
			ok    bool
		)
		switch node := current.(type) {
		case Document:
			value, ok = node[key]
		case map[string]any:
			value, ok = node[key]
		default:
			return nil, false
		}
		if !ok || value == nil {
			return nil, false
		}
		current = value
	}
	return current, true
}

// String returns the trimmed value at path when it is a non-empty scalar.
func (d Document) String(path string) string {
	value, ok := d.Lookup(path)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Time returns the timestamp at path. Stored timestamps may be native times or RFC 3339 strings.
func (d Document) Time(path string) (time.Time, bool) {
	value, ok := d.Lookup(path)
	if !ok {
		return time.Time{}, false
	}
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// Has reports whether path resolves to a non-nil value.
func (d Document) Has(path string) bool {
	_, ok := d.Lookup(path)
	return ok
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge returns a copy of d with top-level keys of other written over it.
func (d Document) Merge(other Document) Document {
	out := d.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

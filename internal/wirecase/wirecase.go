// Package wirecase converts payload keys between the backend wire naming
// convention (snake_case) and the in-process naming convention (camelCase).
//
// The backend stringifies some numeric fields so very large integers survive
// JSON transport; FromWire promotes those back to native numbers when the
// field name is on the caller's allow-list.
package wirecase

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/foliohq/folioclient/internal/encoding"
)

// Opaque marks a value the transformer must not descend into. Pre-validated
// domain objects implement it so their internals keep their casing.
type Opaque interface {
	WireOpaque()
}

// NumericKeys is the allow-list of wire fields FromWire promotes from
// stringified numbers to native ones. The zero value disables promotion.
type NumericKeys struct {
	keys map[string]bool
}

// NoNumericKeys disables numeric promotion entirely.
var NoNumericKeys = NumericKeys{}

// NewNumericKeys builds an allow-list from the given wire field names.
func NewNumericKeys(keys ...string) NumericKeys {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return NumericKeys{keys: m}
}

// DefaultNumericKeys returns the fields the backend is known to stringify.
func DefaultNumericKeys() NumericKeys {
	return NewNumericKeys(
		"task_id",
		"timestamp",
		"start_ts",
		"end_ts",
		"last_balance_save",
		"last_data_upload_ts",
	)
}

// Contains reports whether the wire field name is on the allow-list.
func (n NumericKeys) Contains(key string) bool {
	return n.keys[key]
}

// ToWire recursively rewrites every mapping key from camelCase to snake_case.
// Arrays and primitives pass through with their elements transformed; Opaque
// values pass through untouched.
func ToWire(v interface{}) interface{} {
	switch val := v.(type) {
	case Opaque:
		return val
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, child := range val {
			out[ToSnake(k)] = ToWire(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, child := range val {
			out[i] = ToWire(child)
		}
		return out
	default:
		return v
	}
}

// FromWire is the inverse of ToWire: snake_case keys become camelCase, and
// values of allow-listed fields are promoted from stringified numbers to
// json.Number. Keys already in camelCase pass through unchanged, so FromWire
// is idempotent.
func FromWire(v interface{}, numeric NumericKeys) interface{} {
	switch val := v.(type) {
	case Opaque:
		return val
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, child := range val {
			if numeric.Contains(k) {
				out[ToCamel(k)] = promote(child)
				continue
			}
			out[ToCamel(k)] = FromWire(child, numeric)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, child := range val {
			out[i] = FromWire(child, numeric)
		}
		return out
	default:
		return v
	}
}

// TransformJSON decodes wire JSON, camel-cases its keys, applies numeric
// promotion, and re-encodes it for schema parsing.
func TransformJSON(raw []byte, numeric NumericKeys) ([]byte, error) {
	var decoded interface{}
	if err := encoding.UnmarshalJSON(raw, &decoded); err != nil {
		return nil, err
	}
	return encoding.MarshalJSON(FromWire(decoded, numeric))
}

// ToWireJSON encodes a request body with wire-cased keys. Structs go through
// their json tags first, so tag names stay camelCase like every other
// in-process name, then every key is rewritten to snake_case. A top-level
// Opaque value is encoded as-is.
func ToWireJSON(v interface{}) ([]byte, error) {
	if o, ok := v.(Opaque); ok {
		return encoding.MarshalJSON(o)
	}
	raw, err := encoding.MarshalJSON(v)
	if err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := encoding.UnmarshalJSON(raw, &decoded); err != nil {
		return nil, err
	}
	return encoding.MarshalJSON(ToWire(decoded))
}

// promote converts a stringified number to json.Number. Values it cannot
// parse are returned unchanged.
func promote(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return v
	}
	return json.Number(d.String())
}

// ToSnake converts a camelCase identifier to snake_case. Identifiers already
// in snake_case, and all-lowercase identifiers without separators, come back
// unchanged.
func ToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && needsSeparator(runes, i) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// needsSeparator reports whether an underscore belongs before runes[i]. The
// rune before must not already be a separator, and acronym runs (HTTPCode)
// split only at the last capital of the run.
func needsSeparator(runes []rune, i int) bool {
	prev := runes[i-1]
	if prev == '_' {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// ToCamel converts a snake_case identifier to camelCase. Identifiers without
// separators come back unchanged.
func ToCamel(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	first := true
	for _, p := range parts {
		if p == "" {
			continue
		}
		if first {
			b.WriteString(p)
			first = false
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

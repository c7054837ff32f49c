package common

import (
	"bytes"
	"encoding/json"
)

// Aliases is an ordered list of wire names accepted for one canonical field.
// The first present, non-empty alias wins.
type Aliases []string

// Resolve returns the raw value of the first alias present in fields.
func (a Aliases) Resolve(fields map[string]json.RawMessage) (json.RawMessage, string, bool) {
	for _, name := range a {
		raw, ok := fields[name]
		if !ok || isEmptyJSON(raw) {
			continue
		}
		return raw, name, true
	}
	return nil, "", false
}

// String resolves the alias list to a string. Numbers are returned as written.
func (a Aliases) String(fields map[string]json.RawMessage) string {
	raw, _, ok := a.Resolve(fields)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if raw[0] != '{' && raw[0] != '[' {
		return string(raw)
	}
	return ""
}

// Decode unmarshals the first present alias into out.
func (a Aliases) Decode(fields map[string]json.RawMessage, out any) error {
	raw, _, ok := a.Resolve(fields)
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`))
}

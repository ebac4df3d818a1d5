package rest

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// The backend is not consistent about response shapes: some endpoints
// answer with a bare array, others wrap it in {"data": [...]}; fields
// arrive in snake_case or camelCase depending on the handler, and
// numbers are sometimes serialized as strings. Everything loose is
// absorbed here, before any engine logic runs; nothing past this file
// branches on wire shape.

// unwrapData peels an optional {"data": ...} envelope off a response.
func unwrapData(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return raw
	}
	if len(bytes.TrimSpace(envelope.Data)) == 0 {
		return raw
	}
	return envelope.Data
}

// flexDec is a decimal that tolerates numbers, quoted numbers, null
// and garbage, degrading to zero instead of failing the whole response.
type flexDec struct {
	decimal.Decimal
}

func (f *flexDec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		f.Decimal = decimal.Zero
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(trimmed, &d); err != nil {
		f.Decimal = decimal.Zero
		return nil
	}
	f.Decimal = d
	return nil
}

// flexString accepts either a plain string or an object with a "name"
// field, which is how category references arrive depending on endpoint.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*f = ""
			return nil
		}
		*f = flexString(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		*f = ""
		return nil
	}
	*f = flexString(obj.Name)
	return nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstNonZero returns the first decimal that is not zero, or zero.
func firstNonZero(values ...flexDec) decimal.Decimal {
	for _, v := range values {
		if !v.Decimal.IsZero() {
			return v.Decimal
		}
	}
	return decimal.Zero
}

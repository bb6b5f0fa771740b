package dto

import (
	"bytes"
	"encoding/json"
)

// OptionalString is a string field that never fails to decode. null, a
// missing key or a non-string value all leave Valid false.
type OptionalString struct {
	Value string
	Valid bool
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	*o = OptionalString{}
	if !isJSONString(data) {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		o.Value = ""
		return nil
	}
	o.Valid = true
	return nil
}

// OptionalInt is an integer field that never fails to decode. Only a bare
// JSON integer literal sets Valid: strings like "6" and numbers like 6.5 or
// 6.0 read as absent.
type OptionalInt struct {
	Value int64
	Valid bool
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	*o = OptionalInt{}
	n, ok := jsonNumber(data)
	if !ok {
		return nil
	}
	v, err := n.Int64()
	if err != nil {
		return nil
	}
	*o = OptionalInt{Value: v, Valid: true}
	return nil
}

// OptionalFloat is a number field that never fails to decode.
type OptionalFloat struct {
	Value float64
	Valid bool
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	*o = OptionalFloat{}
	n, ok := jsonNumber(data)
	if !ok {
		return nil
	}
	v, err := n.Float64()
	if err != nil {
		return nil
	}
	*o = OptionalFloat{Value: v, Valid: true}
	return nil
}

func isJSONString(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`))
}

// jsonNumber accepts a bare JSON number only. encoding/json would also
// accept a quoted number into json.Number, which is not what the page said.
func jsonNumber(data []byte) (json.Number, bool) {
	if isJSONString(data) {
		return "", false
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil || n == "" {
		return "", false
	}
	return n, true
}

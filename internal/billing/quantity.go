// Package billing holds the receipt model: raw form input, the coercion rules
// applied to it, and the totals derived from it.
package billing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity is an optional number as typed into a form field.
// The zero value is unset.
type Quantity struct {
	Value float64
	Valid bool
}

// Of returns a set quantity.
func Of(v float64) Quantity {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{}
	}
	return Quantity{Value: v, Valid: true}
}

// ParseQuantity parses raw field text. Empty or non-numeric text yields an
// unset quantity rather than an error.
func ParseQuantity(raw string) Quantity {
	v, ok := parseFinite(raw)
	if !ok {
		return Quantity{}
	}
	return Quantity{Value: v, Valid: true}
}

// Float returns the value, or 0 when unset.
func (q Quantity) Float() float64 {
	if !q.Valid {
		return 0
	}
	return q.Value
}

// String returns the value as it would be typed back into a field, or "" when unset.
func (q Quantity) String() string {
	if !q.Valid {
		return ""
	}
	return strconv.FormatFloat(q.Value, 'f', -1, 64)
}

// MarshalJSON encodes an unset quantity as null.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(q.Value)
}

// UnmarshalJSON accepts numbers, numeric strings, "" and null.
// Anything else that is valid JSON decodes as unset.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = Quantity{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = ParseQuantity(s)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*q = Of(v)
		return nil
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*q = Quantity{}
	return nil
}

// CoerceNumber maps field text to a number. Empty, non-numeric and
// non-finite text all become 0; nothing is rounded.
func CoerceNumber(raw string) float64 {
	v, _ := parseFinite(raw)
	return v
}

func parseFinite(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueText
	ValueNumber
	ValueBool
)

// AttributeValue is the tagged union an item carries per attribute key.
// Attribute values arrive as untyped JSON, so every accessor treats a kind
// mismatch as "no value" instead of failing.
type AttributeValue struct {
	kind    ValueKind
	text    string
	number  float64
	boolean bool
}

func Text(v string) AttributeValue {
	return AttributeValue{kind: ValueText, text: v}
}

func Number(v float64) AttributeValue {
	return AttributeValue{kind: ValueNumber, number: v}
}

func Bool(v bool) AttributeValue {
	return AttributeValue{kind: ValueBool, boolean: v}
}

// ValueOf converts a decoded JSON value into an AttributeValue. Unsupported
// shapes map to the none value.
func ValueOf(v any) AttributeValue {
	switch typed := v.(type) {
	case nil:
		return AttributeValue{}
	case string:
		return Text(typed)
	case float64:
		return Number(typed)
	case int:
		return Number(float64(typed))
	case int64:
		return Number(float64(typed))
	case bool:
		return Bool(typed)
	case AttributeValue:
		return typed
	}
	return AttributeValue{}
}

func (v AttributeValue) Kind() ValueKind { return v.kind }

func (v AttributeValue) IsZero() bool { return v.kind == ValueNone }

// AsText returns the text payload. Only text values qualify, numbers and
// booleans are not stringified here.
func (v AttributeValue) AsText() (string, bool) {
	if v.kind != ValueText {
		return "", false
	}
	return v.text, true
}

func (v AttributeValue) AsNumber() (float64, bool) {
	if v.kind != ValueNumber {
		return 0, false
	}
	return v.number, true
}

// AsBool parses booleans tolerantly: both a real bool and the strings
// "true"/"false" count.
func (v AttributeValue) AsBool() (bool, bool) {
	switch v.kind {
	case ValueBool:
		return v.boolean, true
	case ValueText:
		switch strings.ToLower(strings.TrimSpace(v.text)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// Term renders the value as a term-facet bucket key. Used both for counting
// and for equality filtering, so filters written as "12" match the numeric
// attribute 12.
func (v AttributeValue) Term() (string, bool) {
	switch v.kind {
	case ValueText:
		return v.text, v.text != ""
	case ValueNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64), true
	case ValueBool:
		return strconv.FormatBool(v.boolean), true
	}
	return "", false
}

// EqualsScalar reports whether a scalar filter value selects this attribute
// value. Filter scalars come from JSON, so strings, numbers and booleans are
// all accepted.
func (v AttributeValue) EqualsScalar(filter any) bool {
	switch typed := filter.(type) {
	case string:
		if term, ok := v.Term(); ok {
			return term == typed
		}
	case float64:
		if n, ok := v.AsNumber(); ok {
			return n == typed
		}
	case int:
		if n, ok := v.AsNumber(); ok {
			return n == float64(typed)
		}
	case bool:
		if b, ok := v.AsBool(); ok {
			return b == typed
		}
	}
	return false
}

// UnmarshalJSON accepts any scalar JSON shape; arrays and objects decode to
// the none value.
func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}

// MarshalJSON writes the underlying payload, not the union wrapper.
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueText:
		return strconv.AppendQuote(nil, v.text), nil
	case ValueNumber:
		return strconv.AppendFloat(nil, v.number, 'f', -1, 64), nil
	case ValueBool:
		return strconv.AppendBool(nil, v.boolean), nil
	}
	return []byte("null"), nil
}

package types

import "testing"

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind ValueKind
	}{
		{"string", "Canon", ValueText},
		{"float", 24.2, ValueNumber},
		{"int", 12, ValueNumber},
		{"bool", true, ValueBool},
		{"nil", nil, ValueNone},
		{"object", map[string]any{"a": 1}, ValueNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueOf(tt.in).Kind(); got != tt.kind {
				t.Errorf("ValueOf(%v).Kind() = %d, want %d", tt.in, got, tt.kind)
			}
		})
	}
}

func TestAsBoolTolerantParsing(t *testing.T) {
	tests := []struct {
		value AttributeValue
		want  bool
		ok    bool
	}{
		{Bool(true), true, true},
		{Bool(false), false, true},
		{Text("true"), true, true},
		{Text("false"), false, true},
		{Text(" True "), true, true},
		{Text("yes"), false, false},
		{Number(1), false, false},
	}
	for _, tt := range tests {
		got, ok := tt.value.AsBool()
		if got != tt.want || ok != tt.ok {
			t.Errorf("AsBool(%v) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindMismatchIsNoValue(t *testing.T) {
	if _, ok := Text("abc").AsNumber(); ok {
		t.Error("text value should not read as number")
	}
	if _, ok := Number(3).AsText(); ok {
		t.Error("number value should not read as text")
	}
}

func TestEqualsScalar(t *testing.T) {
	if !Text("Canon").EqualsScalar("Canon") {
		t.Error("text equality failed")
	}
	if Text("Canon").EqualsScalar("Sony") {
		t.Error("text inequality failed")
	}
	if !Number(24).EqualsScalar(24.0) {
		t.Error("number equality failed")
	}
	if !Number(24).EqualsScalar("24") {
		t.Error("numeric string should select the numeric attribute")
	}
	if !Bool(true).EqualsScalar(true) {
		t.Error("bool equality failed")
	}
	if Text("anything").EqualsScalar(nil) {
		t.Error("nil scalar should never match")
	}
}

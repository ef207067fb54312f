package types_test

import (
	"testing"

	"github.com/simonhull/optable/internal/types"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		typeName string
		wantOK   bool
	}{
		{"int", true},
		{"float", true},
		{"bool", true},
		{"str", true},
		{"string", true},
		{"moneyamount", false},
		{"Int", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			_, ok := types.Lookup(tt.typeName)
			if ok != tt.wantOK {
				t.Errorf("Lookup(%q) ok = %v, want %v", tt.typeName, ok, tt.wantOK)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		typeName string
		raw      any
		want     any
		wantErr  bool
	}{
		{"int", "42", int64(42), false},
		{"int", "  1500\n", int64(1500), false},
		{"int", 7, int64(7), false},
		{"int", "fast", nil, true},
		{"int", "010", int64(10), false},
		{"int", "09", int64(9), false},
		{"int", " 007 ", int64(7), false},
		{"int", "-12", int64(-12), false},
		{"int", "0x10", nil, true},
		{"float", "2.5", 2.5, false},
		{"float", " 0.75 ", 0.75, false},
		{"float", "n/a", nil, true},
		{"bool", "true", true, false},
		{"bool", "0", false, false},
		{"bool", "maybe", nil, true},
		{"str", 12, "12", false},
		{"string", " ge-0/0/0 ", "ge-0/0/0", false},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			info, ok := types.Lookup(tt.typeName)
			if !ok {
				t.Fatalf("Lookup(%q) failed", tt.typeName)
			}

			got, err := info.Convert(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("Convert(%v) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Convert(%v) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := types.Names()

	expected := []string{"bool", "float", "int", "str", "string"}
	if len(names) != len(expected) {
		t.Fatalf("Names() returned %d names, want %d", len(names), len(expected))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestStringIsRegistered(t *testing.T) {
	if types.String.GoType != "string" {
		t.Errorf("String.GoType = %q, want %q", types.String.GoType, "string")
	}
}

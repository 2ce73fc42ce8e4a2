package utils

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseLaxFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr error
	}{
		{name: "Integer", input: `10`, want: 10},
		{name: "Float", input: `200.5`, want: 200.5},
		{name: "Negative exponent", input: `-1.5e-2`, want: -0.015},
		{name: "Numeric string", input: `"40.25"`, want: 40.25},
		{name: "Numeric string with spaces", input: `"  7 "`, want: 7},
		{name: "Signed string", input: `"+3"`, want: 3},
		{name: "True", input: `true`, want: 1},
		{name: "False", input: `false`, want: 0},
		{name: "Word string", input: `"ten"`, wantErr: ErrUnparsableText},
		{name: "Empty string", input: `""`, wantErr: ErrUnparsableText},
		{name: "Hex string", input: `"0x10"`, wantErr: ErrUnparsableText},
		{name: "Infinity string", input: `"inf"`, wantErr: ErrNotFinite},
		{name: "NaN string", input: `"NaN"`, wantErr: ErrNotFinite},
		{name: "Overflow literal", input: `1e400`, wantErr: ErrNotFinite},
		{name: "Overflow string", input: `"1e400"`, wantErr: ErrNotFinite},
		{name: "Null", input: `null`, wantErr: ErrNotNumber},
		{name: "Array", input: `[1]`, wantErr: ErrNotNumber},
		{name: "Object", input: `{"v": 1}`, wantErr: ErrNotNumber},
		{name: "Empty", input: ``, wantErr: ErrNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLaxFloat(json.RawMessage(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseLaxFloat(%s) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLaxFloat(%s) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLaxFloat(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatLoc(t *testing.T) {
	tests := []struct {
		name string
		loc  []any
		want string
	}{
		{name: "Field", loc: []any{"body", "Recency"}, want: "('body', 'Recency')"},
		{name: "Body only", loc: []any{"body"}, want: "('body',)"},
		{name: "Offset", loc: []any{"body", 46}, want: "('body', 46)"},
		{name: "Single quote in key", loc: []any{"body", "it's"}, want: `('body', "it's")`},
		{name: "Both quotes in key", loc: []any{"body", `a'"b`}, want: `('body', 'a\'"b')`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLoc(tt.loc); got != tt.want {
				t.Errorf("FormatLoc(%v) = %s, want %s", tt.loc, got, tt.want)
			}
		})
	}
}

package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Reasons a JSON value could not be read as a number
var (
	ErrNotNumber      = errors.New("not a number")
	ErrUnparsableText = errors.New("unable to parse string as a number")
	ErrNotFinite      = errors.New("number is not finite")
)

// ParseLaxFloat reads a single JSON value as a float64 using lax numeric coercion:
// - JSON numbers are taken as-is
// - strings are trimmed and parsed as decimal floats
// - booleans become 1 or 0
// - null, arrays and objects are rejected with ErrNotNumber
func ParseLaxFloat(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, ErrNotNumber
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, ErrUnparsableText
		}
		return parseNumericText(s)
	case 't':
		if string(raw) == "true" {
			return 1, nil
		}
	case 'f':
		if string(raw) == "false" {
			return 0, nil
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			// strconv only fails here on overflow; the literal is valid JSON
			return 0, ErrNotFinite
		}
		return v, nil
	}

	return 0, ErrNotNumber
}

// parseNumericText parses a number written as a string
func parseNumericText(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(strings.ToLower(strings.TrimLeft(s, "+-")), "0x") {
		return 0, ErrUnparsableText
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrNotFinite
		}
		return 0, ErrUnparsableText
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// FormatLoc renders an error location the way a Python tuple prints,
// e.g. ('body', 'Recency') or ('body',).
func FormatLoc(loc []any) string {
	parts := make([]string, 0, len(loc))
	for _, item := range loc {
		switch v := item.(type) {
		case string:
			parts = append(parts, quoteReprString(v))
		case int:
			parts = append(parts, strconv.Itoa(v))
		case int64:
			parts = append(parts, strconv.FormatInt(v, 10))
		default:
			parts = append(parts, quoteReprString(toString(v)))
		}
	}

	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// quoteReprString quotes s with single quotes unless it contains a single quote
// and no double quote.
func quoteReprString(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}

	var b strings.Builder
	b.WriteString(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case string(r) == quote:
			b.WriteString(`\` + quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(quote)
	return b.String()
}

func toString(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

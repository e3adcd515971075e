// Package csvio implements the CSV export/import format for job records:
// RFC-4180-style field quoting, a lookahead-aware tokenizer, the two-level
// interview sub-encoding, flexible date parsing, and versioned header
// detection. Everything here is pure in-memory computation; persistence is
// the caller's concern.
package csvio

import "strings"

// fieldSpecials are the characters that force quoting of a plain CSV field.
const fieldSpecials = ",\"\n"

// interviewSpecials additionally protect the sub-format delimiters so that
// interview notes survive the pipe/semicolon split on decode.
const interviewSpecials = ",\"\n|;"

// EscapeField wraps the value in double quotes and doubles internal quotes
// when it contains a comma, quote, or newline; otherwise it is returned
// unchanged.
func EscapeField(value string) string {
	return escapeAny(value, fieldSpecials)
}

func escapeAny(value, specials string) string {
	if !strings.ContainsAny(value, specials) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// UnescapeField reverses EscapeField: if the value is wrapped in double
// quotes the outer pair is stripped and doubled quotes collapse to one.
func UnescapeField(value string) string {
	if len(value) < 2 || !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
		return value
	}
	return strings.ReplaceAll(value[1:len(value)-1], `""`, `"`)
}

package csvio

import "strings"

// TokenizeRow splits one logical CSV line into unescaped field values.
//
// The scan keeps an "inside quotes" flag. A doubled quote while inside
// quotes is consumed as a single literal quote (lookahead, not naive
// toggling); any other quote toggles the flag. A comma outside quotes ends
// the current field. The accumulated field is always appended at end of
// input, so an empty line yields one empty field.
func TokenizeRow(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// splitRecords breaks a CSV blob into logical rows. Newlines inside quoted
// fields do not terminate a row, so multi-line notes stay in one record.
// Carriage returns before a row break are dropped.
func splitRecords(blob string) []string {
	var records []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(blob)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteString(`""`)
				i++
				continue
			}
			inQuotes = !inQuotes
			cur.WriteRune('"')
		case ch == '\n' && !inQuotes:
			records = append(records, strings.TrimSuffix(cur.String(), "\r"))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	records = append(records, strings.TrimSuffix(cur.String(), "\r"))
	return records
}

// splitQuoted splits s on sep, ignoring separators inside quoted regions.
// Unlike TokenizeRow it preserves the text verbatim, quotes included, so a
// later UnescapeField sees the original escaped form.
func splitQuoted(s string, sep rune) []string {
	var parts []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteString(`""`)
				i++
				continue
			}
			inQuotes = !inQuotes
			cur.WriteRune('"')
		case ch == sep && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

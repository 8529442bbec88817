package ingest

import "strings"

// DefaultDelimiter separates fields in the course CSV export.
const DefaultDelimiter = ','

// ParseLine splits one CSV line into fields using DefaultDelimiter.
func ParseLine(line string) []string {
	return ParseLineDelim(line, DefaultDelimiter)
}

// ParseLineDelim splits line on delim, treating delim as literal inside
// double quotes. Every quote character toggles the quoted state, so a
// doubled quote is two toggles rather than an escape. Each field has one
// wrapping pair of quotes removed and is trimmed. The result always holds
// at least one field; malformed quoting never fails.
func ParseLineDelim(line string, delim rune) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == delim && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())

	for i, f := range fields {
		fields[i] = strings.TrimSpace(unwrapQuotes(f))
	}
	return fields
}

func unwrapQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

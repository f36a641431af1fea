package format

import "strings"

// EscapeCSVField quotes a field for CSV output when it contains a comma,
// a double quote, or a newline. Internal quotes are doubled. Fields without
// any of these characters pass through unchanged.
func EscapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// EscapeTSVField makes a field safe for tab-separated output by replacing
// tabs and line breaks with single spaces.
func EscapeTSVField(field string) string {
	r := strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")
	return r.Replace(field)
}

// CSVLine joins fields into one CSV record (no trailing newline).
func CSVLine(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeCSVField(f)
	}
	return strings.Join(escaped, ",")
}

// TSVLine joins fields into one tab-separated record (no trailing newline).
func TSVLine(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeTSVField(f)
	}
	return strings.Join(escaped, "\t")
}

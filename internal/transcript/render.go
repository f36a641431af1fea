package transcript

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// RenderHTML renders one entry's content as an HTML fragment.
//
// KindText bodies are HTML-escaped and have newlines converted to <br>, so
// text that happens to look like markup is shown literally, never executed.
// KindMarkup bodies were tagged by Classify at receipt and pass through
// verbatim.
func RenderHTML(c Content) string {
	if c.Kind == KindMarkup {
		return c.Body
	}
	escaped := html.EscapeString(c.Body)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

// RenderText renders one entry's content for terminal display. Markup
// fragments are reduced to their text content with tags stripped.
func RenderText(c Content) string {
	if c.Kind != KindMarkup {
		return c.Body
	}
	return strings.TrimSpace(stripTags(c.Body))
}

// stripTags removes HTML tags and unescapes entities. Rows and block ends
// become line breaks so tables stay readable in a terminal.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	var tag strings.Builder
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
			fields := strings.Fields(tag.String())
			if len(fields) == 0 {
				continue
			}
			switch strings.ToLower(strings.TrimPrefix(fields[0], "/")) {
			case "tr", "br", "div", "p", "table":
				b.WriteByte('\n')
			case "td", "th":
				b.WriteByte('\t')
			}
		case inTag:
			tag.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<h1>%s</h1>
`

const htmlFooter = `</body>
</html>
`

// ExportHTML writes the entries as a standalone HTML page.
func ExportHTML(w io.Writer, title string, entries []Entry) error {
	t := html.EscapeString(title)
	if _, err := fmt.Fprintf(w, htmlHeader, t, t); err != nil {
		return fmt.Errorf("write transcript header: %w", err)
	}
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "<div class=\"entry %s\"><span class=\"ts\">%s</span> <strong>%s</strong><div class=\"content\">%s</div></div>\n",
			e.Role, e.Timestamp.Format("15:04:05"), e.Role, RenderHTML(e.Content))
		if err != nil {
			return fmt.Errorf("write transcript entry: %w", err)
		}
	}
	if _, err := io.WriteString(w, htmlFooter); err != nil {
		return fmt.Errorf("write transcript footer: %w", err)
	}
	return nil
}

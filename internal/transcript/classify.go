package transcript

import "strings"

// trustedMarkers is the allow-list of opening-tag signatures emitted by the
// service's structured renderers: the SQL multi-result container, the data
// table and its toolbar wrapper, per-query sections, and their error/empty
// states. The table signature omits the closing bracket because the renderer
// appends a unique id attribute to each table. Anything that carries none of
// these is treated as literal text, so a defect here is a script-injection
// regression, not a cosmetic one. Keep the list exact signatures only.
var trustedMarkers = []string{
	`<div class="sql-results-container">`,
	`<div class="table-container">`,
	`<div class="query-result-section">`,
	`<div class="error-message">`,
	`<div class="no-data">`,
	`<table class="data-table"`,
}

// Classify tags service-produced content exactly once, at the point it is
// received. Bodies containing a recognized signature become KindMarkup;
// everything else is KindText. Presence anywhere in the body counts: the
// service resolves data placeholders inside assistant text, so fragments
// routinely appear mid-message. The renderer never re-inspects the body.
func Classify(body string) Content {
	for _, m := range trustedMarkers {
		if strings.Contains(body, m) {
			return Content{Kind: KindMarkup, Body: body}
		}
	}
	return Content{Kind: KindText, Body: body}
}

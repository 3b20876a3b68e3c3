package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces an HTML body to its visible text. Script and
// style contents are dropped. Returns the input unchanged when it
// cannot be parsed as HTML.
func StripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("script, style").Remove()

	text := doc.Text()
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

package newsapi

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainText strips markup and entities some publishers leave in titles and
// descriptions, and collapses whitespace.
func plainText(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<&") {
		return collapseSpaces(raw)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return collapseSpaces(raw)
	}
	doc.Find("script, style").Remove()
	return collapseSpaces(doc.Text())
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package cleaner

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Validate runs post-transform sanity checks and returns advisory issue
// strings. All checks run independently; issues never block downstream
// processing.
func Validate(doc *goquery.Document) []string {
	var issues []string

	// The parser always synthesizes a body, so emptiness is the signal.
	if doc.Find("body").Children().Length() == 0 {
		issues = append(issues, "missing primary content container")
	}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		id := table.AttrOr("id", "no-id")
		if table.Find("tr").Length() == 0 {
			issues = append(issues, fmt.Sprintf("table %s missing rows", id))
			return
		}
		if table.Find("tr").First().Find("th, td").Length() == 0 {
			issues = append(issues, fmt.Sprintf("table %s first row missing cells", id))
		}
	})

	jsLinks := 0
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		if strings.HasPrefix(a.AttrOr("href", ""), "javascript:") {
			jsLinks++
		}
	})
	if jsLinks > 0 {
		issues = append(issues, fmt.Sprintf("%d javascript links need cleanup", jsLinks))
	}

	// Leftover tab or dropdown classes mean flattening left debris behind.
	residual := 0
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class := s.AttrOr("class", "")
		if strings.Contains(class, "tab-") || strings.Contains(class, "dropdown-") {
			residual++
		}
	})
	if residual > 0 {
		issues = append(issues, fmt.Sprintf("%d residual tab or dropdown elements", residual))
	}

	if len(strings.TrimSpace(doc.Text())) < 100 {
		issues = append(issues, "content may be incomplete")
	}

	return issues
}

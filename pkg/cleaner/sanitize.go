package cleaner

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultKeepAttrs is the attribute whitelist applied after filtering:
// structural and referential attributes survive, everything else goes.
var DefaultKeepAttrs = []string{
	"id", "class", "cellpadding", "cellspacing", "width", "align",
	"href", "src", "alt", "title",
}

// SanitizeAttributes deletes every attribute not in keep from every
// element in the document and returns the number removed. A nil keep
// list uses DefaultKeepAttrs.
func SanitizeAttributes(doc *goquery.Document, keep []string) int {
	if keep == nil {
		keep = DefaultKeepAttrs
	}
	keepSet := make(map[string]bool, len(keep))
	for _, name := range keep {
		keepSet[name] = true
	}

	removed := 0
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		kept := node.Attr[:0]
		for _, attr := range node.Attr {
			if keepSet[attr.Key] {
				kept = append(kept, attr)
			} else {
				removed++
			}
		}
		node.Attr = append([]html.Attribute(nil), kept...)
	})
	return removed
}

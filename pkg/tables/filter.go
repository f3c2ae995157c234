// Package tables filters pricing tables by region and parses the retained
// ones into typed records.
package tables

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxContextNodes caps the backward walk collecting a removed table's
// heading and description.
const maxContextNodes = 3

// contextTextLimit is the longest paragraph still considered a table
// description rather than body copy.
const contextTextLimit = 200

// RegionDecider answers whether a table id is excluded for a region.
// regions.Filter satisfies it.
type RegionDecider interface {
	ShouldFilter(tableID, region, product string) bool
}

// FilterResult summarizes one region-filter pass over a document.
type FilterResult struct {
	Filtered int `json:"filtered"`
	Retained int `json:"retained"`

	// RetainedIDs preserves document order. Empty ids are kept as empty
	// strings and duplicates are not collapsed; consumers must tolerate
	// both.
	RetainedIDs []string `json:"retained_ids"`
}

// FilterByRegion removes every table the decider excludes for the given
// region, along with the table's immediately preceding heading and short
// description. The document is mutated in place.
func FilterByRegion(doc *goquery.Document, decider RegionDecider, region, product string) FilterResult {
	result := FilterResult{RetainedIDs: []string{}}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		id := table.AttrOr("id", "")
		if decider.ShouldFilter(id, region, product) {
			removeWithContext(table.Get(0))
			result.Filtered++
			return
		}
		result.Retained++
		result.RetainedIDs = append(result.RetainedIDs, id)
	})

	return result
}

// removeWithContext removes a table plus the heading/description siblings
// that introduce it. The backward walk collects h2-h5 elements and short
// paragraphs until it has three candidates or hits another table or div,
// which marks the edge of this table's contextual region. Context is
// removed in reverse collection order, then the table itself.
func removeWithContext(table *html.Node) {
	var context []*html.Node

walk:
	for prev := table.PrevSibling; prev != nil && len(context) < maxContextNodes; prev = prev.PrevSibling {
		if prev.Type != html.ElementNode {
			continue
		}
		switch prev.Data {
		case "h2", "h3", "h4", "h5":
			context = append(context, prev)
		case "p":
			if utf8.RuneCountInString(nodeText(prev)) < contextTextLimit {
				context = append(context, prev)
			}
		case "table", "div":
			break walk
		}
	}

	for i := len(context) - 1; i >= 0; i-- {
		detach(context[i])
	}
	detach(table)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// nodeText returns the trimmed visible text of a node's subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Cleaner runs the ordered cleaning passes over a document.
type Cleaner struct {
	config *Config
}

// New creates a Cleaner. A nil config uses DefaultConfig().
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Cleaner{config: config}
}

// Clean mutates doc through the configured passes and returns per-pass
// counts. Order matters: chrome goes first so tab flattening and pruning
// operate on content only. Absent elements are a no-op for their pass.
func (c *Cleaner) Clean(doc *goquery.Document) *Stats {
	stats := &Stats{}

	if c.config.StripResourceTags {
		c.removeResourceTags(doc, stats)
	}
	if c.config.StripComments {
		c.removeComments(doc, stats)
	}
	c.removeInteractive(doc, stats)
	if c.config.FlattenTabs {
		c.flattenTabs(doc, stats)
	}
	if c.config.PruneEmptyContainers {
		c.pruneEmptyContainers(doc, stats)
	}

	return stats
}

// removeResourceTags drops link, style and script elements.
func (c *Cleaner) removeResourceTags(doc *goquery.Document, stats *Stats) {
	doc.Find("link, style, script").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
		stats.ResourceTagsRemoved++
	})
}

// removeComments walks the raw node tree; goquery selections only cover
// elements, so comment nodes are handled at the html.Node level.
func (c *Cleaner) removeComments(doc *goquery.Document, stats *Stats) {
	for _, root := range doc.Nodes {
		for _, comment := range collectComments(root) {
			comment.Parent.RemoveChild(comment)
			stats.CommentsRemoved++
		}
	}
}

func collectComments(n *html.Node) []*html.Node {
	var comments []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.CommentNode {
			comments = append(comments, child)
			continue
		}
		comments = append(comments, collectComments(child)...)
	}
	return comments
}

// removeInteractive drops the fixed set of navigational chrome.
func (c *Cleaner) removeInteractive(doc *goquery.Document, stats *Stats) {
	for _, selector := range c.config.InteractiveSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			s.Remove()
			stats.InteractiveRemoved++
		})
	}
}

// pruneEmptyContainers removes containers with no visible text and no
// important descendants. Bounded multi-pass, stopping early once a pass
// removes nothing.
func (c *Cleaner) pruneEmptyContainers(doc *goquery.Document, stats *Stats) {
	importantSelector := strings.Join(c.config.ImportantTags, ", ")

	for pass := 0; pass < c.config.MaxPrunePasses; pass++ {
		removed := 0
		doc.Find("div, section, article, aside").Each(func(_ int, s *goquery.Selection) {
			// Removing an outer container in this pass leaves its nested
			// empties in the snapshot; count only nodes still in the tree.
			if detached(s.Get(0)) {
				return
			}
			if strings.TrimSpace(s.Text()) != "" {
				return
			}
			if s.Find(importantSelector).Length() > 0 {
				return
			}
			s.Remove()
			removed++
		})
		stats.EmptyContainersGone += removed
		if removed == 0 {
			break
		}
	}
}

package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// flattenTabs hoists the content of tabbed panels into linear document
// flow. Two rounds: first the tab-content containers, whose tab-panel
// children hold the real content, then the looser tab-like container
// classes. Extracted elements are deep-copied before reinsertion so the
// copies stay valid once the original container is torn down.
func (c *Cleaner) flattenTabs(doc *goquery.Document, stats *Stats) {
	doc.Find("div.tab-content").Each(func(_ int, container *goquery.Selection) {
		node := container.Get(0)
		if detached(node) {
			// Nested inside a container removed earlier in this pass.
			return
		}

		var content []*html.Node
		container.Find("div.tab-panel").Each(func(_ int, panel *goquery.Selection) {
			content = append(content, c.extractPanelContent(panel)...)
		})

		// A tab-content with nothing extractable stays put; the empty
		// prune or the validator picks it up later.
		if len(content) == 0 {
			return
		}
		insertBefore(node, content)
		removeNode(node)
		stats.TabContainersFlat++
	})

	for _, class := range c.config.TabLikeClasses {
		doc.Find("div."+class).Each(func(_ int, container *goquery.Selection) {
			node := container.Get(0)
			if detached(node) {
				return
			}
			insertBefore(node, c.extractUsefulContent(container))
			removeNode(node)
			stats.TabContainersFlat++
		})
	}
}

// extractPanelContent pulls the content elements out of one tab panel.
// Direct structural children are preferred; only when a panel nests its
// content deeper does the scan widen to the whole subtree. Tab scaffolding
// is skipped in both cases.
func (c *Cleaner) extractPanelContent(panel *goquery.Selection) []*html.Node {
	wanted := make(map[string]bool, len(c.config.PanelContentTags))
	for _, tag := range c.config.PanelContentTags {
		wanted[tag] = true
	}

	var content []*html.Node
	panel.Children().Each(func(_ int, s *goquery.Selection) {
		if !wanted[goquery.NodeName(s)] || c.isTabRelated(s) {
			return
		}
		content = append(content, cloneTree(s.Get(0)))
	})
	if len(content) > 0 {
		return content
	}

	panel.Find(strings.Join(c.config.PanelContentTags, ", ")).Each(func(_ int, s *goquery.Selection) {
		if c.isTabRelated(s) {
			return
		}
		content = append(content, cloneTree(s.Get(0)))
	})
	return content
}

// extractUsefulContent scans a tab-like container's whole subtree for
// content elements, skipping tab scaffolding.
func (c *Cleaner) extractUsefulContent(container *goquery.Selection) []*html.Node {
	var content []*html.Node
	container.Find(strings.Join(c.config.ContainerContentTags, ", ")).Each(func(_ int, s *goquery.Selection) {
		if c.isTabRelated(s) {
			return
		}
		content = append(content, cloneTree(s.Get(0)))
	})
	return content
}

// isTabRelated reports whether an element's class attribute carries any of
// the tab vocabulary. Substring match, like the markup itself: classes such
// as "tab-container-box" must count as tab-related.
func (c *Cleaner) isTabRelated(s *goquery.Selection) bool {
	class, ok := s.Attr("class")
	if !ok {
		return false
	}
	for _, word := range c.config.TabVocabulary {
		if strings.Contains(class, word) {
			return true
		}
	}
	return false
}

// cloneTree deep-copies a node and its subtree, detached from any parent.
func cloneTree(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		clone.AppendChild(cloneTree(child))
	}
	return clone
}

// detached reports whether n no longer hangs off the document root.
func detached(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return false
		}
	}
	return true
}

func insertBefore(ref *html.Node, nodes []*html.Node) {
	if ref.Parent == nil {
		return
	}
	for _, n := range nodes {
		ref.Parent.InsertBefore(n, ref)
	}
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

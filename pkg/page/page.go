// Package page extracts structured page content from the raw pricing
// document: product metadata, the region list, service tiers, FAQs and
// pricing-rule notes. It reads the document before cleaning, since the
// cleaner removes the navigation these parsers rely on.
package page

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ProductInfo is the page-level product metadata.
type ProductInfo struct {
	Name            string   `json:"product_name,omitempty"`
	NameEN          string   `json:"product_name_en,omitempty"`
	Description     string   `json:"description,omitempty"`
	IconURL         string   `json:"icon_url,omitempty"`
	PageTitle       string   `json:"page_title,omitempty"`
	MetaKeywords    []string `json:"meta_keywords,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	CanonicalURL    string   `json:"canonical_url,omitempty"`
}

// Region is one entry of the page's region selector.
type Region struct {
	ID     string `json:"region_id"`
	Name   string `json:"region_name"`
	Active bool   `json:"is_active"`
}

// ServiceTier is one tab of the pricing page's tier navigation.
type ServiceTier struct {
	ID          string        `json:"tier_id"`
	Name        string        `json:"tier_name"`
	Level       int           `json:"tier_level"`
	Description string        `json:"description,omitempty"`
	Features    []string      `json:"features,omitempty"`
	SubTiers    []ServiceTier `json:"sub_tiers,omitempty"`
}

// FAQ is one question/answer pair from the page's detail section.
type FAQ struct {
	ID       string `json:"faq_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

// Rule is a free-text pricing rule lifted from body paragraphs.
type Rule struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// ParseProduct reads title, meta tags and the product banner.
func ParseProduct(doc *goquery.Document) ProductInfo {
	var info ProductInfo

	info.PageTitle = strings.TrimSpace(doc.Find("title").First().Text())
	if content, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		for _, kw := range strings.Split(content, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				info.MetaKeywords = append(info.MetaKeywords, kw)
			}
		}
	}
	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		info.MetaDescription = content
	}
	if href, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		info.CanonicalURL = href
	}

	banner := doc.Find("div.common-banner").First()
	if banner.Length() == 0 {
		return info
	}

	h2 := banner.Find("h2").First()
	full := strings.TrimSpace(h2.Text())
	if small := h2.Find("small").First(); small.Length() > 0 {
		info.NameEN = strings.TrimSpace(small.Text())
		info.Name = strings.TrimSpace(strings.Replace(full, info.NameEN, "", 1))
	} else {
		info.Name = full
	}
	info.Description = strings.TrimSpace(banner.Find("h4").First().Text())
	if src, ok := banner.Find("img").First().Attr("src"); ok {
		info.IconURL = src
	}
	return info
}

// ParseRegions reads the region selector. The second return value is the
// id of the active region, or "" when none is marked active.
func ParseRegions(doc *goquery.Document) ([]Region, string) {
	var list []Region
	active := ""

	doc.Find("div.region-container").First().Find("a, option").Each(func(_ int, opt *goquery.Selection) {
		id := opt.AttrOr("id", opt.AttrOr("value", ""))
		name := strings.TrimSpace(opt.Text())
		if id == "" || name == "" {
			return
		}

		isActive := false
		if li := opt.Closest("li"); li.Length() > 0 && li.HasClass("active") {
			isActive = true
		}
		if goquery.NodeName(opt) == "option" {
			if _, ok := opt.Attr("selected"); ok {
				isActive = true
			}
		}
		if isActive && active == "" {
			active = id
		}

		list = append(list, Region{ID: id, Name: name, Active: isActive})
	})

	return list, active
}

// ParseTiers reads the top-level tab navigation into a tier hierarchy.
func ParseTiers(doc *goquery.Document) []ServiceTier {
	nav := doc.Find("ul.tab-nav").First()
	if nav.Length() == 0 {
		return nil
	}

	var tiers []ServiceTier
	nav.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a").First()
		if a.Length() == 0 {
			return
		}
		id := strings.TrimPrefix(a.AttrOr("id", ""), "home_")
		if id == "" {
			return
		}

		tier := ServiceTier{
			ID:    id,
			Name:  strings.TrimSpace(a.Text()),
			Level: 1,
		}

		panelID := strings.TrimPrefix(a.AttrOr("data-href", ""), "#")
		if panelID != "" {
			panel := doc.Find("div#" + panelID).First()
			if panel.Length() > 0 {
				tier.Description = strings.TrimSpace(panel.Find("p").First().Text())
				panel.Find("ul").First().Find("li").Each(func(_ int, item *goquery.Selection) {
					if feature := strings.TrimSpace(item.Text()); feature != "" {
						tier.Features = append(tier.Features, feature)
					}
				})
				tier.SubTiers = parseSubTiers(doc, panel)
			}
		}

		tiers = append(tiers, tier)
	})
	return tiers
}

func parseSubTiers(doc *goquery.Document, panel *goquery.Selection) []ServiceTier {
	var subs []ServiceTier
	panel.Find("ul.tab-nav").First().Find("li a").Each(func(_ int, a *goquery.Selection) {
		id := strings.TrimPrefix(a.AttrOr("id", ""), "home_")
		if id == "" {
			return
		}
		sub := ServiceTier{
			ID:    id,
			Name:  strings.TrimSpace(a.Text()),
			Level: 2,
		}
		subPanelID := strings.TrimPrefix(a.AttrOr("data-href", ""), "#")
		if subPanelID != "" {
			subPanel := panel.Find("div#" + subPanelID).First()
			if subPanel.Length() > 0 {
				sub.Description = strings.TrimSpace(subPanel.Find("p").First().Text())
			}
		}
		subs = append(subs, sub)
	})
	return subs
}

// ParseFAQs reads the detail section's question/answer list. Categories
// are keyword-driven: billing terms map to "pricing", migration wording
// to "migration", everything else to "general".
func ParseFAQs(doc *goquery.Document) []FAQ {
	section := doc.Find("div.more-detail").First()
	if section.Length() == 0 {
		return nil
	}

	var faqs []FAQ
	section.Find("li").Each(func(i int, li *goquery.Selection) {
		question := li.Find("a").First()
		answer := li.Find("section").First()
		if question.Length() == 0 || answer.Length() == 0 {
			return
		}

		faq := FAQ{
			ID:       question.AttrOr("id", fmt.Sprintf("faq_%d", i)),
			Question: strings.TrimSpace(question.Text()),
			Answer:   strings.TrimSpace(answer.Text()),
			Order:    i,
		}
		switch {
		case strings.Contains(faq.Question, "计费") || strings.Contains(faq.Question, "价格"):
			faq.Category = "pricing"
		case strings.Contains(faq.Question, "迁移"):
			faq.Category = "migration"
		default:
			faq.Category = "general"
		}
		faqs = append(faqs, faq)
	})
	return faqs
}

// ParseRules scans body paragraphs for pricing-rule statements: backup
// allowances, included IOPS, SLA commitments.
func ParseRules(doc *goquery.Document) map[string]Rule {
	rules := make(map[string]Rule)

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			return
		}
		if _, seen := rules["backup"]; !seen && strings.Contains(text, "备份存储") && strings.Contains(text, "100%") {
			rules["backup"] = Rule{Summary: "100% of provisioned storage included", Description: text}
		}
		if _, seen := rules["iops"]; !seen && strings.Contains(text, "IOPS") && strings.Contains(text, "3 IOPS/GB") {
			rules["iops"] = Rule{Summary: "3 IOPS per GB included", Description: text}
		}
		if _, seen := rules["sla"]; !seen && (strings.Contains(text, "SLA") || strings.Contains(text, "99.99%")) {
			rules["sla"] = Rule{Summary: "99.99% availability", Description: text}
		}
	})

	return rules
}

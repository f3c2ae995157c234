package extract

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pricecarve/pricecarve/internal/logger"
	"github.com/pricecarve/pricecarve/pkg/cleaner"
	"github.com/pricecarve/pricecarve/pkg/page"
	"github.com/pricecarve/pricecarve/pkg/regions"
	"github.com/pricecarve/pricecarve/pkg/tables"
)

// Result is the per-region extraction outcome.
type Result struct {
	Region           string         `json:"region"`
	HTML             string         `json:"-"`
	Size             int            `json:"size_bytes"`
	RetainedTableIDs []string       `json:"retained_table_ids"`
	FilteredTables   int            `json:"filtered_tables"`
	RetainedTables   int            `json:"retained_tables"`
	Tables           []tables.Table `json:"tables,omitempty"`
	AttrsRemoved     int            `json:"attributes_removed"`
	CleanStats       *cleaner.Stats `json:"clean_stats,omitempty"`
	Issues           []string       `json:"issues,omitempty"`
	Duration         time.Duration  `json:"-"`
	Error            error          `json:"-"`
}

// Summary is the page-level content shared by every region.
type Summary struct {
	Product  page.ProductInfo       `json:"product"`
	Regions  []page.Region          `json:"regions,omitempty"`
	Active   string                 `json:"active_region,omitempty"`
	Tiers    []page.ServiceTier     `json:"service_tiers,omitempty"`
	FAQs     []page.FAQ             `json:"faqs,omitempty"`
	Rules    map[string]page.Rule   `json:"pricing_rules,omitempty"`
	Mappings []regions.TableMapping `json:"table_mappings,omitempty"`
	Stats    DocStats               `json:"stats"`
}

// DocStats counts the structural elements of the raw page.
type DocStats struct {
	Tables     int  `json:"tables"`
	Paragraphs int  `json:"paragraphs"`
	Headings   int  `json:"headings"`
	Images     int  `json:"images"`
	HasBanner  bool `json:"has_banner"`
	HasFAQs    bool `json:"has_faq_section"`
}

// Extractor carves region-specific documents out of one source page.
type Extractor struct {
	config Config
	filter *regions.Filter
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Extractor{
		config: cfg,
		filter: regions.NewFilter(cfg.Rules),
	}
}

// Describe parses page-level content from the raw document: product
// metadata, the region list, service tiers, FAQs and pricing rules.
func (e *Extractor) Describe(rawHTML string) (*Summary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	s := &Summary{
		Product: page.ParseProduct(doc),
		Tiers:   page.ParseTiers(doc),
		FAQs:    page.ParseFAQs(doc),
		Rules:   page.ParseRules(doc),
	}
	s.Regions, s.Active = page.ParseRegions(doc)
	s.Stats = DocStats{
		Tables:     doc.Find("table").Length(),
		Paragraphs: doc.Find("p").Length(),
		Headings:   doc.Find("h1, h2, h3, h4, h5, h6").Length(),
		Images:     doc.Find("img").Length(),
		HasBanner:  doc.Find("div.common-banner").Length() > 0,
		HasFAQs:    doc.Find("div.more-detail").Length() > 0,
	}

	var ids []string
	doc.Find("table[id]").Each(func(_ int, t *goquery.Selection) {
		ids = append(ids, t.AttrOr("id", ""))
	})
	if rules := e.filter.Rules(); rules.Len() > 0 {
		s.Mappings = rules.Mappings(e.config.Product, ids)
	}
	return s, nil
}

// ExtractRegion produces the cleaned, filtered document for one region.
// The raw HTML is reparsed from scratch so concurrent calls never share
// a document tree.
func (e *Extractor) ExtractRegion(rawHTML, region string) (*Result, error) {
	start := time.Now()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	info := page.ParseProduct(doc)
	title := e.config.Title
	if title == "" {
		title = info.Name
	}
	if title == "" {
		title = info.PageTitle
	}

	stats := cleaner.New(e.config.Cleaner).Clean(doc)

	filtered := tables.FilterByRegion(doc, e.filter, region, e.config.Product)
	// SanitizeAttributes defaults on nil only; an empty whitelist here
	// means "use the defaults", not "strip everything".
	keep := e.config.KeepAttrs
	if len(keep) == 0 {
		keep = nil
	}
	removed := cleaner.SanitizeAttributes(doc, keep)

	var issues []string
	if e.config.Validate {
		issues = cleaner.Validate(doc)
	}

	parsed := tables.ParseAll(doc)

	body, err := doc.Find("body").First().Html()
	if err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}

	out := page.BuildHTML(body, page.BuildOptions{
		Title:       title,
		Region:      region,
		Description: info.MetaDescription,
		Keywords:    info.MetaKeywords,
	})

	res := &Result{
		Region:           region,
		HTML:             out,
		Size:             len(out),
		RetainedTableIDs: filtered.RetainedIDs,
		FilteredTables:   filtered.Filtered,
		RetainedTables:   filtered.Retained,
		Tables:           parsed,
		AttrsRemoved:     removed,
		CleanStats:       stats,
		Issues:           issues,
		Duration:         time.Since(start),
	}

	logger.Debug("region extracted",
		"region", region,
		"retained_tables", res.RetainedTables,
		"filtered_tables", res.FilteredTables,
		"size", res.Size,
		"duration", res.Duration)

	return res, nil
}

// ExtractAll extracts every region concurrently. Results arrive in
// completion order; a failed region carries its error in Result.Error.
func (e *Extractor) ExtractAll(rawHTML string, regionIDs []string, concurrency int) <-chan *Result {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make(chan *Result, len(regionIDs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, region := range regionIDs {
		wg.Add(1)
		go func(r string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := e.ExtractRegion(rawHTML, r)
			if err != nil {
				results <- &Result{Region: r, Error: err}
				return
			}
			results <- res
		}(region)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Regions returns the extraction targets for a document: the rule set's
// configured regions when present, otherwise the page's own selector.
func (e *Extractor) Regions(rawHTML string) ([]string, error) {
	if rules := e.filter.Rules(); rules.Len() > 0 {
		if configured := rules.Regions(e.config.Product); len(configured) > 0 {
			return configured, nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	listed, _ := page.ParseRegions(doc)
	ids := make([]string, 0, len(listed))
	for _, r := range listed {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

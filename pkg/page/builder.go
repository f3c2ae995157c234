package page

import (
	"fmt"
	"strings"
	"time"
)

// BuildOptions controls the skeleton the cleaned body is wrapped in.
type BuildOptions struct {
	Title       string
	Region      string
	Description string
	Keywords    []string
	Generator   string
	// ExtractedAt stamps the document. Zero means time.Now.
	ExtractedAt time.Time
}

// BuildHTML wraps a cleaned body fragment in a minimal standalone
// document. The title is always "{title} - {region}".
func BuildHTML(body string, opts BuildOptions) string {
	title := opts.Title
	if title == "" {
		title = "Pricing"
	}
	region := opts.Region
	if region == "" {
		region = "all-regions"
	}
	generator := opts.Generator
	if generator == "" {
		generator = "pricecarve"
	}
	ts := opts.ExtractedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="zh-cn">` + "\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	fmt.Fprintf(&b, "<title>%s - %s</title>\n", title, region)
	if opts.Description != "" {
		fmt.Fprintf(&b, "<meta name=\"description\" content=%q>\n", opts.Description)
	}
	if len(opts.Keywords) > 0 {
		fmt.Fprintf(&b, "<meta name=\"keywords\" content=%q>\n", strings.Join(opts.Keywords, ","))
	}
	fmt.Fprintf(&b, "<meta name=\"generator\" content=%q>\n", generator)
	fmt.Fprintf(&b, "<meta name=\"extracted-at\" content=%q>\n", ts.Format(time.RFC3339))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

package tables

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Type classifies a pricing table by what its rows describe.
type Type string

const (
	TypeCompute Type = "compute"
	TypeStorage Type = "storage"
	TypeBackup  Type = "backup"
	TypeIOPS    Type = "iops"
	TypeOther   Type = "other"
)

// Table is the structured form of one retained pricing table.
type Table struct {
	ID          string   `json:"table_id"`
	Name        string   `json:"table_name"`
	Type        Type     `json:"table_type"`
	Description string   `json:"description,omitempty"`
	Headers     []string `json:"headers"`
	Rows        []Row    `json:"rows"`
}

// Row is one priced line item. Exactly which fields are set depends on
// the table type; PriceHourly defaults to zero rather than nil because
// compute tiers may legitimately list no unit price.
type Row struct {
	InstanceName           string   `json:"instance_name"`
	VCores                 *int     `json:"vcores,omitempty"`
	Memory                 string   `json:"memory,omitempty"`
	PriceHourly            float64  `json:"price_hourly"`
	PriceMonthly           *float64 `json:"price_monthly,omitempty"`
	PriceWithDiscount      *float64 `json:"price_with_discount,omitempty"`
	DiscountSavingsPercent *float64 `json:"discount_savings_percent,omitempty"`
}

// Classify determines a table's type. The id substring wins when present;
// otherwise the first row's header texts decide; otherwise "other".
func Classify(table *goquery.Selection, id string) Type {
	idLower := strings.ToLower(id)
	switch {
	case strings.Contains(idLower, "iops"):
		return TypeIOPS
	case strings.Contains(idLower, "storage"):
		return TypeStorage
	case strings.Contains(idLower, "backup"):
		return TypeBackup
	}

	for _, header := range headerTexts(table) {
		h := strings.ToLower(header)
		switch {
		case strings.Contains(h, "vcore"):
			return TypeCompute
		case strings.Contains(h, "gb/月"):
			return TypeStorage
		case strings.Contains(h, "iops"):
			return TypeIOPS
		}
	}
	return TypeOther
}

// Parse extracts a typed record from one table element. It returns nil
// when no row survives parsing; a table with nothing priced in it is
// dropped silently, not reported.
func Parse(table *goquery.Selection) *Table {
	id := table.AttrOr("id", "")
	record := &Table{
		ID:          id,
		Type:        Classify(table, id),
		Name:        findTitle(table),
		Description: findDescription(table),
		Headers:     headerTexts(table),
	}

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := cellTexts(tr)
		if len(cells) == 0 {
			return
		}

		var row *Row
		switch record.Type {
		case TypeCompute:
			row = parseComputeRow(cells)
		case TypeStorage, TypeBackup, TypeIOPS:
			row = parseSimpleRow(cells)
		default:
			row = parseGenericRow(cells)
		}
		if row != nil {
			record.Rows = append(record.Rows, *row)
		}
	})

	if len(record.Rows) == 0 {
		return nil
	}
	return record
}

// ParseAll extracts typed records from every table in the document, in
// document order.
func ParseAll(doc *goquery.Document) []Table {
	var records []Table
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if record := Parse(table); record != nil {
			records = append(records, *record)
		}
	})
	return records
}

// parseComputeRow handles instance tier rows: name, vcores, memory,
// price. A row whose vcore cell is not an integer is dropped; a zero
// price is kept since tier entries may be informational.
func parseComputeRow(cells []string) *Row {
	if len(cells) < 4 {
		return nil
	}
	vcores, err := strconv.Atoi(strings.TrimSpace(cells[1]))
	if err != nil {
		return nil
	}
	hourly, monthly := ParsePriceText(cells[3])

	row := &Row{
		InstanceName: cells[0],
		VCores:       &vcores,
		Memory:       cells[2],
		PriceHourly:  hourly,
	}
	if monthly > 0 {
		row.PriceMonthly = &monthly
	}
	return row
}

// parseSimpleRow handles two-column storage/backup/iops rows: a name and
// a single price whose unit token decides which field it lands in.
// Exactly one of the two price fields is populated.
func parseSimpleRow(cells []string) *Row {
	if len(cells) < 2 {
		return nil
	}
	amount, ok := CurrencyAmount(cells[1])
	if !ok || amount <= 0 {
		return nil
	}

	row := &Row{InstanceName: cells[0]}
	if strings.Contains(cells[1], hourlyUnit) {
		row.PriceHourly = amount
	} else {
		row.PriceMonthly = &amount
	}
	return row
}

// parseGenericRow scans every cell for prices and keeps the first nonzero
// hourly and monthly values found. Rows without any positive price are
// dropped.
func parseGenericRow(cells []string) *Row {
	var hourly, monthly float64
	for _, cell := range cells {
		if !strings.Contains(cell, "￥") {
			continue
		}
		h, m := ParsePriceText(cell)
		if hourly == 0 && h > 0 {
			hourly = h
		}
		if monthly == 0 && m > 0 {
			monthly = m
		}
	}
	if hourly <= 0 && monthly <= 0 {
		return nil
	}

	row := &Row{InstanceName: cells[0], PriceHourly: hourly}
	if monthly > 0 {
		row.PriceMonthly = &monthly
	}
	return row
}

// headerTexts returns the trimmed cell texts of a table's first row.
func headerTexts(table *goquery.Selection) []string {
	var headers []string
	table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(cell.Text()))
	})
	return headers
}

func cellTexts(tr *goquery.Selection) []string {
	var cells []string
	tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

// findTitle walks backward through preceding siblings for the heading
// introducing this table, stopping at another table.
func findTitle(table *goquery.Selection) string {
	for prev := table.Get(0).PrevSibling; prev != nil; prev = prev.PrevSibling {
		if prev.Type != html.ElementNode {
			continue
		}
		switch prev.Data {
		case "h2", "h3", "h4":
			return nodeText(prev)
		case "table":
			return ""
		}
	}
	return ""
}

// findDescription returns the nearest preceding short paragraph.
func findDescription(table *goquery.Selection) string {
	for prev := table.Get(0).PrevSibling; prev != nil; prev = prev.PrevSibling {
		if prev.Type != html.ElementNode {
			continue
		}
		switch prev.Data {
		case "p":
			return nodeText(prev)
		case "table":
			return ""
		}
	}
	return ""
}

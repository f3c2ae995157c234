package regions

import (
	"testing"
)

const testRules = `[
	{"os": "Azure Database for MySQL", "region": "north-china3", "tableIDs": ["#mysql_flex_6", "mysql_iops_east3"]},
	{"os": "Azure Database for MySQL", "region": "east-china", "tableIDs": []},
	{"os": "Azure Storage Files", "region": "north-china3", "tableIDs": ["files_premium"]},
	{"os": "", "region": "north-china", "tableIDs": ["orphan"]},
	{"os": "Azure Database for MySQL", "region": "", "tableIDs": ["orphan2"]}
]`

const testProduct = "Azure Database for MySQL"

func mustParse(t *testing.T, data string) *RuleSet {
	t.Helper()
	rs, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return rs
}

func TestParse(t *testing.T) {
	rs := mustParse(t, testRules)

	// The two records missing os/region are dropped.
	if rs.Len() != 3 {
		t.Errorf("expected 3 indexed rules, got %d", rs.Len())
	}

	t.Run("invalid JSON", func(t *testing.T) {
		if _, err := Parse([]byte("{not json")); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("later rule overwrites earlier", func(t *testing.T) {
		dup := `[
			{"os": "p", "region": "r", "tableIDs": ["a"]},
			{"os": "p", "region": "r", "tableIDs": ["b"]}
		]`
		rs := mustParse(t, dup)
		lookup := rs.Lookup("p", "r")
		if len(lookup.ExcludedIDs) != 1 || lookup.ExcludedIDs[0] != "b" {
			t.Errorf("expected overwrite to [b], got %v", lookup.ExcludedIDs)
		}
	})
}

func TestLookup(t *testing.T) {
	rs := mustParse(t, testRules)

	tests := []struct {
		name    string
		product string
		region  string
		status  LookupStatus
	}{
		{"configured region", testProduct, "north-china3", Found},
		{"explicit empty list", testProduct, "east-china", ExplicitlyEmpty},
		{"unknown region", testProduct, "mars-china1", NotConfigured},
		{"unknown product", "No Such Product", "north-china3", NotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rs.Lookup(tt.product, tt.region).Status; got != tt.status {
				t.Errorf("Lookup(%q, %q) status = %v, want %v", tt.product, tt.region, got, tt.status)
			}
		})
	}
}

func TestShouldFilter(t *testing.T) {
	f := NewFilter(mustParse(t, testRules))

	tests := []struct {
		name    string
		tableID string
		region  string
		want    bool
	}{
		{"excluded id as given", "mysql_iops_east3", "north-china3", true},
		{"excluded id matches hash-prefixed rule", "mysql_flex_6", "north-china3", true},
		{"hash-prefixed id matches bare rule", "#mysql_iops_east3", "north-china3", true},
		{"hash-prefixed id matches hash-prefixed rule", "#mysql_flex_6", "north-china3", true},
		{"retained id", "mysql_flex_5", "north-china3", false},
		{"empty table id", "", "north-china3", false},
		{"empty region", "mysql_flex_6", "", false},
		{"unknown region fails open", "mysql_flex_6", "mars-china1", false},
		{"empty exclusion list fails open", "mysql_flex_6", "east-china", false},
		{"whitespace around id", "  mysql_flex_6  ", "north-china3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ShouldFilter(tt.tableID, tt.region, testProduct); got != tt.want {
				t.Errorf("ShouldFilter(%q, %q) = %v, want %v", tt.tableID, tt.region, got, tt.want)
			}
		})
	}

	t.Run("other product has independent rules", func(t *testing.T) {
		if !f.ShouldFilter("files_premium", "north-china3", "Azure Storage Files") {
			t.Error("expected files_premium filtered for Azure Storage Files")
		}
		if f.ShouldFilter("files_premium", "north-china3", testProduct) {
			t.Error("files_premium should not be filtered for MySQL")
		}
	})
}

// Hash-normalization must be symmetric: the decision is the same whichever
// side carries the "#".
func TestFilterSymmetry(t *testing.T) {
	ids := []string{"tbl_a", "#tbl_a"}
	ruleForms := []string{`["tbl_a"]`, `["#tbl_a"]`}

	for _, ruleIDs := range ruleForms {
		rs := mustParse(t, `[{"os": "p", "region": "r", "tableIDs": `+ruleIDs+`}]`)
		f := NewFilter(rs)
		for _, id := range ids {
			if !f.ShouldFilter(id, "r", "p") {
				t.Errorf("ShouldFilter(%q) with rule %s = false, want true", id, ruleIDs)
			}
		}
	}
}

func TestNewFilterNilRules(t *testing.T) {
	f := NewFilter(nil)
	if f.ShouldFilter("anything", "any-region", "any-product") {
		t.Error("nil rule set must never filter")
	}
}

func TestMappings(t *testing.T) {
	rs := mustParse(t, testRules)
	tableIDs := []string{"mysql_flex_5", "mysql_flex_6", "mysql_iops_east3"}

	mappings := rs.Mappings(testProduct, tableIDs)
	if len(mappings) != 2 {
		t.Fatalf("expected 2 region mappings, got %d", len(mappings))
	}

	// Regions() sorts, so east-china comes first.
	east := mappings[0]
	if east.RegionID != "east-china" {
		t.Fatalf("expected east-china first, got %s", east.RegionID)
	}
	if len(east.IncludedTableIDs) != 3 || len(east.ExcludedTableIDs) != 0 {
		t.Errorf("east-china should include everything, got included=%v excluded=%v",
			east.IncludedTableIDs, east.ExcludedTableIDs)
	}

	north := mappings[1]
	if north.RegionID != "north-china3" {
		t.Fatalf("expected north-china3 second, got %s", north.RegionID)
	}
	if len(north.IncludedTableIDs) != 1 || north.IncludedTableIDs[0] != "mysql_flex_5" {
		t.Errorf("north-china3 included = %v, want [mysql_flex_5]", north.IncludedTableIDs)
	}
	if len(north.ExcludedTableIDs) != 2 {
		t.Errorf("north-china3 excluded = %v, want 2 entries", north.ExcludedTableIDs)
	}
}

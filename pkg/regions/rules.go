// Package regions decides which pricing tables are visible for a given
// region. Exclusion rules come from a JSON config file; lookups are pure
// and fail open, so a broken or missing config never hides real pricing.
package regions

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Rule is a single record of the exclusion config file. The "os" key names
// the product the rule applies to; TableIDs lists the tables hidden for
// that product/region pair.
type Rule struct {
	OS       string   `json:"os" validate:"required"`
	Region   string   `json:"region" validate:"required"`
	TableIDs []string `json:"tableIDs"`
}

// RuleSet is the loaded, indexed exclusion config. It is immutable after
// construction and safe for concurrent reads.
type RuleSet struct {
	rules []Rule
	// product -> region -> excluded table ids
	index map[string]map[string][]string
}

// Load reads and indexes an exclusion config file.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return rs, nil
}

// Parse builds a RuleSet from a JSON array of rules. Records missing a
// product or region are skipped rather than failing the whole load; later
// records for the same (product, region) pair overwrite earlier ones.
func Parse(data []byte) (*RuleSet, error) {
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("invalid rules JSON: %w", err)
	}

	validate := validator.New()
	rs := &RuleSet{
		index: make(map[string]map[string][]string),
	}
	for _, r := range rules {
		if err := validate.Struct(r); err != nil {
			continue
		}
		byRegion, ok := rs.index[r.OS]
		if !ok {
			byRegion = make(map[string][]string)
			rs.index[r.OS] = byRegion
		}
		byRegion[r.Region] = r.TableIDs
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

// Empty returns a RuleSet with no rules. Every lookup against it reports
// NotConfigured, which callers treat as "show everything".
func Empty() *RuleSet {
	return &RuleSet{index: make(map[string]map[string][]string)}
}

// Len returns the number of indexed rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// LookupStatus distinguishes the three config states a (product, region)
// pair can be in. NotConfigured and ExplicitlyEmpty both mean "show all
// tables" but arrive there differently, and tooling reports them apart.
type LookupStatus int

const (
	// NotConfigured means the region has no entry for the product.
	NotConfigured LookupStatus = iota

	// ExplicitlyEmpty means the region is configured with an empty
	// exclusion list.
	ExplicitlyEmpty

	// Found means the region has a non-empty exclusion list.
	Found
)

// Lookup is the result of resolving a (product, region) pair.
type Lookup struct {
	Status      LookupStatus
	ExcludedIDs []string
}

// Lookup resolves the exclusion list for a product/region pair.
func (s *RuleSet) Lookup(product, region string) Lookup {
	byRegion, ok := s.index[product]
	if !ok {
		return Lookup{Status: NotConfigured}
	}
	ids, ok := byRegion[region]
	if !ok {
		return Lookup{Status: NotConfigured}
	}
	if len(ids) == 0 {
		return Lookup{Status: ExplicitlyEmpty}
	}
	return Lookup{Status: Found, ExcludedIDs: ids}
}

// Regions returns the configured region ids for a product, sorted for
// stable iteration.
func (s *RuleSet) Regions(product string) []string {
	byRegion, ok := s.index[product]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(byRegion))
	for region := range byRegion {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// Excluded returns the raw exclusion list for a product/region pair, or
// nil when the pair is not configured.
func (s *RuleSet) Excluded(product, region string) []string {
	return s.Lookup(product, region).ExcludedIDs
}

package regions

import "strings"

// Filter answers whether a table should be hidden for a region. It holds
// no mutable state beyond the preloaded rule set, so a single Filter can
// serve any number of concurrent extraction runs.
type Filter struct {
	rules *RuleSet
}

// NewFilter wraps a rule set. A nil rule set behaves like Empty(): every
// query reports "do not filter".
func NewFilter(rules *RuleSet) *Filter {
	if rules == nil {
		rules = Empty()
	}
	return &Filter{rules: rules}
}

// Rules exposes the underlying rule set.
func (f *Filter) Rules() *RuleSet {
	return f.rules
}

// ShouldFilter reports whether tableID is excluded for the given region
// and product. The decision fails open: an empty table id, an unset
// region, or an unconfigured (product, region) pair all keep the table
// visible. Over-showing a table is harmless; hiding real pricing is not.
func (f *Filter) ShouldFilter(tableID, region, product string) bool {
	if tableID == "" || region == "" {
		return false
	}

	lookup := f.rules.Lookup(product, region)
	switch lookup.Status {
	case NotConfigured, ExplicitlyEmpty:
		return false
	}

	return matchesAny(tableID, lookup.ExcludedIDs)
}

// matchesAny checks tableID against the exclusion list under the three
// textual forms the upstream config uses interchangeably: as given, with
// a leading "#", and without one.
func matchesAny(tableID string, excluded []string) bool {
	clean := strings.TrimSpace(tableID)
	withHash := clean
	if !strings.HasPrefix(clean, "#") {
		withHash = "#" + clean
	}
	withoutHash := clean
	if strings.HasPrefix(clean, "#") && len(clean) > 1 {
		withoutHash = clean[1:]
	}

	for _, id := range excluded {
		if id == clean || id == withHash || id == withoutHash {
			return true
		}
	}
	return false
}

// normalizeID strips a leading "#" from a table id.
func normalizeID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), "#")
}

package regions

// TableMapping partitions the set of discovered table ids for one region:
// which tables the region shows and which its rules hide.
type TableMapping struct {
	RegionID         string   `json:"region_id"`
	IncludedTableIDs []string `json:"included_table_ids"`
	ExcludedTableIDs []string `json:"excluded_table_ids"`
}

// Mappings computes a TableMapping for every configured region of a
// product against the given universe of table ids. Ids are compared with
// the "#" prefix stripped; the input order of tableIDs is preserved.
func (s *RuleSet) Mappings(product string, tableIDs []string) []TableMapping {
	mappings := make([]TableMapping, 0, len(s.index[product]))

	for _, region := range s.Regions(product) {
		excluded := make(map[string]bool)
		for _, id := range s.Excluded(product, region) {
			excluded[normalizeID(id)] = true
		}

		m := TableMapping{RegionID: region}
		for _, id := range tableIDs {
			if excluded[normalizeID(id)] {
				m.ExcludedTableIDs = append(m.ExcludedTableIDs, id)
			} else {
				m.IncludedTableIDs = append(m.IncludedTableIDs, id)
			}
		}
		mappings = append(mappings, m)
	}
	return mappings
}

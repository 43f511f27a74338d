package records

import "sort"

// #region filters
// Filter returns the records for which keep is true. The input is not modified.
func Filter(rs []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(rs))
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Active returns records with status active.
func Active(rs []Record) []Record {
	return Filter(rs, Record.IsActive)
}

// ByOffice returns records owned by office.
func ByOffice(rs []Record, office string) []Record {
	return Filter(rs, func(r Record) bool { return r.Office == office })
}

// ByAttorney returns records whose owning attorney name matches.
func ByAttorney(rs []Record, name string) []Record {
	return Filter(rs, func(r Record) bool { return r.Attorney == name })
}

// ByStage returns records currently in stageID.
func ByStage(rs []Record, stageID string) []Record {
	return Filter(rs, func(r Record) bool { return r.Stage == stageID })
}

// #endregion filters

// #region lookups
// ListOffices returns the sorted, de-duplicated office names in rs.
func ListOffices(rs []Record) []string {
	seen := make(map[string]bool)
	var offices []string
	for _, r := range rs {
		if r.Office == "" || seen[r.Office] {
			continue
		}
		seen[r.Office] = true
		offices = append(offices, r.Office)
	}
	sort.Strings(offices)
	return offices
}

// FindByID returns the record with id.
func FindByID(rs []Record, id string) (Record, bool) {
	for _, r := range rs {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// FindAttorney returns the directory entry with id.
func FindAttorney(dir []Attorney, id string) (Attorney, bool) {
	for _, a := range dir {
		if a.ID == id {
			return a, true
		}
	}
	return Attorney{}, false
}

// #endregion lookups

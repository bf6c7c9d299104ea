package mdbadge

// Occurrence records one marker found on a page.
type Occurrence struct {
	Kind    Kind
	Name    string
	Args    string
	Line    int
	Handled bool
}

// Report summarizes the markers of one page.
type Report struct {
	Page        string
	Occurrences []Occurrence
	// Unresolved lists references whose target is missing from the tree,
	// in the order they were resolved. Duplicates are kept.
	Unresolved []string
}

func (r *Report) add(sc Shortcode, line int, handled bool) {
	r.Occurrences = append(r.Occurrences, Occurrence{
		Kind:    sc.Kind,
		Name:    sc.Name,
		Args:    sc.Args,
		Line:    line,
		Handled: handled,
	})
}

// Unknown returns the occurrences whose type was not recognized.
func (r *Report) Unknown() []Occurrence {
	var unknown []Occurrence
	for _, o := range r.Occurrences {
		if !o.Handled {
			unknown = append(unknown, o)
		}
	}
	return unknown
}

// CountByKind tallies occurrences per kind.
func (r *Report) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, o := range r.Occurrences {
		counts[o.Kind]++
	}
	return counts
}

// HasProblems reports whether the page has unresolved references or unknown markers.
func (r *Report) HasProblems() bool {
	return len(r.Unresolved) > 0 || len(r.Unknown()) > 0
}

package models

// FilterSpec is a local refinement over an already fetched result set.
// The zero value places no constraint.
type FilterSpec struct {
	Sites     []string
	JobType   string
	IsRemote  *bool
	MinSalary *float64
	MaxSalary *float64
}

// IsActive reports whether any constraint is set.
func (f FilterSpec) IsActive() bool {
	return len(f.Sites) > 0 ||
		f.JobType != "" ||
		f.IsRemote != nil ||
		f.MinSalary != nil ||
		f.MaxSalary != nil
}

// ToggleSite returns a copy of f with site added, or removed when already selected.
func (f FilterSpec) ToggleSite(site string) FilterSpec {
	next := make([]string, 0, len(f.Sites)+1)
	found := false
	for _, s := range f.Sites {
		if s == site {
			found = true
			continue
		}
		next = append(next, s)
	}
	if !found {
		next = append(next, site)
	}
	f.Sites = next
	return f
}

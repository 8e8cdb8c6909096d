package domain

import "time"

// Facility is a catering facility. It references exactly one Location and
// carries an unordered set of tags, reported in name order.
type Facility struct {
	ID           int64
	Name         string
	CreationDate time.Time
	LocationID   int64
	Location     Location
	Tags         []string
	Employees    []Employee
}

// FacilityFilter narrows a facility search. Empty fields are ignored;
// non-empty ones are AND-combined case-insensitive substring matches.
// Tag only decides which facilities qualify; every returned facility still
// carries its full tag list.
type FacilityFilter struct {
	Name string
	City string
	Tag  string
}

// IsZero reports whether no filter field is set.
func (f FacilityFilter) IsZero() bool {
	return f.Name == "" && f.City == "" && f.Tag == ""
}

package domain

import "strings"

// SearchParams carries optional trail filters from the HTTP layer to the
// service. A nil field imposes no constraint; a trail matches when every
// non-nil field holds.
type SearchParams struct {
	Status             *TrailStatus
	Condition          *TrailCondition
	Park               *string // case-insensitive exact match
	MaxLengthMiles     *float64
	MaxElevationGainFt *int
	Name               *string // case-insensitive substring of the trail name
}

// Matches reports whether t satisfies all supplied criteria.
func (p SearchParams) Matches(t Trail) bool {
	if p.Status != nil && t.Status != *p.Status {
		return false
	}
	if p.Condition != nil && t.Condition != *p.Condition {
		return false
	}
	if p.Park != nil && !SamePark(t.Park, *p.Park) {
		return false
	}
	if p.MaxLengthMiles != nil && t.LengthMiles > *p.MaxLengthMiles {
		return false
	}
	if p.MaxElevationGainFt != nil && t.ElevationGainFt > *p.MaxElevationGainFt {
		return false
	}
	if p.Name != nil && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(*p.Name)) {
		return false
	}
	return true
}

// SamePark compares two park names case-insensitively.
func SamePark(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}

// StatusSummary aggregates trail counts by status and by condition.
// ByCondition only holds conditions that occur at least once.
type StatusSummary struct {
	Total       int
	Open        int
	Closed      int
	Limited     int
	Unknown     int
	ByCondition map[TrailCondition]int
}

// Summarize counts trails by status and condition.
func Summarize(trails []Trail) StatusSummary {
	s := StatusSummary{Total: len(trails), ByCondition: map[TrailCondition]int{}}
	for _, t := range trails {
		switch t.Status {
		case StatusOpen:
			s.Open++
		case StatusClosed:
			s.Closed++
		case StatusLimited:
			s.Limited++
		default:
			s.Unknown++
		}
		s.ByCondition[t.Condition]++
	}
	return s
}

// ParkCount is a park name with the number of trails in it.
type ParkCount struct {
	Name       string
	TrailCount int
}

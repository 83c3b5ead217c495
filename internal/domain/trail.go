// Package domain contains the core data types for the SF Trails API.
// It is imported by every other internal package (source, service, handler)
// and depends on nothing inside this module.
package domain

import (
	"fmt"
	"time"
)

// TrailStatus is the operational status of a trail.
type TrailStatus string

const (
	StatusOpen    TrailStatus = "open"
	StatusClosed  TrailStatus = "closed"
	StatusLimited TrailStatus = "limited" // partially open with restrictions
	StatusUnknown TrailStatus = "unknown"
)

// TrailStatuses lists every status in declaration order.
var TrailStatuses = []TrailStatus{StatusOpen, StatusClosed, StatusLimited, StatusUnknown}

// ParseTrailStatus converts s into a TrailStatus.
// Returns an error wrapping ErrValidation if s is not a known status.
func ParseTrailStatus(s string) (TrailStatus, error) {
	st := TrailStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown trail status %q", ErrValidation, s)
	}
	return st, nil
}

// Valid reports whether s is one of the declared statuses.
func (s TrailStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusLimited, StatusUnknown:
		return true
	}
	return false
}

// TrailCondition is the current condition of the trail surface.
type TrailCondition string

const (
	ConditionDry     TrailCondition = "dry"
	ConditionMuddy   TrailCondition = "muddy"
	ConditionWet     TrailCondition = "wet"
	ConditionSnowy   TrailCondition = "snowy"
	ConditionIcy     TrailCondition = "icy"
	ConditionUnknown TrailCondition = "unknown"
)

// TrailConditions lists every condition in declaration order.
var TrailConditions = []TrailCondition{
	ConditionDry, ConditionMuddy, ConditionWet, ConditionSnowy, ConditionIcy, ConditionUnknown,
}

// ParseTrailCondition converts s into a TrailCondition.
// Returns an error wrapping ErrValidation if s is not a known condition.
func ParseTrailCondition(s string) (TrailCondition, error) {
	c := TrailCondition(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown trail condition %q", ErrValidation, s)
	}
	return c, nil
}

// Valid reports whether c is one of the declared conditions.
func (c TrailCondition) Valid() bool {
	switch c {
	case ConditionDry, ConditionMuddy, ConditionWet, ConditionSnowy, ConditionIcy, ConditionUnknown:
		return true
	}
	return false
}

// Trail is a single named route within a park.
// Values are built by DecodeTrail from a data source Record and are never
// modified afterwards; a refreshed trail is a new value.
type Trail struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Park            string         `json:"park"`
	Status          TrailStatus    `json:"status"`
	Condition       TrailCondition `json:"condition"`
	LengthMiles     float64        `json:"length_miles"`
	ElevationGainFt int            `json:"elevation_gain_ft"`
	LastUpdated     time.Time      `json:"last_updated"`
	Notes           string         `json:"notes"`
}

// IsAccessible reports whether the trail can be used at all (open or limited).
func (t Trail) IsAccessible() bool {
	return t.Status == StatusOpen || t.Status == StatusLimited
}

// IsSafeForHiking reports whether the trail is accessible and its surface is
// neither icy nor snowy.
func (t Trail) IsSafeForHiking() bool {
	if !t.IsAccessible() {
		return false
	}
	return t.Condition != ConditionIcy && t.Condition != ConditionSnowy
}

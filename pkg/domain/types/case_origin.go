package types

import "fmt"

// CaseOrigin tells how a case entered the system
type CaseOrigin string

const (
	CaseOriginComplaint  CaseOrigin = "complaint"
	CaseOriginCrimeScene CaseOrigin = "crime_scene"
)

// IsValid checks if the origin is valid
func (o CaseOrigin) IsValid() bool {
	switch o {
	case CaseOriginComplaint, CaseOriginCrimeScene:
		return true
	default:
		return false
	}
}

// String returns the string representation of the origin
func (o CaseOrigin) String() string {
	return string(o)
}

// ParseCaseOrigin parses a string into a CaseOrigin
func ParseCaseOrigin(s string) (CaseOrigin, error) {
	origin := CaseOrigin(s)
	if !origin.IsValid() {
		return "", fmt.Errorf("invalid case origin: %s", s)
	}
	return origin, nil
}

package types

import "fmt"

// CrimeSeverity is the severity level of a case. Lower is more serious.
type CrimeSeverity int

const (
	CrimeSeverityCritical CrimeSeverity = 0
	CrimeSeverityLevel1   CrimeSeverity = 1
	CrimeSeverityLevel2   CrimeSeverity = 2
	CrimeSeverityLevel3   CrimeSeverity = 3
)

// IsValid checks if the severity is within 0..3
func (s CrimeSeverity) IsValid() bool {
	return s >= CrimeSeverityCritical && s <= CrimeSeverityLevel3
}

// IsCritical reports whether the case must be escalated to the chief
func (s CrimeSeverity) IsCritical() bool {
	return s == CrimeSeverityCritical
}

// String returns a human readable label
func (s CrimeSeverity) String() string {
	switch s {
	case CrimeSeverityCritical:
		return "critical"
	case CrimeSeverityLevel1:
		return "level-1"
	case CrimeSeverityLevel2:
		return "level-2"
	case CrimeSeverityLevel3:
		return "level-3"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

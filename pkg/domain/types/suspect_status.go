package types

// SuspectStatus is the lifecycle status of a suspect. It is owned by
// collaborators outside the workflow engine and is read-only here.
type SuspectStatus string

const (
	SuspectStatusUnderInvestigation SuspectStatus = "under_investigation"
	SuspectStatusUnderPursuit       SuspectStatus = "under_pursuit"
	SuspectStatusArrested           SuspectStatus = "arrested"
	SuspectStatusCleared            SuspectStatus = "cleared"
	SuspectStatusConvicted          SuspectStatus = "convicted"
)

// IsValid checks if the suspect status is valid
func (s SuspectStatus) IsValid() bool {
	switch s {
	case SuspectStatusUnderInvestigation,
		SuspectStatusUnderPursuit,
		SuspectStatusArrested,
		SuspectStatusCleared,
		SuspectStatusConvicted:
		return true
	default:
		return false
	}
}

// SuspectRole is how a suspect is linked to a case
type SuspectRole string

const (
	SuspectRolePrimary          SuspectRole = "primary"
	SuspectRoleAccomplice       SuspectRole = "accomplice"
	SuspectRoleWitnessTurned    SuspectRole = "witness_turned"
	SuspectRolePersonOfInterest SuspectRole = "poi"
)

// IsValid checks if the suspect role is valid
func (r SuspectRole) IsValid() bool {
	switch r {
	case SuspectRolePrimary,
		SuspectRoleAccomplice,
		SuspectRoleWitnessTurned,
		SuspectRolePersonOfInterest:
		return true
	default:
		return false
	}
}

// Normalize returns the role, treating empty as SuspectRolePrimary.
func (r SuspectRole) Normalize() SuspectRole {
	if r == "" {
		return SuspectRolePrimary
	}
	return r
}

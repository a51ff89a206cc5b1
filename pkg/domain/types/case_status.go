package types

import "fmt"

// CaseStatus represents the workflow phase of a case
type CaseStatus string

const (
	CaseStatusCreated           CaseStatus = "created"
	CaseStatusPendingApproval   CaseStatus = "pending_approval"
	CaseStatusInvestigation     CaseStatus = "investigation"
	CaseStatusSuspectIdentified CaseStatus = "suspect_identified"
	CaseStatusInterrogation     CaseStatus = "interrogation"
	CaseStatusPendingCaptain    CaseStatus = "pending_captain"
	CaseStatusPendingChief      CaseStatus = "pending_chief"
	CaseStatusTrial             CaseStatus = "trial"
	CaseStatusClosedSolved      CaseStatus = "closed_solved"
	CaseStatusClosedUnsolved    CaseStatus = "closed_unsolved"
)

// AllCaseStatuses returns all valid case statuses in workflow order
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusCreated,
		CaseStatusPendingApproval,
		CaseStatusInvestigation,
		CaseStatusSuspectIdentified,
		CaseStatusInterrogation,
		CaseStatusPendingCaptain,
		CaseStatusPendingChief,
		CaseStatusTrial,
		CaseStatusClosedSolved,
		CaseStatusClosedUnsolved,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusCreated,
		CaseStatusPendingApproval,
		CaseStatusInvestigation,
		CaseStatusSuspectIdentified,
		CaseStatusInterrogation,
		CaseStatusPendingCaptain,
		CaseStatusPendingChief,
		CaseStatusTrial,
		CaseStatusClosedSolved,
		CaseStatusClosedUnsolved:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may leave the status
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusClosedSolved || s == CaseStatusClosedUnsolved
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}

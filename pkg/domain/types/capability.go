package types

import "fmt"

// Capability is a permission checked by the role authority
type Capability string

const (
	CapabilityApproveCase           Capability = "approve_case"
	CapabilityStartInvestigation    Capability = "start_investigation"
	CapabilityIdentifySuspects      Capability = "identify_suspects"
	CapabilityApproveSuspects       Capability = "approve_suspects"
	CapabilityRejectSuspects        Capability = "reject_suspects"
	CapabilitySubmitToCaptain       Capability = "submit_to_captain"
	CapabilityCaptainApprove        Capability = "captain_approve"
	CapabilityChiefApprove          Capability = "chief_approve"
	CapabilityRecordDetectiveScore  Capability = "record_detective_score"
	CapabilityRecordSergeantScore   Capability = "record_sergeant_score"
	CapabilityRecordCaptainDecision Capability = "record_captain_decision"
	CapabilityRecordChiefDecision   Capability = "record_chief_decision"
	CapabilityRecordVerdict         Capability = "record_verdict"

	// Capabilities used outside Apply
	CapabilityOpenCase         Capability = "open_case"
	CapabilityAttachSuspect    Capability = "attach_suspect"
	CapabilitySkipCaseApproval Capability = "skip_case_approval"
)

// AllCapabilities returns all known capabilities
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityApproveCase,
		CapabilityStartInvestigation,
		CapabilityIdentifySuspects,
		CapabilityApproveSuspects,
		CapabilityRejectSuspects,
		CapabilitySubmitToCaptain,
		CapabilityCaptainApprove,
		CapabilityChiefApprove,
		CapabilityRecordDetectiveScore,
		CapabilityRecordSergeantScore,
		CapabilityRecordCaptainDecision,
		CapabilityRecordChiefDecision,
		CapabilityRecordVerdict,
		CapabilityOpenCase,
		CapabilityAttachSuspect,
		CapabilitySkipCaseApproval,
	}
}

// IsValid checks if the capability is known
func (c Capability) IsValid() bool {
	for _, known := range AllCapabilities() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the capability
func (c Capability) String() string {
	return string(c)
}

// ParseCapability parses a string into a Capability
func ParseCapability(s string) (Capability, error) {
	c := Capability(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown capability: %s", s)
	}
	return c, nil
}

package types

import "fmt"

// Action is a command understood by the workflow engine
type Action string

const (
	ActionApproveCase           Action = "approve_case"
	ActionStartInvestigation    Action = "start_investigation"
	ActionIdentifySuspects      Action = "identify_suspects"
	ActionApproveSuspects       Action = "approve_suspects"
	ActionRejectSuspects        Action = "reject_suspects"
	ActionSubmitToCaptain       Action = "submit_to_captain"
	ActionCaptainApprove        Action = "captain_approve"
	ActionChiefApprove          Action = "chief_approve"
	ActionCloseSolved           Action = "close_solved"
	ActionCloseUnsolved         Action = "close_unsolved"
	ActionRecordDetectiveScore  Action = "record_detective_score"
	ActionRecordSergeantScore   Action = "record_sergeant_score"
	ActionRecordCaptainDecision Action = "record_captain_decision"
	ActionRecordChiefDecision   Action = "record_chief_decision"
)

// AllActions returns the full action catalogue
func AllActions() []Action {
	return []Action{
		ActionApproveCase,
		ActionStartInvestigation,
		ActionIdentifySuspects,
		ActionApproveSuspects,
		ActionRejectSuspects,
		ActionSubmitToCaptain,
		ActionCaptainApprove,
		ActionChiefApprove,
		ActionCloseSolved,
		ActionCloseUnsolved,
		ActionRecordDetectiveScore,
		ActionRecordSergeantScore,
		ActionRecordCaptainDecision,
		ActionRecordChiefDecision,
	}
}

// IsValid checks if the action is part of the catalogue
func (a Action) IsValid() bool {
	for _, known := range AllActions() {
		if a == known {
			return true
		}
	}
	return false
}

// IsSuspectScoped reports whether the action targets a single suspect
// and carries a suspect_id in its payload.
func (a Action) IsSuspectScoped() bool {
	switch a {
	case ActionRecordDetectiveScore,
		ActionRecordSergeantScore,
		ActionRecordCaptainDecision,
		ActionRecordChiefDecision:
		return true
	default:
		return false
	}
}

// Capability returns the capability an actor needs to issue the action
func (a Action) Capability() Capability {
	switch a {
	case ActionCloseSolved, ActionCloseUnsolved:
		return CapabilityRecordVerdict
	default:
		return Capability(a)
	}
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// ParseAction parses a string into an Action
func ParseAction(s string) (Action, error) {
	action := Action(s)
	if !action.IsValid() {
		return "", fmt.Errorf("unknown action: %s", s)
	}
	return action, nil
}

// Package workflow implements the case and suspect state machines of an
// investigation. All functions here are pure with respect to storage: they
// validate a command against an in-memory case file and mutate that file.
// Persisting the result atomically is the caller's job.
package workflow

import (
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// target resolves the status reached by a legal transition
type target func(c caseView) types.CaseStatus

type caseView struct {
	status   types.CaseStatus
	severity types.CrimeSeverity
}

func to(s types.CaseStatus) target {
	return func(caseView) types.CaseStatus { return s }
}

func stay(c caseView) types.CaseStatus {
	return c.status
}

// transitions is the whitelist of (status, action) pairs. Any pair that is
// not listed is rejected with an invalid transition error.
var transitions = map[types.CaseStatus]map[types.Action]target{
	types.CaseStatusPendingApproval: {
		types.ActionApproveCase: to(types.CaseStatusCreated),
	},
	types.CaseStatusCreated: {
		types.ActionStartInvestigation: to(types.CaseStatusInvestigation),
	},
	types.CaseStatusInvestigation: {
		types.ActionIdentifySuspects: to(types.CaseStatusSuspectIdentified),
	},
	types.CaseStatusSuspectIdentified: {
		types.ActionApproveSuspects: to(types.CaseStatusInterrogation),
		types.ActionRejectSuspects:  to(types.CaseStatusInvestigation),
	},
	types.CaseStatusInterrogation: {
		types.ActionSubmitToCaptain:      to(types.CaseStatusPendingCaptain),
		types.ActionRecordDetectiveScore: stay,
		types.ActionRecordSergeantScore:  stay,
	},
	types.CaseStatusPendingCaptain: {
		types.ActionCaptainApprove:        func(c caseView) types.CaseStatus { return EscalationTarget(c.severity) },
		types.ActionRecordCaptainDecision: stay,
	},
	types.CaseStatusPendingChief: {
		types.ActionChiefApprove:        to(types.CaseStatusTrial),
		types.ActionRecordChiefDecision: stay,
	},
	types.CaseStatusTrial: {
		types.ActionCloseSolved:   to(types.CaseStatusClosedSolved),
		types.ActionCloseUnsolved: to(types.CaseStatusClosedUnsolved),
	},
}

// IsAllowed reports whether the action may run while the case is in status
func IsAllowed(status types.CaseStatus, action types.Action) bool {
	_, ok := transitions[status][action]
	return ok
}

// AllowedActions lists the actions legal in status, in catalogue order
func AllowedActions(status types.CaseStatus) []types.Action {
	var actions []types.Action
	for _, a := range types.AllActions() {
		if IsAllowed(status, a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// NextStatus returns the status a legal transition leads to. ok is false
// when the pair is not in the whitelist.
func NextStatus(status types.CaseStatus, severity types.CrimeSeverity, action types.Action) (types.CaseStatus, bool) {
	t, ok := transitions[status][action]
	if !ok {
		return "", false
	}
	return t(caseView{status: status, severity: severity}), true
}

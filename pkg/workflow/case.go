package workflow

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// CaseWorkflow validates and applies case level transitions
type CaseWorkflow struct{}

// Check verifies that the action is legal from the current status and that
// its preconditions hold. It does not mutate the file.
func (CaseWorkflow) Check(file *model.CaseFile, cmd model.Command) (types.CaseStatus, error) {
	c := file.Case
	next, ok := NextStatus(c.Status, c.Severity, cmd.Action)
	if !ok {
		return "", goerr.Wrap(&model.TransitionError{Status: c.Status, Action: cmd.Action}, "action not allowed",
			goerr.V(model.CaseIDKey, c.ID),
			goerr.V(model.StatusKey, c.Status),
			goerr.V(model.ActionKey, cmd.Action))
	}

	board := NewScoreBoard(file.Suspects)
	switch cmd.Action {
	case types.ActionIdentifySuspects, types.ActionApproveSuspects:
		if board.Len() == 0 {
			return "", precondition(c.ID, model.ReasonMissingSuspects, nil)
		}

	case types.ActionRejectSuspects:
		if strings.TrimSpace(cmd.Payload.Notes) == "" {
			return "", precondition(c.ID, model.ReasonMissingNotes, nil)
		}

	case types.ActionSubmitToCaptain:
		if board.Len() == 0 {
			return "", precondition(c.ID, model.ReasonMissingSuspects, nil)
		}
		if missing := board.MissingScores(); len(missing) > 0 {
			return "", precondition(c.ID, model.ReasonMissingScores, missing)
		}

	case types.ActionCaptainApprove:
		if missing := board.MissingCaptainDecisions(); len(missing) > 0 {
			return "", precondition(c.ID, model.ReasonMissingCaptainDecisions, missing)
		}

	case types.ActionChiefApprove:
		if !c.Severity.IsCritical() {
			return "", precondition(c.ID, model.ReasonNotCritical, nil)
		}
		if missing := board.MissingCaptainDecisions(); len(missing) > 0 {
			return "", precondition(c.ID, model.ReasonMissingCaptainDecisions, missing)
		}
		if missing := board.MissingChiefDecisions(); len(missing) > 0 {
			return "", precondition(c.ID, model.ReasonMissingChiefDecisions, missing)
		}
	}

	return next, nil
}

// Mutate applies the side effects of a checked transition and returns the
// note recorded in history
func (CaseWorkflow) Mutate(file *model.CaseFile, cmd model.Command, next types.CaseStatus) string {
	c := file.Case
	from := c.Status
	c.Status = next

	switch cmd.Action {
	case types.ActionApproveCase:
		c.ApprovedBy = cmd.Actor
		return notesOr(cmd, "Case approved by superior")

	case types.ActionStartInvestigation:
		c.LeadDetective = cmd.Actor
		return notesOr(cmd, "Investigation started")

	case types.ActionIdentifySuspects:
		return notesOr(cmd, "Suspects identified")

	case types.ActionApproveSuspects:
		// scores and decisions start empty for every interrogation pass
		NewScoreBoard(file.Suspects).Reset()
		return notesOr(cmd, "Sergeant approved suspects – interrogation started")

	case types.ActionRejectSuspects:
		NewScoreBoard(file.Suspects).Reset()
		return strings.TrimSpace(cmd.Payload.Notes)

	case types.ActionSubmitToCaptain:
		return notesOr(cmd, "Interrogation complete – submitted to captain")

	case types.ActionCaptainApprove:
		if next == types.CaseStatusPendingChief {
			return notesOr(cmd, "Captain approved – escalated to Chief (critical case)")
		}
		return notesOr(cmd, "Captain approved – sent to trial")

	case types.ActionChiefApprove:
		return notesOr(cmd, "Chief approved – sent to trial")

	case types.ActionCloseSolved:
		return notesOr(cmd, "Verdict recorded – case solved")

	case types.ActionCloseUnsolved:
		return notesOr(cmd, "Verdict recorded – case unsolved")
	}

	return notesOr(cmd, string(from)+" -> "+string(next))
}

func notesOr(cmd model.Command, fallback string) string {
	if n := strings.TrimSpace(cmd.Payload.Notes); n != "" {
		return n
	}
	return fallback
}

func precondition(caseID types.CaseID, reason model.ReasonCode, suspects []types.SuspectID) error {
	return goerr.Wrap(&model.PreconditionError{Reason: reason, SuspectIDs: suspects}, "precondition not met",
		goerr.V(model.CaseIDKey, caseID),
		goerr.V(model.ReasonKey, reason))
}

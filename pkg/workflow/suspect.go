package workflow

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// Guilt score bounds, inclusive
const (
	MinGuiltScore = 1
	MaxGuiltScore = 10
)

// SuspectWorkflow governs the adjudication fields of suspects. Which
// fields are writable depends on the phase of the owning case, checked
// through the transition table before any of these methods run.
type SuspectWorkflow struct{}

// Check validates payload and write-once rules for a suspect-scoped action
func (SuspectWorkflow) Check(file *model.CaseFile, cmd model.Command) (*model.SuspectLink, error) {
	c := file.Case
	if !IsAllowed(c.Status, cmd.Action) {
		return nil, goerr.Wrap(&model.TransitionError{Status: c.Status, Action: cmd.Action}, "action not allowed",
			goerr.V(model.CaseIDKey, c.ID),
			goerr.V(model.StatusKey, c.Status),
			goerr.V(model.ActionKey, cmd.Action))
	}

	if cmd.Payload.SuspectID == "" {
		return nil, goerr.Wrap(model.ErrInvalidPayload, "suspect_id is required",
			goerr.V(model.CaseIDKey, c.ID),
			goerr.V(model.ActionKey, cmd.Action))
	}

	switch cmd.Action {
	case types.ActionRecordDetectiveScore, types.ActionRecordSergeantScore:
		if cmd.Payload.Score < MinGuiltScore || cmd.Payload.Score > MaxGuiltScore {
			return nil, goerr.Wrap(model.ErrInvalidScore, "score must be between 1 and 10",
				goerr.V(model.CaseIDKey, c.ID),
				goerr.V(model.SuspectIDKey, cmd.Payload.SuspectID),
				goerr.V("score", cmd.Payload.Score))
		}
	case types.ActionRecordCaptainDecision, types.ActionRecordChiefDecision:
		if strings.TrimSpace(cmd.Payload.Decision) == "" {
			return nil, goerr.Wrap(model.ErrInvalidDecision, "decision must not be empty",
				goerr.V(model.CaseIDKey, c.ID),
				goerr.V(model.SuspectIDKey, cmd.Payload.SuspectID))
		}
	}

	s := file.Suspect(cmd.Payload.SuspectID)
	if s == nil {
		return nil, goerr.Wrap(model.ErrNotFound, "suspect is not linked to case",
			goerr.V(model.CaseIDKey, c.ID),
			goerr.V(model.SuspectIDKey, cmd.Payload.SuspectID))
	}

	var written bool
	sentinel := model.ErrAlreadyScored
	switch cmd.Action {
	case types.ActionRecordDetectiveScore:
		written = s.DetectiveGuiltScore != nil
	case types.ActionRecordSergeantScore:
		written = s.SergeantGuiltScore != nil
	case types.ActionRecordCaptainDecision:
		written, sentinel = s.CaptainDecision != "", model.ErrAlreadyDecided
	case types.ActionRecordChiefDecision:
		if !c.Severity.IsCritical() {
			return nil, precondition(c.ID, model.ReasonNotCritical, nil)
		}
		written, sentinel = s.ChiefDecision != "", model.ErrAlreadyDecided
	}
	if written {
		return nil, goerr.Wrap(sentinel, "field is write-once for this pass",
			goerr.V(model.CaseIDKey, c.ID),
			goerr.V(model.SuspectIDKey, s.SuspectID),
			goerr.V(model.ActionKey, cmd.Action))
	}

	return s, nil
}

// Mutate writes the checked value and returns the note recorded in history
func (SuspectWorkflow) Mutate(s *model.SuspectLink, cmd model.Command) string {
	switch cmd.Action {
	case types.ActionRecordDetectiveScore:
		s.DetectiveGuiltScore = model.IntPtr(cmd.Payload.Score)
		return notesOr(cmd, "Detective guilt score recorded")
	case types.ActionRecordSergeantScore:
		s.SergeantGuiltScore = model.IntPtr(cmd.Payload.Score)
		return notesOr(cmd, "Sergeant guilt score recorded")
	case types.ActionRecordCaptainDecision:
		s.CaptainDecision = strings.TrimSpace(cmd.Payload.Decision)
		return notesOr(cmd, "Captain decision recorded")
	case types.ActionRecordChiefDecision:
		s.ChiefDecision = strings.TrimSpace(cmd.Payload.Decision)
		return notesOr(cmd, "Chief decision recorded")
	}
	return notesOr(cmd, "")
}

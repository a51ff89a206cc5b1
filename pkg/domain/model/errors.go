package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// Workflow errors. Every error returned by the engine wraps exactly one of these.
var (
	ErrNotFound           = goerr.New("not found")
	ErrForbidden          = goerr.New("forbidden")
	ErrInvalidTransition  = goerr.New("invalid transition")
	ErrPreconditionFailed = goerr.New("precondition failed")
	ErrAlreadyScored      = goerr.New("already scored")
	ErrAlreadyDecided     = goerr.New("decision already recorded")
	ErrInvalidScore       = goerr.New("invalid score")
	ErrInvalidDecision    = goerr.New("invalid decision")
	ErrInvalidPayload     = goerr.New("invalid payload")
	ErrUnknownAction      = goerr.New("unknown action")
	ErrConflict           = goerr.New("conflict")
	ErrBusy               = goerr.New("case is busy")
)

// Context keys for error values
const (
	CaseIDKey     = "case_id"
	SuspectIDKey  = "suspect_id"
	ActionKey     = "action"
	ActorKey      = "actor"
	StatusKey     = "status"
	CapabilityKey = "capability"
	ReasonKey     = "reason"
	VersionKey    = "version"
)

// ReasonCode tells which precondition failed
type ReasonCode string

const (
	ReasonMissingSuspects         ReasonCode = "missing_suspects"
	ReasonMissingScores           ReasonCode = "missing_scores"
	ReasonMissingCaptainDecisions ReasonCode = "missing_captain_decisions"
	ReasonMissingChiefDecisions   ReasonCode = "missing_chief_decisions"
	ReasonMissingNotes            ReasonCode = "missing_notes"
	ReasonNotCritical             ReasonCode = "not_critical"
)

// PreconditionError reports an unmet precondition with a machine readable reason
type PreconditionError struct {
	Reason     ReasonCode
	SuspectIDs []types.SuspectID
}

func (e *PreconditionError) Error() string {
	if len(e.SuspectIDs) == 0 {
		return fmt.Sprintf("precondition failed: %s", e.Reason)
	}
	ids := make([]string, len(e.SuspectIDs))
	for i, id := range e.SuspectIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("precondition failed: %s: [%s]", e.Reason, strings.Join(ids, ", "))
}

func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionFailed
}

// TransitionError reports an action that is not legal from the current status
type TransitionError struct {
	Status types.CaseStatus
	Action types.Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: action %s is not allowed in status %s", e.Action, e.Status)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError reports the capability the actor is missing
type ForbiddenError struct {
	Actor      types.ActorID
	Capability types.Capability
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s lacks capability %s", e.Actor, e.Capability)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

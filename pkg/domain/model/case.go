package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// HistoryActionOpen is recorded as the action of the history entry that opens a case
const HistoryActionOpen types.Action = "open_case"

// Case is a formal investigation record moving through the workflow phases
type Case struct {
	ID            types.CaseID
	Title         string
	Status        types.CaseStatus
	Origin        types.CaseOrigin
	Severity      types.CrimeSeverity
	CreatedBy     types.ActorID
	LeadDetective types.ActorID // empty until start_investigation
	ApprovedBy    types.ActorID // empty until approve_case
	History       []HistoryEntry

	// Version is incremented on every commit and used for compare-and-swap
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryEntry is an immutable record of one committed command
type HistoryEntry struct {
	ID        string
	Action    types.Action
	From      types.CaseStatus
	To        types.CaseStatus
	Actor     types.ActorID
	SuspectID types.SuspectID // set for suspect-scoped actions
	Notes     string
	Timestamp time.Time
}

// NewHistoryEntry creates a history entry with a fresh ID
func NewHistoryEntry(action types.Action, from, to types.CaseStatus, actor types.ActorID, notes string, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.NewString(),
		Action:    action,
		From:      from,
		To:        to,
		Actor:     actor,
		Notes:     notes,
		Timestamp: at,
	}
}

// Copy creates a deep copy of the case
func (c *Case) Copy() *Case {
	if c == nil {
		return nil
	}
	copied := *c
	if c.History != nil {
		copied.History = make([]HistoryEntry, len(c.History))
		copy(copied.History, c.History)
	}
	return &copied
}

// LastEntry returns the latest history entry, if any
func (c *Case) LastEntry() (HistoryEntry, bool) {
	if len(c.History) == 0 {
		return HistoryEntry{}, false
	}
	return c.History[len(c.History)-1], true
}

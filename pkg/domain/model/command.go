package model

import "github.com/secmon-lab/dossier/pkg/domain/types"

// Command is a request to apply one action to one case
type Command struct {
	CaseID  types.CaseID
	Action  types.Action
	Actor   types.ActorID
	Payload Payload
}

// Payload carries the action specific arguments. Which fields are read
// depends on the action.
type Payload struct {
	Notes     string          `json:"notes,omitempty"`
	SuspectID types.SuspectID `json:"suspect_id,omitempty"`
	Score     int             `json:"score,omitempty"`
	Decision  string          `json:"decision,omitempty"`
}

// Result is the outcome of a committed command
type Result struct {
	Case     *Case
	Suspects []*SuspectLink
	// Suspect is the updated link for suspect-scoped actions, nil otherwise
	Suspect *SuspectLink
	Entry   HistoryEntry
}

package types

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]{0,127}$`)

// CaseID identifies a case. Immutable once assigned.
type CaseID string

// NewCaseID generates a fresh case identifier
func NewCaseID() CaseID {
	return CaseID("case-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// Validate checks if the CaseID is valid
func (id CaseID) Validate() error {
	if id == "" {
		return goerr.New("case ID cannot be empty")
	}
	if !idPattern.MatchString(string(id)) {
		return goerr.New("case ID has invalid format", goerr.V("id", id))
	}
	return nil
}

// String returns the string representation of CaseID
func (id CaseID) String() string {
	return string(id)
}

// SuspectID identifies a suspect in the external suspect registry
type SuspectID string

// NewSuspectID generates a fresh suspect identifier
func NewSuspectID() SuspectID {
	return SuspectID("suspect-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// Validate checks if the SuspectID is valid
func (id SuspectID) Validate() error {
	if id == "" {
		return goerr.New("suspect ID cannot be empty")
	}
	if !idPattern.MatchString(string(id)) {
		return goerr.New("suspect ID has invalid format", goerr.V("id", id))
	}
	return nil
}

// String returns the string representation of SuspectID
func (id SuspectID) String() string {
	return string(id)
}

// ActorID identifies the principal issuing a command
type ActorID string

// Validate checks if the ActorID is valid
func (id ActorID) Validate() error {
	if id == "" {
		return goerr.New("actor ID cannot be empty")
	}
	if !idPattern.MatchString(string(id)) {
		return goerr.New("actor ID has invalid format", goerr.V("id", id))
	}
	return nil
}

// String returns the string representation of ActorID
func (id ActorID) String() string {
	return string(id)
}

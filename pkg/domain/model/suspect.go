package model

import (
	"time"

	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// SuspectLink is a suspect as seen by one case during adjudication. The
// suspect entity itself belongs to an external registry; only the fields
// below are held here.
type SuspectLink struct {
	CaseID    types.CaseID
	SuspectID types.SuspectID
	FullName  string
	Role      types.SuspectRole
	Status    types.SuspectStatus // read-only for the workflow engine
	LinkedBy  types.ActorID

	// Adjudication fields, cleared by reject_suspects
	DetectiveGuiltScore *int
	SergeantGuiltScore  *int
	CaptainDecision     string
	ChiefDecision       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Copy creates a deep copy of the link
func (s *SuspectLink) Copy() *SuspectLink {
	if s == nil {
		return nil
	}
	copied := *s
	copied.DetectiveGuiltScore = copyInt(s.DetectiveGuiltScore)
	copied.SergeantGuiltScore = copyInt(s.SergeantGuiltScore)
	return &copied
}

// IsScored reports whether both the detective and the sergeant recorded a score
func (s *SuspectLink) IsScored() bool {
	return s.DetectiveGuiltScore != nil && s.SergeantGuiltScore != nil
}

// ClearAdjudication removes all scores and decisions
func (s *SuspectLink) ClearAdjudication() {
	s.DetectiveGuiltScore = nil
	s.SergeantGuiltScore = nil
	s.CaptainDecision = ""
	s.ChiefDecision = ""
}

// Equal compares all fields of two links
func (s *SuspectLink) Equal(o *SuspectLink) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.CaseID == o.CaseID &&
		s.SuspectID == o.SuspectID &&
		s.FullName == o.FullName &&
		s.Role == o.Role &&
		s.Status == o.Status &&
		s.LinkedBy == o.LinkedBy &&
		equalInt(s.DetectiveGuiltScore, o.DetectiveGuiltScore) &&
		equalInt(s.SergeantGuiltScore, o.SergeantGuiltScore) &&
		s.CaptainDecision == o.CaptainDecision &&
		s.ChiefDecision == o.ChiefDecision &&
		s.CreatedAt.Equal(o.CreatedAt) &&
		s.UpdatedAt.Equal(o.UpdatedAt)
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

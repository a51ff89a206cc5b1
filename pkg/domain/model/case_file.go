package model

import "github.com/secmon-lab/dossier/pkg/domain/types"

// CaseFile is the unit of mutual exclusion: a case together with the
// suspect links of its current adjudication pass.
type CaseFile struct {
	Case     *Case
	Suspects []*SuspectLink
}

// Copy creates a deep copy of the case file
func (f *CaseFile) Copy() *CaseFile {
	if f == nil {
		return nil
	}
	suspects := make([]*SuspectLink, len(f.Suspects))
	for i, s := range f.Suspects {
		suspects[i] = s.Copy()
	}
	return &CaseFile{
		Case:     f.Case.Copy(),
		Suspects: suspects,
	}
}

// Suspect finds a linked suspect by ID
func (f *CaseFile) Suspect(id types.SuspectID) *SuspectLink {
	for _, s := range f.Suspects {
		if s.SuspectID == id {
			return s
		}
	}
	return nil
}

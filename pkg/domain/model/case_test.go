package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

func newFile() *model.CaseFile {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.CaseFile{
		Case: &model.Case{
			ID:       "case-1",
			Title:    "Harbour warehouse fire",
			Status:   types.CaseStatusInterrogation,
			Severity: types.CrimeSeverityCritical,
			History: []model.HistoryEntry{
				model.NewHistoryEntry(model.HistoryActionOpen, "", types.CaseStatusCreated, "detective", "Case opened", now),
			},
			Version: 3,
		},
		Suspects: []*model.SuspectLink{
			{CaseID: "case-1", SuspectID: "s-1", DetectiveGuiltScore: model.IntPtr(7)},
			{CaseID: "case-1", SuspectID: "s-2"},
		},
	}
}

func TestCaseFile_Copy(t *testing.T) {
	orig := newFile()
	copied := orig.Copy()

	copied.Case.Status = types.CaseStatusPendingCaptain
	copied.Case.History[0].Notes = "changed"
	*copied.Suspects[0].DetectiveGuiltScore = 1
	copied.Suspects[1].CaptainDecision = "guilty"

	gt.Value(t, orig.Case.Status).Equal(types.CaseStatusInterrogation)
	gt.Value(t, orig.Case.History[0].Notes).Equal("Case opened")
	gt.Value(t, *orig.Suspects[0].DetectiveGuiltScore).Equal(7)
	gt.Value(t, orig.Suspects[1].CaptainDecision).Equal("")
}

func TestCaseFile_Suspect(t *testing.T) {
	f := newFile()
	gt.Value(t, f.Suspect("s-2")).NotNil()
	gt.Value(t, f.Suspect("s-9")).Nil()
}

func TestCase_LastEntry(t *testing.T) {
	c := &model.Case{}
	_, ok := c.LastEntry()
	gt.Bool(t, ok).False()

	f := newFile()
	entry, ok := f.Case.LastEntry()
	gt.Bool(t, ok).True()
	gt.Value(t, entry.Action).Equal(model.HistoryActionOpen)
	gt.Value(t, entry.ID).NotEqual("")
}

func TestSuspectLink_ClearAdjudication(t *testing.T) {
	s := &model.SuspectLink{
		SuspectID:           "s-1",
		DetectiveGuiltScore: model.IntPtr(4),
		SergeantGuiltScore:  model.IntPtr(5),
		CaptainDecision:     "guilty",
		ChiefDecision:       "guilty",
	}
	gt.Bool(t, s.IsScored()).True()

	s.ClearAdjudication()
	gt.Bool(t, s.IsScored()).False()
	gt.Value(t, s.CaptainDecision).Equal("")
	gt.Value(t, s.ChiefDecision).Equal("")
}

func TestSuspectLink_Equal(t *testing.T) {
	a := &model.SuspectLink{SuspectID: "s-1", DetectiveGuiltScore: model.IntPtr(4)}
	b := a.Copy()
	gt.Bool(t, a.Equal(b)).True()

	*b.DetectiveGuiltScore = 5
	gt.Bool(t, a.Equal(b)).False()

	var nilLink *model.SuspectLink
	gt.Bool(t, nilLink.Equal(nil)).True()
	gt.Bool(t, a.Equal(nil)).False()
}

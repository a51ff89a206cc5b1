package workflow_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/workflow"
)

func TestScoreBoard(t *testing.T) {
	suspects := []*model.SuspectLink{
		{SuspectID: "S1", DetectiveGuiltScore: model.IntPtr(3), SergeantGuiltScore: model.IntPtr(4), CaptainDecision: "guilty"},
		{SuspectID: "S2", DetectiveGuiltScore: model.IntPtr(3)},
		{SuspectID: "S3", SergeantGuiltScore: model.IntPtr(4), ChiefDecision: "guilty"},
	}
	board := workflow.NewScoreBoard(suspects)

	gt.Number(t, board.Len()).Equal(3)
	gt.Value(t, board.MissingScores()).Equal([]types.SuspectID{"S2", "S3"})
	gt.Value(t, board.MissingCaptainDecisions()).Equal([]types.SuspectID{"S2", "S3"})
	gt.Value(t, board.MissingChiefDecisions()).Equal([]types.SuspectID{"S1", "S2"})
	gt.Value(t, board.Entry("S2")).Equal(suspects[1])
	gt.Value(t, board.Entry("S9")).Nil()

	board.Reset()
	gt.Array(t, board.MissingScores()).Length(3)
	gt.Array(t, board.MissingChiefDecisions()).Length(3)
	gt.Value(t, suspects[0].CaptainDecision).Equal("")
}

func TestScoreBoard_Empty(t *testing.T) {
	board := workflow.NewScoreBoard(nil)
	gt.Number(t, board.Len()).Equal(0)
	gt.Array(t, board.MissingScores()).Length(0)
}

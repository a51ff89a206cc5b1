package workflow_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/workflow"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newWorkflow() *workflow.Workflow {
	return workflow.New(workflow.WithClock(func() time.Time { return fixedNow }))
}

func newFile(status types.CaseStatus, severity types.CrimeSeverity, suspectIDs ...types.SuspectID) *model.CaseFile {
	file := &model.CaseFile{
		Case: &model.Case{
			ID:       "C1",
			Title:    "Warehouse fire",
			Status:   status,
			Origin:   types.CaseOriginCrimeScene,
			Severity: severity,
			Version:  1,
		},
	}
	for _, id := range suspectIDs {
		file.Suspects = append(file.Suspects, &model.SuspectLink{
			CaseID:    "C1",
			SuspectID: id,
			FullName:  "Suspect " + id.String(),
			Role:      types.SuspectRolePrimary,
			Status:    types.SuspectStatusUnderInvestigation,
		})
	}
	return file
}

func cmd(action types.Action, actor types.ActorID, payload model.Payload) model.Command {
	return model.Command{CaseID: "C1", Action: action, Actor: actor, Payload: payload}
}

func TestWorkflow_Scenario(t *testing.T) {
	w := newWorkflow()
	file := newFile(types.CaseStatusInvestigation, types.CrimeSeverityLevel1, "S1")

	steps := []struct {
		command model.Command
		want    types.CaseStatus
	}{
		{cmd(types.ActionIdentifySuspects, "detective", model.Payload{}), types.CaseStatusSuspectIdentified},
		{cmd(types.ActionApproveSuspects, "sergeant", model.Payload{}), types.CaseStatusInterrogation},
		{cmd(types.ActionRecordDetectiveScore, "detective", model.Payload{SuspectID: "S1", Score: 7}), types.CaseStatusInterrogation},
		{cmd(types.ActionRecordSergeantScore, "sergeant", model.Payload{SuspectID: "S1", Score: 8}), types.CaseStatusInterrogation},
		{cmd(types.ActionSubmitToCaptain, "detective", model.Payload{}), types.CaseStatusPendingCaptain},
		{cmd(types.ActionRecordCaptainDecision, "captain", model.Payload{SuspectID: "S1", Decision: "guilty, strong evidence"}), types.CaseStatusPendingCaptain},
		{cmd(types.ActionCaptainApprove, "captain", model.Payload{}), types.CaseStatusTrial},
	}

	for i, step := range steps {
		out, err := w.Apply(file, step.command)
		gt.NoError(t, err).Required()
		gt.Value(t, file.Case.Status).Equal(step.want)
		gt.Array(t, file.Case.History).Length(i + 1)
		gt.Value(t, out.Entry.Action).Equal(step.command.Action)
		gt.Value(t, out.Entry.To).Equal(step.want)
		gt.Value(t, out.Entry.Actor).Equal(step.command.Actor)
	}

	s1 := file.Suspect("S1")
	gt.Value(t, *s1.DetectiveGuiltScore).Equal(7)
	gt.Value(t, *s1.SergeantGuiltScore).Equal(8)
	gt.Value(t, s1.CaptainDecision).Equal("guilty, strong evidence")
	gt.Value(t, s1.Status).Equal(types.SuspectStatusUnderInvestigation)
}

func TestWorkflow_TransitionWhitelist(t *testing.T) {
	w := newWorkflow()

	for _, status := range types.AllCaseStatuses() {
		for _, action := range types.AllActions() {
			if workflow.IsAllowed(status, action) {
				continue
			}
			t.Run(status.String()+"/"+action.String(), func(t *testing.T) {
				file := newFile(status, types.CrimeSeverityCritical, "S1")
				before := file.Copy()

				_, err := w.Apply(file, cmd(action, "admin", model.Payload{
					SuspectID: "S1", Score: 5, Decision: "x", Notes: "n",
				}))
				gt.Error(t, err).Is(model.ErrInvalidTransition)

				var te *model.TransitionError
				gt.Bool(t, errors.As(err, &te)).True()
				gt.Value(t, te.Status).Equal(status)
				gt.Value(t, te.Action).Equal(action)

				gt.Value(t, file.Case).Equal(before.Case)
				gt.Bool(t, file.Suspects[0].Equal(before.Suspects[0])).True()
			})
		}
	}
}

func TestWorkflow_TerminalStatesConsumeNothing(t *testing.T) {
	gt.Array(t, workflow.AllowedActions(types.CaseStatusClosedSolved)).Length(0)
	gt.Array(t, workflow.AllowedActions(types.CaseStatusClosedUnsolved)).Length(0)
}

func TestWorkflow_EscalationBySeverity(t *testing.T) {
	tests := []struct {
		severity types.CrimeSeverity
		want     types.CaseStatus
	}{
		{types.CrimeSeverityCritical, types.CaseStatusPendingChief},
		{types.CrimeSeverityLevel1, types.CaseStatusTrial},
		{types.CrimeSeverityLevel2, types.CaseStatusTrial},
		{types.CrimeSeverityLevel3, types.CaseStatusTrial},
	}

	for _, tt := range tests {
		t.Run(tt.severity.String(), func(t *testing.T) {
			gt.Value(t, workflow.EscalationTarget(tt.severity)).Equal(tt.want)

			file := newFile(types.CaseStatusPendingCaptain, tt.severity, "S1", "S2")
			for _, s := range file.Suspects {
				s.DetectiveGuiltScore = model.IntPtr(5)
				s.SergeantGuiltScore = model.IntPtr(6)
				s.CaptainDecision = "guilty"
			}
			_, err := newWorkflow().Apply(file, cmd(types.ActionCaptainApprove, "captain", model.Payload{}))
			gt.NoError(t, err).Required()
			gt.Value(t, file.Case.Status).Equal(tt.want)
		})
	}
}

func TestWorkflow_ScoreWriteOnce(t *testing.T) {
	w := newWorkflow()
	file := newFile(types.CaseStatusInterrogation, types.CrimeSeverityLevel2, "S1")

	_, err := w.Apply(file, cmd(types.ActionRecordDetectiveScore, "detective", model.Payload{SuspectID: "S1", Score: 4}))
	gt.NoError(t, err).Required()

	for _, score := range []int{4, 9} {
		_, err = w.Apply(file, cmd(types.ActionRecordDetectiveScore, "detective", model.Payload{SuspectID: "S1", Score: score}))
		gt.Error(t, err).Is(model.ErrAlreadyScored)
	}
	gt.Value(t, *file.Suspect("S1").DetectiveGuiltScore).Equal(4)
	gt.Array(t, file.Case.History).Length(1)

	// the sergeant's score is independent
	_, err = w.Apply(file, cmd(types.ActionRecordSergeantScore, "sergeant", model.Payload{SuspectID: "S1", Score: 9}))
	gt.NoError(t, err).Required()
	gt.Value(t, *file.Suspect("S1").SergeantGuiltScore).Equal(9)
}

func TestWorkflow_InvalidScore(t *testing.T) {
	for _, score := range []int{0, -1, 11, 100} {
		file := newFile(types.CaseStatusInterrogation, types.CrimeSeverityLevel2, "S1")
		_, err := newWorkflow().Apply(file, cmd(types.ActionRecordSergeantScore, "sergeant", model.Payload{SuspectID: "S1", Score: score}))
		gt.Error(t, err).Is(model.ErrInvalidScore)
		gt.Value(t, file.Suspect("S1").SergeantGuiltScore).Nil()
		gt.Array(t, file.Case.History).Length(0)
	}

	for _, score := range []int{1, 10} {
		file := newFile(types.CaseStatusInterrogation, types.CrimeSeverityLevel2, "S1")
		_, err := newWorkflow().Apply(file, cmd(types.ActionRecordSergeantScore, "sergeant", model.Payload{SuspectID: "S1", Score: score}))
		gt.NoError(t, err)
	}
}

func TestWorkflow_SuspectScopedErrors(t *testing.T) {
	t.Run("unknown suspect", func(t *testing.T) {
		file := newFile(types.CaseStatusInterrogation, types.CrimeSeverityLevel2, "S1")
		_, err := newWorkflow().Apply(file, cmd(types.ActionRecordDetectiveScore, "detective", model.Payload{SuspectID: "S9", Score: 3}))
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("missing suspect id", func(t *testing.T) {
		file := newFile(types.CaseStatusInterrogation, types.CrimeSeverityLevel2, "S1")
		_, err := newWorkflow().Apply(file, cmd(types.ActionRecordDetectiveScore, "detective", model.Payload{Score: 3}))
		gt.Error(t, err).Is(model.ErrInvalidPayload)
	})

	t.Run("empty decision", func(t *testing.T) {
		file := newFile(types.CaseStatusPendingCaptain, types.CrimeSeverityLevel2, "S1")
		_, err := newWorkflow().Apply(file, cmd(types.ActionRecordCaptainDecision, "captain", model.Payload{SuspectID: "S1", Decision: "  "}))
		gt.Error(t, err).Is(model.ErrInvalidDecision)
	})

	t.Run("decision is write-once", func(t *testing.T) {
		file := newFile(types.CaseStatusPendingCaptain, types.CrimeSeverityLevel2, "S1")
		w := newWorkflow()
		_, err := w.Apply(file, cmd(types.ActionRecordCaptainDecision, "captain", model.Payload{SuspectID: "S1", Decision: "guilty"}))
		gt.NoError(t, err).Required()
		_, err = w.Apply(file, cmd(types.ActionRecordCaptainDecision, "captain", model.Payload{SuspectID: "S1", Decision: "innocent"}))
		gt.Error(t, err).Is(model.ErrAlreadyDecided)
		gt.Value(t, file.Suspect("S1").CaptainDecision).Equal("guilty")
	})

	t.Run("scores rejected outside interrogation", func(t *testing.T) {
		file := newFile(types.CaseStatusPendingCaptain, types.CrimeSeverityLevel2, "S1")
		_, err := newWorkflow().Apply(file, cmd(types.ActionRecordDetectiveScore, "detective", model.Payload{SuspectID: "S1", Score: 3}))
		gt.Error(t, err).Is(model.ErrInvalidTransition)
	})

	t.Run("unknown action", func(t *testing.T) {
		file := newFile(types.CaseStatusInterrogation, types.CrimeSeverityLevel2, "S1")
		_, err := newWorkflow().Apply(file, cmd(types.Action("arrest"), "detective", model.Payload{}))
		gt.Error(t, err).Is(model.ErrUnknownAction)
	})
}

func TestWorkflow_GatingCompleteness(t *testing.T) {
	ids := []types.SuspectID{"S1", "S2", "S3"}

	for skip := range ids {
		t.Run("unscored "+ids[skip].String(), func(t *testing.T) {
			file := newFile(types.CaseStatusInterrogation, types.CrimeSeverityLevel1, ids...)
			for i, s := range file.Suspects {
				s.DetectiveGuiltScore = model.IntPtr(6)
				if i != skip {
					s.SergeantGuiltScore = model.IntPtr(6)
				}
			}

			_, err := newWorkflow().Apply(file, cmd(types.ActionSubmitToCaptain, "detective", model.Payload{}))
			gt.Error(t, err).Is(model.ErrPreconditionFailed)

			var pe *model.PreconditionError
			gt.Bool(t, errors.As(err, &pe)).True()
			gt.Value(t, pe.Reason).Equal(model.ReasonMissingScores)
			gt.Array(t, pe.SuspectIDs).Length(1)
			gt.Value(t, pe.SuspectIDs[0]).Equal(ids[skip])
			gt.Value(t, file.Case.Status).Equal(types.CaseStatusInterrogation)
		})
	}

	t.Run("all scored", func(t *testing.T) {
		file := newFile(types.CaseStatusInterrogation, types.CrimeSeverityLevel1, ids...)
		for _, s := range file.Suspects {
			s.DetectiveGuiltScore = model.IntPtr(2)
			s.SergeantGuiltScore = model.IntPtr(3)
		}
		_, err := newWorkflow().Apply(file, cmd(types.ActionSubmitToCaptain, "sergeant", model.Payload{}))
		gt.NoError(t, err).Required()
		gt.Value(t, file.Case.Status).Equal(types.CaseStatusPendingCaptain)
	})
}

func TestWorkflow_DecisionGates(t *testing.T) {
	t.Run("captain approve needs every captain decision", func(t *testing.T) {
		file := newFile(types.CaseStatusPendingCaptain, types.CrimeSeverityLevel3, "S1", "S2")
		file.Suspects[0].CaptainDecision = "guilty"

		_, err := newWorkflow().Apply(file, cmd(types.ActionCaptainApprove, "captain", model.Payload{}))
		var pe *model.PreconditionError
		gt.Bool(t, errors.As(err, &pe)).True()
		gt.Value(t, pe.Reason).Equal(model.ReasonMissingCaptainDecisions)
		gt.Value(t, pe.SuspectIDs[0]).Equal(types.SuspectID("S2"))
	})

	t.Run("chief approve needs every chief decision", func(t *testing.T) {
		file := newFile(types.CaseStatusPendingChief, types.CrimeSeverityCritical, "S1", "S2")
		for _, s := range file.Suspects {
			s.CaptainDecision = "guilty"
		}
		file.Suspects[1].ChiefDecision = "guilty"

		w := newWorkflow()
		_, err := w.Apply(file, cmd(types.ActionChiefApprove, "chief", model.Payload{}))
		var pe *model.PreconditionError
		gt.Bool(t, errors.As(err, &pe)).True()
		gt.Value(t, pe.Reason).Equal(model.ReasonMissingChiefDecisions)

		_, err = w.Apply(file, cmd(types.ActionRecordChiefDecision, "chief", model.Payload{SuspectID: "S1", Decision: "guilty"}))
		gt.NoError(t, err).Required()
		_, err = w.Apply(file, cmd(types.ActionChiefApprove, "chief", model.Payload{}))
		gt.NoError(t, err).Required()
		gt.Value(t, file.Case.Status).Equal(types.CaseStatusTrial)
	})
}

func TestWorkflow_RejectSuspectsResets(t *testing.T) {
	w := newWorkflow()
	file := newFile(types.CaseStatusSuspectIdentified, types.CrimeSeverityLevel2, "S1", "S2")
	for _, s := range file.Suspects {
		s.DetectiveGuiltScore = model.IntPtr(4)
		s.SergeantGuiltScore = model.IntPtr(5)
		s.CaptainDecision = "stale"
		s.ChiefDecision = "stale"
	}

	t.Run("notes are required", func(t *testing.T) {
		_, err := w.Apply(file, cmd(types.ActionRejectSuspects, "sergeant", model.Payload{Notes: " "}))
		var pe *model.PreconditionError
		gt.Bool(t, errors.As(err, &pe)).True()
		gt.Value(t, pe.Reason).Equal(model.ReasonMissingNotes)
		gt.Value(t, file.Suspects[0].CaptainDecision).Equal("stale")
	})

	out, err := w.Apply(file, cmd(types.ActionRejectSuspects, "sergeant", model.Payload{Notes: "alibi confirmed"}))
	gt.NoError(t, err).Required()
	gt.Value(t, out.Entry.Notes).Equal("alibi confirmed")
	gt.Value(t, file.Case.Status).Equal(types.CaseStatusInvestigation)
	for _, s := range file.Suspects {
		gt.Value(t, s.DetectiveGuiltScore).Nil()
		gt.Value(t, s.SergeantGuiltScore).Nil()
		gt.Value(t, s.CaptainDecision).Equal("")
		gt.Value(t, s.ChiefDecision).Equal("")
	}

	// second pass behaves like the first
	for _, c := range []model.Command{
		cmd(types.ActionIdentifySuspects, "detective", model.Payload{}),
		cmd(types.ActionApproveSuspects, "sergeant", model.Payload{}),
		cmd(types.ActionRecordDetectiveScore, "detective", model.Payload{SuspectID: "S1", Score: 1}),
	} {
		_, err := w.Apply(file, c)
		gt.NoError(t, err).Required()
	}
	gt.Value(t, *file.Suspect("S1").DetectiveGuiltScore).Equal(1)
}

func TestWorkflow_CaseLevelEffects(t *testing.T) {
	t.Run("approve case records approver", func(t *testing.T) {
		file := newFile(types.CaseStatusPendingApproval, types.CrimeSeverityLevel3)
		out, err := newWorkflow().Apply(file, cmd(types.ActionApproveCase, "captain", model.Payload{}))
		gt.NoError(t, err).Required()
		gt.Value(t, file.Case.Status).Equal(types.CaseStatusCreated)
		gt.Value(t, file.Case.ApprovedBy).Equal(types.ActorID("captain"))
		gt.Value(t, out.Entry.From).Equal(types.CaseStatusPendingApproval)
		gt.Value(t, out.Entry.Timestamp).Equal(fixedNow)
	})

	t.Run("start investigation assigns lead detective", func(t *testing.T) {
		file := newFile(types.CaseStatusCreated, types.CrimeSeverityLevel3)
		_, err := newWorkflow().Apply(file, cmd(types.ActionStartInvestigation, "holmes", model.Payload{}))
		gt.NoError(t, err).Required()
		gt.Value(t, file.Case.LeadDetective).Equal(types.ActorID("holmes"))
	})

	t.Run("identify needs a suspect", func(t *testing.T) {
		file := newFile(types.CaseStatusInvestigation, types.CrimeSeverityLevel3)
		_, err := newWorkflow().Apply(file, cmd(types.ActionIdentifySuspects, "holmes", model.Payload{}))
		var pe *model.PreconditionError
		gt.Bool(t, errors.As(err, &pe)).True()
		gt.Value(t, pe.Reason).Equal(model.ReasonMissingSuspects)
	})

	t.Run("verdict closes trial", func(t *testing.T) {
		file := newFile(types.CaseStatusTrial, types.CrimeSeverityLevel3, "S1")
		_, err := newWorkflow().Apply(file, cmd(types.ActionCloseUnsolved, "judge", model.Payload{}))
		gt.NoError(t, err).Required()
		gt.Bool(t, file.Case.Status.IsTerminal()).True()
	})
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/repository/memory"
	"github.com/secmon-lab/dossier/pkg/usecase"
)

const (
	detective = types.ActorID("detective")
	sergeant  = types.ActorID("sergeant")
	captain   = types.ActorID("captain")
	chief     = types.ActorID("chief")
	judge     = types.ActorID("judge")
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newUseCase(t *testing.T, opts ...usecase.Option) (*usecase.WorkflowUseCase, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	opts = append([]usecase.Option{usecase.WithClock(fixedClock())}, opts...)
	return usecase.New(repo, opts...).Workflow, repo
}

func openCase(t *testing.T, uc *usecase.WorkflowUseCase, severity types.CrimeSeverity) types.CaseID {
	t.Helper()
	file, err := uc.OpenCase(context.Background(), usecase.OpenCaseInput{
		Title:    "Robbery at the Grand Hotel",
		Origin:   types.CaseOriginComplaint,
		Severity: severity,
		Actor:    detective,
	})
	gt.NoError(t, err).Required()
	return file.Case.ID
}

func apply(t *testing.T, uc *usecase.WorkflowUseCase, caseID types.CaseID, action types.Action, actor types.ActorID, payload model.Payload) *model.Result {
	t.Helper()
	res, err := uc.Apply(context.Background(), model.Command{
		CaseID:  caseID,
		Action:  action,
		Actor:   actor,
		Payload: payload,
	})
	gt.NoError(t, err).Required()
	return res
}

func attach(t *testing.T, uc *usecase.WorkflowUseCase, caseID types.CaseID, name string) types.SuspectID {
	t.Helper()
	link, err := uc.AttachSuspect(context.Background(), usecase.AttachSuspectInput{
		CaseID:   caseID,
		FullName: name,
		Actor:    detective,
	})
	gt.NoError(t, err).Required()
	return link.SuspectID
}

// toInterrogation drives a new case with two suspects into interrogation
func toInterrogation(t *testing.T, uc *usecase.WorkflowUseCase, severity types.CrimeSeverity) (types.CaseID, []types.SuspectID) {
	t.Helper()
	id := openCase(t, uc, severity)
	apply(t, uc, id, types.ActionStartInvestigation, detective, model.Payload{})
	s1 := attach(t, uc, id, "Vincent Moriarty")
	s2 := attach(t, uc, id, "Irene Adler")
	apply(t, uc, id, types.ActionIdentifySuspects, detective, model.Payload{})
	apply(t, uc, id, types.ActionApproveSuspects, sergeant, model.Payload{})
	return id, []types.SuspectID{s1, s2}
}

// toPendingCaptain scores every suspect and submits the case
func toPendingCaptain(t *testing.T, uc *usecase.WorkflowUseCase, severity types.CrimeSeverity) (types.CaseID, []types.SuspectID) {
	t.Helper()
	id, suspects := toInterrogation(t, uc, severity)
	for _, s := range suspects {
		apply(t, uc, id, types.ActionRecordDetectiveScore, detective, model.Payload{SuspectID: s, Score: 7})
		apply(t, uc, id, types.ActionRecordSergeantScore, sergeant, model.Payload{SuspectID: s, Score: 6})
	}
	apply(t, uc, id, types.ActionSubmitToCaptain, detective, model.Payload{})
	return id, suspects
}

func state(t *testing.T, uc *usecase.WorkflowUseCase, id types.CaseID) *model.CaseFile {
	t.Helper()
	file, err := uc.GetCaseState(context.Background(), id)
	gt.NoError(t, err).Required()
	return file
}

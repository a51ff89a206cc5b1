package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/utils/keylock"
	"github.com/secmon-lab/dossier/pkg/utils/logging"
	"github.com/secmon-lab/dossier/pkg/workflow"
)

// WorkflowUseCase is the command entry point of the case workflow. Commands
// on one case are serialized by a per-case lock and committed with a
// version check; commands on different cases run in parallel.
type WorkflowUseCase struct {
	repo         interfaces.Repository
	authority    interfaces.RoleAuthority
	approval     interfaces.ApprovalPolicy
	locks        *keylock.Locker[types.CaseID]
	lockTimeout  time.Duration
	flow         *workflow.Workflow
	now          func() time.Time
	beforeCommit func(ctx context.Context, file *model.CaseFile) error
}

func NewWorkflowUseCase(uc *UseCases) *WorkflowUseCase {
	return &WorkflowUseCase{
		repo:         uc.repo,
		authority:    uc.authority,
		approval:     uc.approval,
		locks:        keylock.New[types.CaseID](),
		lockTimeout:  uc.lockTimeout,
		flow:         workflow.New(workflow.WithClock(uc.now)),
		now:          uc.now,
		beforeCommit: uc.beforeCommit,
	}
}

// lock acquires the per-case lock. A wait that outlives the lock timeout is
// reported as model.ErrBusy; cancellation of ctx is returned as is.
func (uc *WorkflowUseCase) lock(ctx context.Context, caseID types.CaseID) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "command cancelled", goerr.V(model.CaseIDKey, caseID))
	}

	lockCtx, cancel := context.WithTimeout(ctx, uc.lockTimeout)
	defer cancel()

	unlock, err := uc.locks.Lock(lockCtx, caseID)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, goerr.Wrap(ctx.Err(), "command cancelled while waiting for case lock",
				goerr.V(model.CaseIDKey, caseID))
		}
		return nil, goerr.Wrap(model.ErrBusy, "timed out waiting for case lock",
			goerr.V(model.CaseIDKey, caseID),
			goerr.V("lock_timeout", uc.lockTimeout.String()))
	}
	return unlock, nil
}

func (uc *WorkflowUseCase) authorize(ctx context.Context, actor types.ActorID, capability types.Capability) error {
	ok, err := uc.authority.Can(ctx, actor, capability)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve capability",
			goerr.V(model.ActorKey, actor), goerr.V(model.CapabilityKey, capability))
	}
	if !ok {
		return goerr.Wrap(&model.ForbiddenError{Actor: actor, Capability: capability}, "actor lacks capability",
			goerr.V(model.ActorKey, actor), goerr.V(model.CapabilityKey, capability))
	}
	return nil
}

func (uc *WorkflowUseCase) load(ctx context.Context, caseID types.CaseID) (*model.CaseFile, error) {
	file, err := uc.repo.Load(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load case", goerr.V(model.CaseIDKey, caseID))
	}
	return file, nil
}

// Apply runs one command against one case. Order of checks: action is
// known, case lock, case exists, actor holds the capability, then the
// transition and its preconditions. Any error leaves storage unchanged.
func (uc *WorkflowUseCase) Apply(ctx context.Context, cmd model.Command) (*model.Result, error) {
	if !cmd.Action.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownAction, "unknown action",
			goerr.V(model.CaseIDKey, cmd.CaseID), goerr.V(model.ActionKey, cmd.Action))
	}

	unlock, err := uc.lock(ctx, cmd.CaseID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	file, err := uc.load(ctx, cmd.CaseID)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ctx, cmd.Actor, cmd.Action.Capability()); err != nil {
		return nil, goerr.Wrap(err, "command rejected",
			goerr.V(model.CaseIDKey, cmd.CaseID), goerr.V(model.ActionKey, cmd.Action))
	}

	working := file.Copy()
	outcome, err := uc.flow.Apply(working, cmd)
	if err != nil {
		return nil, goerr.Wrap(err, "command rejected",
			goerr.V(model.CaseIDKey, cmd.CaseID), goerr.V(model.ActionKey, cmd.Action))
	}

	committed, err := uc.commit(ctx, working)
	if err != nil {
		return nil, err
	}

	result := &model.Result{
		Case:     committed.Case,
		Suspects: committed.Suspects,
		Entry:    outcome.Entry,
	}
	if outcome.Suspect != nil {
		result.Suspect = committed.Suspect(outcome.Suspect.SuspectID)
	}

	logging.From(ctx).Info("workflow action applied",
		"case_id", cmd.CaseID,
		"action", cmd.Action,
		"actor", cmd.Actor,
		"from", outcome.Entry.From,
		"to", outcome.Entry.To,
		"version", committed.Case.Version,
	)

	return result, nil
}

// commit is the point of no return. Cancellation is honoured up to here;
// once the store is called it runs to completion.
func (uc *WorkflowUseCase) commit(ctx context.Context, working *model.CaseFile) (*model.CaseFile, error) {
	caseID := working.Case.ID

	if uc.beforeCommit != nil {
		if err := uc.beforeCommit(ctx, working); err != nil {
			return nil, goerr.Wrap(err, "aborted before commit", goerr.V(model.CaseIDKey, caseID))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "command cancelled before commit", goerr.V(model.CaseIDKey, caseID))
	}

	committed, err := uc.repo.Commit(context.WithoutCancel(ctx), working)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to commit case", goerr.V(model.CaseIDKey, caseID))
	}
	return committed, nil
}

// GetCaseState returns the case with its suspects and full history, read
// as one snapshot of a single case version
func (uc *WorkflowUseCase) GetCaseState(ctx context.Context, caseID types.CaseID) (*model.CaseFile, error) {
	return uc.load(ctx, caseID)
}

// ListCases returns cases, optionally only those in status
func (uc *WorkflowUseCase) ListCases(ctx context.Context, status *types.CaseStatus) ([]*model.Case, error) {
	var opts []interfaces.ListCaseOption
	if status != nil {
		if !status.IsValid() {
			return nil, goerr.Wrap(model.ErrInvalidPayload, "invalid status filter", goerr.V(model.StatusKey, *status))
		}
		opts = append(opts, interfaces.WithStatus(*status))
	}

	cases, err := uc.repo.Case().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	return cases, nil
}

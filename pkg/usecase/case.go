package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/utils/logging"
)

// attachSuspectAction names suspect attachment in transition errors
const attachSuspectAction types.Action = "attach_suspect"

// OpenCaseInput describes a case to open. An empty ID is generated.
type OpenCaseInput struct {
	ID       types.CaseID
	Title    string
	Origin   types.CaseOrigin
	Severity types.CrimeSeverity
	Actor    types.ActorID
}

func (in *OpenCaseInput) validate() error {
	if in.Title == "" {
		return goerr.Wrap(model.ErrInvalidPayload, "case title is required")
	}
	if !in.Origin.IsValid() {
		return goerr.Wrap(model.ErrInvalidPayload, "invalid case origin", goerr.V("origin", in.Origin))
	}
	if !in.Severity.IsValid() {
		return goerr.Wrap(model.ErrInvalidPayload, "invalid crime severity", goerr.V("crime_severity", int(in.Severity)))
	}
	if in.ID != "" {
		if err := in.ID.Validate(); err != nil {
			return goerr.Wrap(model.ErrInvalidPayload, "invalid case ID",
				goerr.V(model.CaseIDKey, in.ID), goerr.V("error", err.Error()))
		}
	}
	return nil
}

// OpenCase creates a case in created, or in pending_approval when the
// approval policy asks for a superior's sign-off.
func (uc *WorkflowUseCase) OpenCase(ctx context.Context, in OpenCaseInput) (*model.CaseFile, error) {
	if err := uc.authorize(ctx, in.Actor, types.CapabilityOpenCase); err != nil {
		return nil, goerr.Wrap(err, "cannot open case")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	required, err := uc.approval.RequiresApproval(ctx, in.Actor, in.Origin)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to evaluate approval policy", goerr.V(model.ActorKey, in.Actor))
	}

	status := types.CaseStatusCreated
	notes := "Case opened"
	if required {
		status = types.CaseStatusPendingApproval
		notes = "Case opened – awaiting superior approval"
	}

	id := in.ID
	if id == "" {
		id = types.NewCaseID()
	}

	at := uc.now()
	c := &model.Case{
		ID:        id,
		Title:     in.Title,
		Status:    status,
		Origin:    in.Origin,
		Severity:  in.Severity,
		CreatedBy: in.Actor,
		History: []model.HistoryEntry{
			model.NewHistoryEntry(model.HistoryActionOpen, "", status, in.Actor, notes, at),
		},
		CreatedAt: at,
		UpdatedAt: at,
	}

	created, err := uc.repo.Case().Create(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case", goerr.V(model.CaseIDKey, id))
	}

	logging.From(ctx).Info("case opened",
		"case_id", created.ID,
		"status", created.Status,
		"origin", created.Origin,
		"crime_severity", created.Severity.String(),
		"actor", in.Actor,
	)

	return &model.CaseFile{Case: created, Suspects: []*model.SuspectLink{}}, nil
}

// AttachSuspectInput describes a suspect to link. An empty SuspectID is generated.
type AttachSuspectInput struct {
	CaseID    types.CaseID
	SuspectID types.SuspectID
	FullName  string
	Role      types.SuspectRole
	Actor     types.ActorID
}

func (in *AttachSuspectInput) validate() error {
	if in.FullName == "" {
		return goerr.Wrap(model.ErrInvalidPayload, "suspect full name is required")
	}
	if !in.Role.Normalize().IsValid() {
		return goerr.Wrap(model.ErrInvalidPayload, "invalid suspect role", goerr.V("role", in.Role))
	}
	if in.SuspectID != "" {
		if err := in.SuspectID.Validate(); err != nil {
			return goerr.Wrap(model.ErrInvalidPayload, "invalid suspect ID",
				goerr.V(model.SuspectIDKey, in.SuspectID), goerr.V("error", err.Error()))
		}
	}
	return nil
}

// AttachSuspect links a suspect to a case under investigation
func (uc *WorkflowUseCase) AttachSuspect(ctx context.Context, in AttachSuspectInput) (*model.SuspectLink, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	unlock, err := uc.lock(ctx, in.CaseID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := uc.repo.Case().Get(ctx, in.CaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load case", goerr.V(model.CaseIDKey, in.CaseID))
	}

	if err := uc.authorize(ctx, in.Actor, types.CapabilityAttachSuspect); err != nil {
		return nil, goerr.Wrap(err, "cannot attach suspect", goerr.V(model.CaseIDKey, in.CaseID))
	}

	if c.Status != types.CaseStatusInvestigation {
		return nil, goerr.Wrap(&model.TransitionError{Status: c.Status, Action: attachSuspectAction},
			"suspects can only be attached during investigation", goerr.V(model.CaseIDKey, in.CaseID))
	}

	id := in.SuspectID
	if id == "" {
		id = types.NewSuspectID()
	}

	at := uc.now()
	link, err := uc.repo.SuspectLink().Link(ctx, &model.SuspectLink{
		CaseID:    in.CaseID,
		SuspectID: id,
		FullName:  in.FullName,
		Role:      in.Role.Normalize(),
		Status:    types.SuspectStatusUnderInvestigation,
		LinkedBy:  in.Actor,
		CreatedAt: at,
		UpdatedAt: at,
	}, c.Version)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to link suspect",
			goerr.V(model.CaseIDKey, in.CaseID), goerr.V(model.SuspectIDKey, id))
	}

	logging.From(ctx).Info("suspect attached",
		"case_id", in.CaseID,
		"suspect_id", id,
		"role", link.Role,
		"actor", in.Actor,
	)

	return link, nil
}

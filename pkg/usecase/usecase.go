package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/model/config"
	"github.com/secmon-lab/dossier/pkg/service/authority"
)

// DefaultLockTimeout is how long a command waits for the per-case lock
const DefaultLockTimeout = 3 * time.Second

type UseCases struct {
	repo         interfaces.Repository
	authority    interfaces.RoleAuthority
	approval     interfaces.ApprovalPolicy
	lockTimeout  time.Duration
	now          func() time.Time
	beforeCommit func(ctx context.Context, file *model.CaseFile) error

	Workflow *WorkflowUseCase
}

type Option func(*UseCases)

// WithAuthority sets the capability check used before every command
func WithAuthority(a interfaces.RoleAuthority) Option {
	return func(uc *UseCases) {
		uc.authority = a
	}
}

// WithApprovalPolicy sets the rule deciding the initial status of new cases
func WithApprovalPolicy(p interfaces.ApprovalPolicy) Option {
	return func(uc *UseCases) {
		uc.approval = p
	}
}

// WithLockTimeout bounds the wait for a busy case
func WithLockTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.lockTimeout = d
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithBeforeCommit installs a hook that runs after validation and mutation
// of the working copy but before it is committed. A hook error aborts the
// command with nothing stored.
func WithBeforeCommit(hook func(ctx context.Context, file *model.CaseFile) error) Option {
	return func(uc *UseCases) {
		uc.beforeCommit = hook
	}
}

// New wires the use cases. Without WithAuthority and WithApprovalPolicy the
// built-in police hierarchy applies.
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		lockTimeout: DefaultLockTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.authority == nil || uc.approval == nil {
		def := authority.New(config.DefaultPolicy())
		if uc.authority == nil {
			uc.authority = def
		}
		if uc.approval == nil {
			uc.approval = def
		}
	}

	uc.Workflow = NewWorkflowUseCase(uc)

	return uc
}

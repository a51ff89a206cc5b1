package workflow

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// Workflow dispatches commands to the case and suspect state machines
type Workflow struct {
	cases    CaseWorkflow
	suspects SuspectWorkflow
	now      func() time.Time
}

type Option func(*Workflow)

// WithClock replaces the time source used for history timestamps
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

func New(opts ...Option) *Workflow {
	w := &Workflow{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Outcome describes one applied command
type Outcome struct {
	Entry   model.HistoryEntry
	Suspect *model.SuspectLink
}

// Apply validates cmd against file and, when every check passes, mutates
// file and appends exactly one history entry. On error file is untouched.
func (w *Workflow) Apply(file *model.CaseFile, cmd model.Command) (*Outcome, error) {
	if !cmd.Action.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownAction, "unknown action",
			goerr.V(model.CaseIDKey, cmd.CaseID),
			goerr.V(model.ActionKey, cmd.Action))
	}

	c := file.Case
	from := c.Status
	at := w.now()

	if cmd.Action.IsSuspectScoped() {
		s, err := w.suspects.Check(file, cmd)
		if err != nil {
			return nil, err
		}
		notes := w.suspects.Mutate(s, cmd)
		s.UpdatedAt = at

		entry := model.NewHistoryEntry(cmd.Action, from, from, cmd.Actor, notes, at)
		entry.SuspectID = s.SuspectID
		w.append(c, entry)
		return &Outcome{Entry: entry, Suspect: s}, nil
	}

	next, err := w.cases.Check(file, cmd)
	if err != nil {
		return nil, err
	}
	notes := w.cases.Mutate(file, cmd, next)
	if cmd.Action == types.ActionApproveSuspects || cmd.Action == types.ActionRejectSuspects {
		for _, s := range file.Suspects {
			s.UpdatedAt = at
		}
	}

	entry := model.NewHistoryEntry(cmd.Action, from, next, cmd.Actor, notes, at)
	w.append(c, entry)
	return &Outcome{Entry: entry}, nil
}

func (w *Workflow) append(c *model.Case, entry model.HistoryEntry) {
	c.History = append(c.History, entry)
	c.UpdatedAt = entry.Timestamp
}

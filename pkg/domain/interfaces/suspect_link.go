package interfaces

import (
	"context"

	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// SuspectLinkRepository defines read access to the suspect set of a case and
// the collaborator path that links new suspects
type SuspectLinkRepository interface {
	// LinksForCase returns the current suspect set ordered by link time
	LinksForCase(ctx context.Context, caseID types.CaseID) ([]*model.SuspectLink, error)

	// Get retrieves one link. Returns model.ErrNotFound if absent.
	Get(ctx context.Context, caseID types.CaseID, suspectID types.SuspectID) (*model.SuspectLink, error)

	// Link attaches a suspect to a case whose stored version is still
	// caseVersion. Returns model.ErrConflict if the case moved on or the
	// suspect is already linked.
	Link(ctx context.Context, link *model.SuspectLink, caseVersion int64) (*model.SuspectLink, error)
}

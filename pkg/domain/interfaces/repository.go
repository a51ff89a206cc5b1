package interfaces

import (
	"context"

	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// Repository defines the interface for workflow state persistence
type Repository interface {
	Case() CaseRepository
	SuspectLink() SuspectLinkRepository

	// Load reads a case and its suspect links as one consistent snapshot.
	// Returns model.ErrNotFound if the case is absent.
	Load(ctx context.Context, id types.CaseID) (*model.CaseFile, error)

	// Commit atomically stores the case and the given suspect links.
	// file.Case.Version must equal the stored version, otherwise
	// model.ErrConflict is returned and nothing is written. On success the
	// stored version is file.Case.Version+1 and the committed file is returned.
	Commit(ctx context.Context, file *model.CaseFile) (*model.CaseFile, error)

	Close() error
}

package interfaces

import (
	"context"

	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// CaseRepository defines the interface for Case data access
type CaseRepository interface {
	// Create stores a new case with version 1. Returns model.ErrConflict if the ID is taken.
	Create(ctx context.Context, c *model.Case) (*model.Case, error)

	// Get retrieves a case by ID. Returns model.ErrNotFound if absent.
	Get(ctx context.Context, id types.CaseID) (*model.Case, error)

	// List retrieves cases with optional filtering
	List(ctx context.Context, opts ...ListCaseOption) ([]*model.Case, error)
}

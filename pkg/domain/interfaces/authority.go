package interfaces

import (
	"context"

	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// RoleAuthority answers whether a principal holds a capability
type RoleAuthority interface {
	Can(ctx context.Context, actor types.ActorID, capability types.Capability) (bool, error)
}

// ApprovalPolicy decides whether a new case needs superior approval before investigation
type ApprovalPolicy interface {
	RequiresApproval(ctx context.Context, creator types.ActorID, origin types.CaseOrigin) (bool, error)
}

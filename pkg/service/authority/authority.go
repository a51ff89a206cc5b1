// Package authority resolves actor capabilities and case approval rules from a role policy.
package authority

import (
	"context"

	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model/config"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// Authority implements interfaces.RoleAuthority and interfaces.ApprovalPolicy
// over a static policy. It is immutable after New and safe for concurrent use.
type Authority struct {
	grants   map[types.ActorID]map[types.Capability]struct{}
	approval config.ApprovalRule
}

var (
	_ interfaces.RoleAuthority  = (*Authority)(nil)
	_ interfaces.ApprovalPolicy = (*Authority)(nil)
)

// New builds an Authority. Actors referencing unknown roles get nothing from them.
func New(policy *config.Policy) *Authority {
	roles := make(map[string][]types.Capability, len(policy.Roles))
	for _, r := range policy.Roles {
		roles[r.ID] = r.Capabilities
	}

	grants := make(map[types.ActorID]map[types.Capability]struct{}, len(policy.Actors))
	for _, a := range policy.Actors {
		caps, ok := grants[a.ID]
		if !ok {
			caps = make(map[types.Capability]struct{})
			grants[a.ID] = caps
		}
		for _, roleID := range a.Roles {
			for _, c := range roles[roleID] {
				caps[c] = struct{}{}
			}
		}
	}

	return &Authority{
		grants: grants,
		approval: config.ApprovalRule{
			RequireForOrigins: append([]types.CaseOrigin(nil), policy.Approval.RequireForOrigins...),
		},
	}
}

// Can reports whether the actor holds the capability. Unknown actors hold nothing.
func (a *Authority) Can(_ context.Context, actor types.ActorID, capability types.Capability) (bool, error) {
	caps, ok := a.grants[actor]
	if !ok {
		return false, nil
	}
	_, ok = caps[capability]
	return ok, nil
}

// Capabilities returns the capabilities of an actor in declaration order of types.AllCapabilities
func (a *Authority) Capabilities(actor types.ActorID) []types.Capability {
	var out []types.Capability
	for _, c := range types.AllCapabilities() {
		if _, ok := a.grants[actor][c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// RequiresApproval applies the origin rule unless the creator may skip case approval.
func (a *Authority) RequiresApproval(ctx context.Context, creator types.ActorID, origin types.CaseOrigin) (bool, error) {
	if !a.approval.RequiresApproval(origin) {
		return false, nil
	}
	skip, err := a.Can(ctx, creator, types.CapabilitySkipCaseApproval)
	if err != nil {
		return false, err
	}
	return !skip, nil
}

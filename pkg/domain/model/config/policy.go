package config

import "github.com/secmon-lab/dossier/pkg/domain/types"

// Role maps a named role onto the capabilities it grants
type Role struct {
	ID           string
	Name         string
	Capabilities []types.Capability
}

// Actor assigns roles to a principal
type Actor struct {
	ID    types.ActorID
	Roles []string
}

// ApprovalRule decides whether a newly opened case starts in pending_approval
type ApprovalRule struct {
	RequireForOrigins []types.CaseOrigin
}

// Policy holds the role to capability mapping used by the role authority
type Policy struct {
	Roles    []Role
	Actors   []Actor
	Approval ApprovalRule
}

// Built-in role IDs
const (
	RoleDetective     = "detective"
	RoleSergeant      = "sergeant"
	RoleCaptain       = "captain"
	RoleChief         = "chief"
	RoleJudge         = "judge"
	RoleAdministrator = "administrator"
)

// DefaultPolicy returns the police hierarchy used when no policy file is given.
// Every built-in role also has a same-named actor for local development.
func DefaultPolicy() *Policy {
	roles := []Role{
		{
			ID:   RoleDetective,
			Name: "Detective",
			Capabilities: []types.Capability{
				types.CapabilityOpenCase,
				types.CapabilityStartInvestigation,
				types.CapabilityAttachSuspect,
				types.CapabilityIdentifySuspects,
				types.CapabilitySubmitToCaptain,
				types.CapabilityRecordDetectiveScore,
			},
		},
		{
			ID:   RoleSergeant,
			Name: "Sergeant",
			Capabilities: []types.Capability{
				types.CapabilityOpenCase,
				types.CapabilityApproveCase,
				types.CapabilityApproveSuspects,
				types.CapabilityRejectSuspects,
				types.CapabilitySubmitToCaptain,
				types.CapabilityRecordSergeantScore,
			},
		},
		{
			ID:   RoleCaptain,
			Name: "Captain",
			Capabilities: []types.Capability{
				types.CapabilityOpenCase,
				types.CapabilityApproveCase,
				types.CapabilityCaptainApprove,
				types.CapabilityRecordCaptainDecision,
			},
		},
		{
			ID:   RoleChief,
			Name: "Chief",
			Capabilities: []types.Capability{
				types.CapabilityOpenCase,
				types.CapabilityApproveCase,
				types.CapabilitySkipCaseApproval,
				types.CapabilityChiefApprove,
				types.CapabilityRecordChiefDecision,
			},
		},
		{
			ID:           RoleJudge,
			Name:         "Judge",
			Capabilities: []types.Capability{types.CapabilityRecordVerdict},
		},
		{
			ID:           RoleAdministrator,
			Name:         "Administrator",
			Capabilities: types.AllCapabilities(),
		},
	}

	actors := make([]Actor, len(roles))
	for i, r := range roles {
		actors[i] = Actor{ID: types.ActorID(r.ID), Roles: []string{r.ID}}
	}

	return &Policy{
		Roles:  roles,
		Actors: actors,
		Approval: ApprovalRule{
			RequireForOrigins: []types.CaseOrigin{types.CaseOriginCrimeScene},
		},
	}
}

// RequiresApproval reports whether cases of the origin start in pending_approval
func (r ApprovalRule) RequiresApproval(origin types.CaseOrigin) bool {
	for _, o := range r.RequireForOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

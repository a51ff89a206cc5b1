package config

import (
	"errors"
	"log/slog"
	"os"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/dossier/pkg/domain/model/config"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

var roleIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// PolicyFile represents the TOML role policy file
type PolicyFile struct {
	Roles    []RoleEntry   `toml:"role"`
	Actors   []ActorEntry  `toml:"actor"`
	Approval ApprovalEntry `toml:"approval"`
}

// RoleEntry represents a role and the capabilities it grants
type RoleEntry struct {
	ID           string   `toml:"id"`
	Name         string   `toml:"name"`
	Capabilities []string `toml:"capabilities"`
}

// ActorEntry assigns roles to an actor ID
type ActorEntry struct {
	ID    string   `toml:"id"`
	Roles []string `toml:"roles"`
}

// ApprovalEntry lists case origins that start in pending_approval
type ApprovalEntry struct {
	RequireFor []string `toml:"require_for"`
}

// Validate checks if the RoleEntry is valid
func (r *RoleEntry) Validate() error {
	if !roleIDPattern.MatchString(r.ID) {
		return goerr.Wrap(ErrInvalidRoleID, "invalid role ID", goerr.V(RoleIDKey, r.ID))
	}
	if r.Name == "" {
		return goerr.Wrap(ErrMissingName, "role name is required", goerr.V(RoleIDKey, r.ID))
	}
	for _, c := range r.Capabilities {
		if !types.Capability(c).IsValid() {
			return goerr.Wrap(ErrUnknownCapability, "role grants unknown capability",
				goerr.V(RoleIDKey, r.ID), goerr.V(CapabilityKey, c))
		}
	}
	return nil
}

// Validate checks if the PolicyFile is valid
func (p *PolicyFile) Validate() error {
	roleIDs := make(map[string]bool)
	for i, role := range p.Roles {
		if err := role.Validate(); err != nil {
			return goerr.Wrap(err, "invalid role", goerr.V(RoleIndexKey, i))
		}
		if roleIDs[role.ID] {
			return goerr.Wrap(ErrDuplicateRoleID, "duplicate role ID", goerr.V(RoleIDKey, role.ID))
		}
		roleIDs[role.ID] = true
	}

	actorIDs := make(map[string]bool)
	for _, actor := range p.Actors {
		if err := types.ActorID(actor.ID).Validate(); err != nil {
			return goerr.Wrap(err, "invalid actor ID", goerr.V(ActorIDKey, actor.ID))
		}
		if actorIDs[actor.ID] {
			return goerr.Wrap(ErrDuplicateActorID, "duplicate actor ID", goerr.V(ActorIDKey, actor.ID))
		}
		actorIDs[actor.ID] = true

		for _, r := range actor.Roles {
			if !roleIDs[r] {
				return goerr.Wrap(ErrUnknownRole, "actor references unknown role",
					goerr.V(ActorIDKey, actor.ID), goerr.V(RoleIDKey, r))
			}
		}
	}

	for _, o := range p.Approval.RequireFor {
		if !types.CaseOrigin(o).IsValid() {
			return goerr.Wrap(ErrInvalidOrigin, "invalid origin in approval rule", goerr.V(OriginKey, o))
		}
	}

	return nil
}

// ToDomainPolicy converts PolicyFile to the domain Policy
func (p *PolicyFile) ToDomainPolicy() *domainConfig.Policy {
	roles := make([]domainConfig.Role, len(p.Roles))
	for i, r := range p.Roles {
		caps := make([]types.Capability, len(r.Capabilities))
		for j, c := range r.Capabilities {
			caps[j] = types.Capability(c)
		}
		roles[i] = domainConfig.Role{
			ID:           r.ID,
			Name:         r.Name,
			Capabilities: caps,
		}
	}

	actors := make([]domainConfig.Actor, len(p.Actors))
	for i, a := range p.Actors {
		actors[i] = domainConfig.Actor{
			ID:    types.ActorID(a.ID),
			Roles: append([]string(nil), a.Roles...),
		}
	}

	origins := make([]types.CaseOrigin, len(p.Approval.RequireFor))
	for i, o := range p.Approval.RequireFor {
		origins[i] = types.CaseOrigin(o)
	}

	return &domainConfig.Policy{
		Roles:    roles,
		Actors:   actors,
		Approval: domainConfig.ApprovalRule{RequireForOrigins: origins},
	}
}

// LoadPolicyFile loads and validates a role policy from a TOML file
func LoadPolicyFile(path string) (*PolicyFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "policy file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V(ConfigPathKey, path))
	}

	var file PolicyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML policy",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "policy validation failed", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}

// Policy holds CLI flags for the role policy
type Policy struct {
	path string
}

func (x *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Aliases:     []string{"p"},
			Usage:       "Path to role policy TOML file (built-in police hierarchy when empty)",
			Category:    "Policy",
			Sources:     cli.EnvVars("DOSSIER_POLICY"),
			Destination: &x.path,
		},
	}
}

// Path returns the configured policy file path
func (x *Policy) Path() string {
	return x.path
}

func (x Policy) LogValue() slog.Value {
	if x.path == "" {
		return slog.StringValue("(default)")
	}
	return slog.StringValue(x.path)
}

// Configure returns the domain policy from the configured file, or the
// default policy when no file is set.
func (x *Policy) Configure() (*domainConfig.Policy, error) {
	if x.path == "" {
		return domainConfig.DefaultPolicy(), nil
	}

	file, err := LoadPolicyFile(x.path)
	if err != nil {
		return nil, err
	}
	return file.ToDomainPolicy(), nil
}

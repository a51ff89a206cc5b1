package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrDuplicateRoleID   = goerr.New("duplicate role ID")
	ErrDuplicateActorID  = goerr.New("duplicate actor ID")
	ErrInvalidRoleID     = goerr.New("invalid role ID format")
	ErrUnknownRole       = goerr.New("actor references unknown role")
	ErrUnknownCapability = goerr.New("unknown capability")
	ErrInvalidOrigin     = goerr.New("invalid case origin")
	ErrMissingName       = goerr.New("name is required")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	RoleIDKey     = "role_id"
	ActorIDKey    = "actor_id"
	CapabilityKey = "capability"
	OriginKey     = "origin"
	RoleIndexKey  = "role_index"
)

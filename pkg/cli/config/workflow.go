package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Workflow holds CLI flags for command processing
type Workflow struct {
	lockTimeout time.Duration
}

func (x *Workflow) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "lock-timeout",
			Usage:       "Maximum time to wait for a per-case lock before reporting busy",
			Category:    "Workflow",
			Value:       3 * time.Second,
			Sources:     cli.EnvVars("DOSSIER_LOCK_TIMEOUT"),
			Destination: &x.lockTimeout,
		},
	}
}

// LockTimeout returns the validated lock wait timeout
func (x *Workflow) LockTimeout() (time.Duration, error) {
	if x.lockTimeout <= 0 {
		return 0, goerr.Wrap(ErrInvalidConfig, "lock-timeout must be positive", goerr.V("lock_timeout", x.lockTimeout))
	}
	return x.lockTimeout, nil
}

func (x Workflow) LogValue() slog.Value {
	return slog.GroupValue(slog.Duration("lock_timeout", x.lockTimeout))
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/cli/config"
	domainConfig "github.com/secmon-lab/dossier/pkg/domain/model/config"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/service/authority"
	"github.com/secmon-lab/dossier/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var policyCfg config.Policy

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the role policy and print the capability matrix",
		Flags:   policyCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "policy validation failed")
			}

			logging.Default().Info("Policy validation passed",
				"policy", policyCfg,
				"role_count", len(policy.Roles),
				"actor_count", len(policy.Actors),
			)

			printPolicy(c.Root().Writer, policy)
			return nil
		},
	}
}

func printPolicy(w io.Writer, policy *domainConfig.Policy) {
	heading := color.New(color.Bold)
	granted := color.New(color.FgGreen)
	denied := color.New(color.FgHiBlack)

	_, _ = heading.Fprintln(w, "Roles")
	for _, role := range policy.Roles {
		_, _ = fmt.Fprintf(w, "  %s (%s)\n", role.Name, role.ID)
		grants := map[types.Capability]bool{}
		for _, c := range role.Capabilities {
			grants[c] = true
		}
		for _, c := range types.AllCapabilities() {
			if grants[c] {
				_, _ = granted.Fprintf(w, "    + %s\n", c)
			} else {
				_, _ = denied.Fprintf(w, "    - %s\n", c)
			}
		}
	}

	auth := authority.New(policy)
	_, _ = heading.Fprintln(w, "Actors")
	for _, actor := range policy.Actors {
		caps := auth.Capabilities(actor.ID)
		names := make([]string, len(caps))
		for i, c := range caps {
			names[i] = c.String()
		}
		_, _ = fmt.Fprintf(w, "  %s [%s]\n", actor.ID, strings.Join(actor.Roles, ", "))
		_, _ = granted.Fprintf(w, "    %s\n", strings.Join(names, ", "))
	}

	_, _ = heading.Fprintln(w, "Approval")
	if len(policy.Approval.RequireForOrigins) == 0 {
		_, _ = fmt.Fprintln(w, "  no origin requires approval")
		return
	}
	for _, o := range policy.Approval.RequireForOrigins {
		_, _ = fmt.Fprintf(w, "  %s cases start in pending_approval\n", o)
	}
}

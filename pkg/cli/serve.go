package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/cli/config"
	httpctrl "github.com/secmon-lab/dossier/pkg/controller/http"
	"github.com/secmon-lab/dossier/pkg/service/authority"
	"github.com/secmon-lab/dossier/pkg/usecase"
	"github.com/secmon-lab/dossier/pkg/utils/logging"
	"github.com/secmon-lab/dossier/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var policyCfg config.Policy
	var repoCfg config.Repository
	var workflowCfg config.Workflow

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DOSSIER_ADDR"),
			Destination: &addr,
		},
	}

	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, workflowCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load policy")
			}

			lockTimeout, err := workflowCfg.LockTimeout()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			logging.Default().Info("Configuration loaded",
				"policy", policyCfg,
				"repository", repoCfg,
				"workflow", workflowCfg,
			)

			auth := authority.New(policy)
			uc := usecase.New(repo,
				usecase.WithAuthority(auth),
				usecase.WithApprovalPolicy(auth),
				usecase.WithLockTimeout(lockTimeout),
			)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Workflow),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logging.Default().Info("Context canceled, shutting down")
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}

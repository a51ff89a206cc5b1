package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/dossier/pkg/cli"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestRun_ValidateCommand_DefaultPolicy(t *testing.T) {
	err := cli.Run(context.Background(), []string{"dossier", "validate"}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_ValidPolicy(t *testing.T) {
	path := writePolicy(t, `
[[role]]
id = "detective"
name = "Detective"
capabilities = ["open_case", "start_investigation"]

[[actor]]
id = "alice"
roles = ["detective"]
`)

	err := cli.Run(context.Background(), []string{"dossier", "validate", "--policy", path}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_InvalidPolicy(t *testing.T) {
	path := writePolicy(t, `
[[role]]
id = "detective"
name = "Detective"
capabilities = ["bribe_the_judge"]
`)

	err := cli.Run(context.Background(), []string{"dossier", "validate", "--policy", path}, "test")
	gt.Error(t, err)
}

func TestRun_ValidateCommand_MissingPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	err := cli.Run(context.Background(), []string{"dossier", "validate", "--policy", path}, "test")
	gt.Error(t, err)
}

func TestRun_ServeCommand_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := cli.Run(ctx, []string{"dossier", "serve", "--addr", "127.0.0.1:0"}, "test")
	gt.NoError(t, err)
}

func TestRun_ServeCommand_InvalidBackend(t *testing.T) {
	err := cli.Run(context.Background(), []string{"dossier", "serve", "--repository-backend", "postgres"}, "test")
	gt.Error(t, err)
}

func TestRun_ServeCommand_InvalidLockTimeout(t *testing.T) {
	err := cli.Run(context.Background(), []string{"dossier", "serve", "--lock-timeout", "soon"}, "test")
	gt.Error(t, err)
}

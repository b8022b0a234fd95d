package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/cli"
	"github.com/born-ml/minigrad/internal/nn"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := cli.Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "want *cli.ExitError, got %T: %v", err, err)
	assert.Equal(t, code, exitErr.Code)
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "minigrad "+cli.Version+"\n", stdout)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"serve"}},
		{"unknown flag", []string{"train", "-epochs", "3"}},
		{"extra argument", []string{"graph", "extra"}},
		{"bad log level", []string{"train", "-log-level", "loud"}},
		{"bad log format", []string{"train", "-log-format", "xml"}},
		{"bad sweep", []string{"train", "-sweep", "0"}},
		{"bad workers", []string{"train", "-workers", "0"}},
		{"bad rankdir", []string{"graph", "-rankdir", "UP"}},
		{"bad float", []string{"graph", "-x", "four"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			requireExitCode(t, err, cli.ExitUsage)
		})
	}
}

func TestRun_Help(t *testing.T) {
	stdout, _, err := run(t, "help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Commands:")

	_, stderr, err := run(t, "train", "-h")
	require.NoError(t, err)
	assert.Contains(t, stderr, "-config")
}

func TestRun_Graph(t *testing.T) {
	stdout, _, err := run(t, "graph")
	require.NoError(t, err)

	assert.Contains(t, stdout, "digraph minigrad {")
	assert.Contains(t, stdout, "rankdir=LR")
	assert.Contains(t, stdout, "data=-20.0000 | grad=1.0000")
	assert.Contains(t, stdout, "data=-4.0000 | grad=46.0000")
}

func TestRun_GraphToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.dot")

	stdout, _, err := run(t, "graph", "-x", "-4", "-rankdir", "TB", "-out", path)
	require.NoError(t, err)
	assert.Equal(t, "y=-20 dy/dx=46\n", stdout)

	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "rankdir=TB")
}

func TestRun_GraphBadPath(t *testing.T) {
	_, _, err := run(t, "graph", "-out", filepath.Join(t.TempDir(), "missing", "expr.dot"))
	requireExitCode(t, err, cli.ExitFailure)
}

func TestReferenceExpression(t *testing.T) {
	x, y := cli.ReferenceExpression(-4)
	y.Backward()

	assert.InDelta(t, -20.0, y.Data(), 1e-12)
	assert.InDelta(t, 46.0, x.Grad(), 1e-12)
}

func TestRun_TrainDefaults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "xor.safetensors")

	stdout, stderr, err := run(t, "train", "-out", out, "-log-format", "json")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "seed=1 steps=50 "), stdout)
	assert.Contains(t, stderr, `"msg":"Training finished."`)
	assert.Contains(t, stderr, `"msg":"Saved model."`)

	model, metadata, err := nn.LoadMLP(out)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 4, 1}, model.Sizes())
	assert.Equal(t, "1", metadata["seed"])
	assert.Equal(t, "sgd", metadata["optimizer"])
}

func TestRun_TrainSweepConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "train.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(`
model {
  sizes = [2, 3, 1]
  seed  = 10
}

training {
  steps     = 5
  log_every = 1
}
`), 0o600))

	stdout, stderr, err := run(t, "train", "-config", configPath, "-sweep", "3", "-workers", "2", "-log-level", "warn")
	require.NoError(t, err)

	assert.Contains(t, stdout, "steps=5 ")
	assert.Regexp(t, `^seed=1[012] `, stdout)
	assert.Empty(t, stderr)
}

func TestRun_TrainBadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "train.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(`training { steps = 0 }`), 0o600))

	_, _, err := run(t, "train", "-config", configPath)
	requireExitCode(t, err, cli.ExitFailure)
	assert.Contains(t, err.Error(), "training.steps")
}

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	return out.String()
}

func TestTreeCommand(t *testing.T) {
	out := execute(t, "tree", "-f", "testdata/chain.yaml")
	assert.Equal(t, "B,C (1)\n  A : B (2)\n", out)
}

func TestEliminateGaussian(t *testing.T) {
	out := execute(t, "eliminate", "-f", "testdata/chain.yaml", "--workers", "1")
	assert.Contains(t, out, "A: [1]\n")
	assert.Contains(t, out, "B: [3]\n")
	assert.Contains(t, out, "C: [6]\n")
}

func TestEliminateDiscreteWithMetrics(t *testing.T) {
	out := execute(t, "eliminate", "-f", "testdata/sprinkler.yaml", "-g", "variable", "--metrics")
	assert.Contains(t, out, "junctree_cliques_eliminated_total")
	assert.Contains(t, out, `result="ok"`)
}

func TestEliminateBadGranularity(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"eliminate", "-f", "testdata/chain.yaml", "-g", "bogus"})
	assert.Error(t, cmd.Execute())
}

func TestMissingFile(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"tree", "-f", "testdata/nope.yaml"})
	assert.Error(t, cmd.Execute())
}

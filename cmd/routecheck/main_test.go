package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const smallInstance = "../../instance/testdata/small.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeRoutes(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "--instance", smallInstance)
	require.NoError(t, err)
	require.Contains(t, out, `instance "small": 9 nodes, 2 vehicles, 1 classes`)
}

func TestCheckFeasibleRoutes(t *testing.T) {
	routes := writeRoutes(t, "routes:\n  - [0, 4, 5, 1]\n  - [2, 3]\n")
	out, err := execute(t, "check", "-i", smallInstance, "-r", routes)
	require.NoError(t, err)
	require.Contains(t, out, "vehicle 0: [0 4 5 1]")
	require.Contains(t, out, "energy 63\npenalty 180\nobjective 243\n")
}

func TestCheckRejectsOverload(t *testing.T) {
	routes := writeRoutes(t, "routes:\n  - [0, 4, 5, 8, 1]\n  - [2, 3]\n")
	out, err := execute(t, "check", "-i", smallInstance, "-r", routes)
	require.Error(t, err)
	require.Contains(t, out, "rejected by load")
}

func TestCheckMalformedRoutes(t *testing.T) {
	for _, body := range []string{
		"routes:\n  - [0, 4, 1]\n",
		"routes:\n  - [4, 1]\n  - [2, 3]\n",
		"routes:\n  - [0, 4, 1]\n  - [2, 4, 3]\n",
	} {
		_, err := execute(t, "check", "-i", smallInstance, "-r", writeRoutes(t, body))
		require.Error(t, err, body)
	}
}

func TestSolve(t *testing.T) {
	out, err := execute(t, "solve", "-i", smallInstance, "--iterations", "2000", "--workers", "2", "--seed", "3")
	require.NoError(t, err)
	require.Contains(t, out, "vehicle 1:")
	require.Contains(t, out, "objective ")
}

func TestMissingInstance(t *testing.T) {
	_, err := execute(t, "validate")
	require.Error(t, err)
}

func TestPrintSolutionSaturates(t *testing.T) {
	var out bytes.Buffer
	printSolution(&out, [][]int{{0, 1}}, math.MaxInt64-5, 10)
	require.Equal(t, "vehicle 0: [0 1]\nenergy 9223372036854775802\npenalty 10\nobjective 9223372036854775807\n", out.String())
}

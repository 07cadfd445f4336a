package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bdiff/autodiff"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// table parses eval output into rows of numbers, skipping the header.
func table(t *testing.T, out string) [][]float64 {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	var rows [][]float64
	for _, line := range lines[1:] {
		var row []float64
		for _, field := range strings.Fields(line) {
			v, err := strconv.ParseFloat(field, 64)
			require.NoError(t, err)
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bdiff "+version+"\n", out)
}

func TestEval_NestedSin(t *testing.T) {
	out, err := execute(t, "eval", "--func", "sin", "--at", "0.5", "--order", "7", "--nest", "2")
	require.NoError(t, err)

	rows := table(t, out)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 9)

	want := composeSin(0.5, 7)
	assert.Equal(t, 0.5, rows[0][0])
	for n, w := range want {
		assert.InDelta(t, w, rows[0][n+1], 1e-8*math.Max(1, math.Abs(w)), "order %d", n)
	}
}

func TestEval_ManyPoints(t *testing.T) {
	out, err := execute(t, "eval", "--func", "exp", "--at", "0,1,2,-1", "-n", "2", "--workers", "3")
	require.NoError(t, err)

	rows := table(t, out)
	require.Len(t, rows, 4)
	for i, x := range []float64{0, 1, 2, -1} {
		assert.Equal(t, x, rows[i][0], "rows keep the order of --at")
		for n := 1; n <= 3; n++ {
			assert.InDelta(t, math.Exp(x), rows[i][n], 1e-8*math.Exp(x))
		}
	}
}

func TestEval_Errors(t *testing.T) {
	_, err := execute(t, "eval", "--func", "softmax")
	assert.ErrorContains(t, err, "unknown function")

	_, err = execute(t, "eval", "--func", "pow")
	assert.ErrorContains(t, err, "unknown function")

	_, err = execute(t, "eval", "--nest", "0")
	assert.ErrorContains(t, err, "--nest")

	_, err = execute(t, "eval", "--order", "0")
	assert.ErrorIs(t, err, autodiff.ErrZeroOrder)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check")
	require.NoError(t, err)

	for _, sc := range scenarios {
		assert.Contains(t, out, "PASS  "+sc.name)
	}
	assert.NotContains(t, out, "FAIL")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("order: 2\nworkers: 1\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config{Order: 2, Workers: 1}, cfg)

	out, err := execute(t, "--config", path, "eval", "--func", "log", "--at", "0.5")
	require.NoError(t, err)
	rows := table(t, out)
	require.Len(t, rows[0], 4, "x and orders 0..2")
	assert.InDelta(t, -4, rows[0][3], 1e-9)

	// flags override the file
	out, err = execute(t, "--config", path, "eval", "--func", "log", "--at", "0.5", "--order", "3")
	require.NoError(t, err)
	rows = table(t, out)
	require.Len(t, rows[0], 5)
	assert.InDelta(t, 16, rows[0][4], 1e-9)
}

func TestConfigFile_Errors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("order: [1"), 0o600))
	_, err = loadConfig(path)
	assert.ErrorContains(t, err, "parse config")

	neg := filepath.Join(t.TempDir(), "neg.yaml")
	require.NoError(t, os.WriteFile(neg, []byte("workers: -2\n"), 0o600))
	_, err = execute(t, "--config", neg, "check")
	assert.ErrorContains(t, err, "workers")
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/zplot"
	"github.com/gogpu/zplot/config"
	"github.com/gogpu/zplot/expr"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { zplot.SetLogger(nil) })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParse(t *testing.T) {
	out, _, err := run(t, "parse", "z = x / 2 * y")
	require.NoError(t, err)
	assert.Equal(t, "((x / 2) * y)\n", out)
}

func TestParse_Error(t *testing.T) {
	_, _, err := run(t, "parse", "x +")
	var pe *expr.ParseError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, expr.ErrUnexpectedToken)
	assert.Equal(t, "+", pe.Token)
}

func TestSample_Text(t *testing.T) {
	out, _, err := run(t, "sample", "--formula", "x * x / 10", "--format", "text")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	// x*x/10 never leaves the visual cube, so the whole 21x21 lattice survives.
	require.Len(t, lines, 21*21)
	assert.Equal(t, "-10 -10 10", lines[0])
	assert.Equal(t, "10 10 10", lines[len(lines)-1])
}

func TestSample_BinaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.bin")
	_, _, err := run(t, "sample", "-f", "x * x / 10", "-z", "2", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 21*21*3*4)

	vals := make([]float32, len(data)/4)
	require.NoError(t, binary.Read(bytes.NewReader(data), binary.LittleEndian, vals))
	// Zoom 2 halves the domain and doubles emitted coordinates.
	assert.Equal(t, []float32{-10, -10, 5}, vals[:3])
}

func TestSample_Profile(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(`
formula: x * x / 10
sampling:
  matrix: [1, 0, 0, 0, 0, 1, 0, 0, 0, 0.5, 1, 0, 0, 0, 0, 1]
  tolerance: 0
  max_depth: 2
  min_step: 0.01
`), 0o600))
	out := filepath.Join(dir, "grid.bin")

	_, _, err := run(t, "sample", "--config", profile, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	// Zero tolerance refines every quad to depth 2: 2*4^2 triangles.
	assert.Len(t, data, 2*16*3*3*4)
}

func TestSample_Logging(t *testing.T) {
	_, stderr, err := run(t, "--log-level", "debug", "sample", "-f", "x", "-o", filepath.Join(t.TempDir(), "g.bin"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "zplot: fixed grid computed")
	assert.Contains(t, stderr, "zplot: grid written")
}

func TestSample_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"bad format", []string{"sample", "--format", "png"}, nil},
		{"zero zoom", []string{"sample", "--zoom", "0"}, config.ErrInvalid},
		{"bad formula", []string{"sample", "--formula", "x ^ y"}, config.ErrInvalid},
		{"missing profile", []string{"sample", "--config", "does-not-exist.yaml"}, os.ErrNotExist},
		{"bad log level", []string{"--log-level", "loud", "sample"}, nil},
		{"stray args", []string{"sample", "extra"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}
	bowl := write("bowl.yaml", "formula: x * x / 10\n")
	zoomed := write("zoomed.yaml", "formula: x * x / 10\nzoom: 2\n")
	tilted := write("tilted.yml", `
formula: x * x / 10
sampling:
  matrix: [1, 0, 0, 0, 0, 1, 0, 0, 0, 0.5, 1, 0, 0, 0, 0, 1]
  tolerance: 0
  max_depth: 1
  min_step: 0.01
`)
	outDir := filepath.Join(dir, "out")

	// One worker keeps the cache hit count deterministic.
	_, stderr, err := run(t, "--log-level", "info", "batch", "-d", outDir, "-w", "1", bowl, zoomed, tilted)
	require.NoError(t, err)
	assert.Contains(t, stderr, "parse_hits=2")

	sizes := map[string]int{
		"bowl.bin":   21 * 21 * 3 * 4,
		"zoomed.bin": 21 * 21 * 3 * 4,
		"tilted.bin": 2 * 4 * 3 * 3 * 4,
	}
	for name, want := range sizes {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Len(t, data, want, name)
	}
}

func TestBatch_ReportsEveryFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("formula: x\n"), 0o600))
	missing := filepath.Join(dir, "missing.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("formula: x ^ y\n"), 0o600))

	_, _, err := run(t, "batch", "--out-dir", dir, missing, good, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.FileExists(t, filepath.Join(dir, "good.bin"))
}

func TestBatch_DuplicateOutputs(t *testing.T) {
	_, _, err := run(t, "batch", "a/p.yaml", "b/p.yaml")
	assert.ErrorContains(t, err, "both write p.bin")
}

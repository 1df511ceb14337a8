package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/zplot"
	"github.com/gogpu/zplot/expr"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, adaptive, err := cfg.SamplingContext()
	require.NoError(t, err)
	assert.False(t, adaptive)
}

func TestLoad_MatrixProfile(t *testing.T) {
	path := writeProfile(t, `
formula: "z = x * x / 10"
zoom: 2
sampling:
  matrix: [1, 0, 0, 0, 0, 1, 0, 0, 0, 0.5, 1, 0, 0, 0, 0, 1]
  tolerance: 0.1
  max_depth: 4
  min_step: 0.01
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "z = x * x / 10", cfg.Formula)
	assert.Equal(t, 2.0, cfg.Zoom)

	ctx, adaptive, err := cfg.SamplingContext()
	require.NoError(t, err)
	require.True(t, adaptive)
	assert.Equal(t, 0.1, ctx.Tolerance)
	assert.Equal(t, zplot.SubdivisionLimits{MaxDepth: 4, MinStep: 0.01}, ctx.Limits)

	m, ok := ctx.Projection.Matrix()
	require.True(t, ok)
	assert.Equal(t, 0.5, m[9]) // row 1, column 2
}

func TestLoad_CameraProfile(t *testing.T) {
	path := writeProfile(t, `
formula: x * y / 10
sampling:
  camera:
    yaw_deg: 30
    pitch_deg: 20
    distance: 40
    fov_y_deg: 45
    aspect: 1.5
    near: 0.1
    far: 500
  tolerance: 0.002
  max_depth: 5
  min_step: 0.01
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	ctx, adaptive, err := cfg.SamplingContext()
	require.NoError(t, err)
	require.True(t, adaptive)

	// The camera looks at the origin, which must land at screen centre.
	p := ctx.Projection.Project(zplot.V3(0, 0, 0))
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)

	eng := zplot.NewEngine(zplot.WithFormula(cfg.Formula), zplot.WithSamplingContext(ctx))
	g := eng.ComputeGrid()
	assert.True(t, g.Adaptive())
	assert.Greater(t, g.PrimitiveCount(), 2, "a saddle seen in perspective should refine")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing formula", "formula: \"\"\nzoom: 1\n"},
		{"bad formula", "formula: \"x + y\"\n"},
		{"zero zoom", "formula: x\nzoom: 0\n"},
		{"negative step", "formula: x\nstep: -1\n"},
		{"step too fine", "formula: x\nstep: 1e-300\n"},
		{"short matrix", "formula: x\nsampling:\n  matrix: [1, 2, 3]\n  min_step: 0.1\n"},
		{"negative tolerance", "formula: x\nsampling:\n  tolerance: -1\n  min_step: 0.1\n"},
		{"depth too large", "formula: x\nsampling:\n  max_depth: 40\n  min_step: 0.1\n"},
		{"zero min step", "formula: x\nsampling:\n  tolerance: 1\n"},
		{"camera far before near", "formula: x\nsampling:\n  min_step: 0.1\n  camera:\n    distance: 10\n    fov_y_deg: 45\n    aspect: 1\n    near: 10\n    far: 1\n"},
		{"camera pitch at pole", "formula: x\nsampling:\n  min_step: 0.1\n  camera:\n    pitch_deg: 90\n    distance: 10\n    fov_y_deg: 45\n    aspect: 1\n    near: 0.1\n    far: 100\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProfile(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "error %v should wrap ErrInvalid", err)
		})
	}
}

func TestLoad_BadFormulaExposesParseError(t *testing.T) {
	_, err := Load(writeProfile(t, "formula: \"x ^ 2\"\n"))
	var pe *expr.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "^", pe.Token)
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeProfile(t, "formula: [unterminated\n"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ZPLOT_FORMULA", "x / 10")
	t.Setenv("ZPLOT_ZOOM", "4")
	t.Setenv("ZPLOT_TOLERANCE", "0.5")
	t.Setenv("ZPLOT_MAX_DEPTH", "3")

	cfg, err := Load(writeProfile(t, "formula: x * y\nzoom: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "x / 10", cfg.Formula)
	assert.Equal(t, 4.0, cfg.Zoom)
	require.NotNil(t, cfg.Sampling)
	assert.Equal(t, 0.5, cfg.Sampling.Tolerance)
	assert.Equal(t, 3, cfg.Sampling.MaxDepth)
	assert.Equal(t, 0.01, cfg.Sampling.MinStep)
}

func TestLoad_EnvParseErrors(t *testing.T) {
	for _, name := range []string{"ZPLOT_ZOOM", "ZPLOT_STEP", "ZPLOT_TOLERANCE", "ZPLOT_MIN_STEP", "ZPLOT_MAX_DEPTH"} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, "not-a-number")
			_, err := Load("")
			assert.ErrorContains(t, err, name)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Formula = "x / 10"
	cfg.Step = 5
	cam := DefaultCamera()
	cfg.Sampling = &SamplingConfig{Camera: &cam, Tolerance: 0.1, MaxDepth: 2, MinStep: 0.01}
	require.NoError(t, cfg.Validate())

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)

	eng := zplot.NewEngine(opts...)
	assert.Equal(t, "(x / 10)", eng.Expression().String())
	assert.Equal(t, 5.0, eng.Space().Step)
	_, adaptive := eng.SamplingContext()
	assert.True(t, adaptive)
}

// Package config loads sampling session profiles.
//
// A profile names the formula, zoom and lattice step, and optionally how
// the surface will be viewed: either an explicit column-major matrix or an
// orbit camera from which the view-projection is derived. Values are read
// from YAML, then overridden from ZPLOT_* environment variables, then
// validated.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/zplot"
	"github.com/gogpu/zplot/expr"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid profile")

// Config is one sampling session profile.
type Config struct {
	// Formula is the surface, e.g. "z = x * y".
	Formula string `yaml:"formula" validate:"required"`

	// Zoom is applied once as a scale factor on a fresh engine.
	Zoom float64 `yaml:"zoom" validate:"gt=0"`

	// Step overrides the fixed-grid lattice step. Zero keeps the default
	// resolution.
	Step float64 `yaml:"step" validate:"gte=0"`

	// Sampling enables adaptive mode. Nil selects the fixed grid.
	Sampling *SamplingConfig `yaml:"sampling"`
}

// SamplingConfig describes the adaptive sampling context.
type SamplingConfig struct {
	// Matrix is a column-major view-projection. It takes precedence over
	// Camera. With neither set the projection is top-down.
	Matrix []float64 `yaml:"matrix" validate:"omitempty,len=16"`

	Camera *CameraConfig `yaml:"camera"`

	Tolerance float64 `yaml:"tolerance" validate:"gte=0"`
	MaxDepth  int     `yaml:"max_depth" validate:"gte=0,lte=16"`
	MinStep   float64 `yaml:"min_step" validate:"gt=0"`
}

// CameraConfig is an orbit camera looking at the origin.
type CameraConfig struct {
	YawDeg   float64 `yaml:"yaw_deg"`
	PitchDeg float64 `yaml:"pitch_deg" validate:"gte=-89,lte=89"`
	Distance float64 `yaml:"distance" validate:"gt=0"`
	FovYDeg  float64 `yaml:"fov_y_deg" validate:"gt=0,lt=180"`
	Aspect   float64 `yaml:"aspect" validate:"gt=0"`
	Near     float64 `yaml:"near" validate:"gt=0"`
	Far      float64 `yaml:"far" validate:"gtfield=Near"`
}

// validate is shared by all profiles. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the profile used when no file is given: "x * y" at
// zoom 1 in fixed-grid mode.
func Default() Config {
	return Config{
		Formula: "x * y",
		Zoom:    1,
	}
}

// DefaultCamera returns an orbit camera that frames the visual cube.
func DefaultCamera() CameraConfig {
	return CameraConfig{
		YawDeg:   45,
		PitchDeg: 30,
		Distance: 40,
		FovYDeg:  45,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000,
	}
}

// Load reads a profile with priority env > file > defaults.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from ZPLOT_* variables. Sampling overrides
// create a sampling section when the profile has none.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("ZPLOT_FORMULA"); v != "" {
		cfg.Formula = v
	}
	if err := envFloat("ZPLOT_ZOOM", &cfg.Zoom); err != nil {
		return err
	}
	if err := envFloat("ZPLOT_STEP", &cfg.Step); err != nil {
		return err
	}

	sampling := cfg.Sampling
	if sampling == nil {
		sampling = &SamplingConfig{Tolerance: 0.05, MaxDepth: 6, MinStep: 0.01}
	}
	touched := false
	for _, o := range []struct {
		name string
		dst  *float64
	}{
		{"ZPLOT_TOLERANCE", &sampling.Tolerance},
		{"ZPLOT_MIN_STEP", &sampling.MinStep},
	} {
		if os.Getenv(o.name) == "" {
			continue
		}
		if err := envFloat(o.name, o.dst); err != nil {
			return err
		}
		touched = true
	}
	if v := os.Getenv("ZPLOT_MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: ZPLOT_MAX_DEPTH: %w", err)
		}
		sampling.MaxDepth = n
		touched = true
	}
	if touched {
		cfg.Sampling = sampling
	}
	return nil
}

func envFloat(name string, dst *float64) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	*dst = f
	return nil
}

// Validate checks field constraints. Failures wrap ErrInvalid.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, v := range []float64{c.Zoom, c.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %v", ErrInvalid, v)
		}
	}
	if c.Step > 0 && 2*zplot.BaseRange/c.Zoom/c.Step >= zplot.MaxLatticeLines {
		return fmt.Errorf("%w: step %v is too fine at zoom %v", ErrInvalid, c.Step, c.Zoom)
	}
	if _, err := expr.Parse(c.Formula); err != nil {
		return fmt.Errorf("%w: formula: %w", ErrInvalid, err)
	}
	return nil
}

// SamplingContext builds the engine sampling context, or returns false
// when the profile selects the fixed grid.
func (c Config) SamplingContext() (zplot.SamplingContext, bool, error) {
	s := c.Sampling
	if s == nil {
		return zplot.SamplingContext{}, false, nil
	}

	proj := zplot.NoProjection()
	switch {
	case len(s.Matrix) > 0:
		m, err := zplot.Mat4FromSlice(s.Matrix)
		if err != nil {
			return zplot.SamplingContext{}, false, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		proj = zplot.MatrixProjection(m)
	case s.Camera != nil:
		proj = zplot.MatrixProjection(s.Camera.ViewProjection())
	}

	return zplot.SamplingContext{
		Projection: proj,
		Tolerance:  s.Tolerance,
		Limits: zplot.SubdivisionLimits{
			MaxDepth: s.MaxDepth,
			MinStep:  s.MinStep,
		},
	}, true, nil
}

// ViewProjection returns the combined column-major view-projection of the
// orbit camera, with z up.
func (c CameraConfig) ViewProjection() zplot.Mat4 {
	yaw := c.YawDeg * math.Pi / 180
	pitch := c.PitchDeg * math.Pi / 180
	eye := zplot.V3(
		c.Distance*math.Cos(pitch)*math.Cos(yaw),
		c.Distance*math.Cos(pitch)*math.Sin(yaw),
		c.Distance*math.Sin(pitch),
	)
	view := zplot.LookAt(eye, zplot.V3(0, 0, 0), zplot.V3(0, 0, 1))
	proj := zplot.Perspective(c.FovYDeg*math.Pi/180, c.Aspect, c.Near, c.Far)
	return proj.Mul(view)
}

// EngineOptions returns the engine options the profile describes.
// The zoom is not an option: callers apply it with UpdateScale so that it
// is validated like any other scale change.
func (c Config) EngineOptions() ([]zplot.EngineOption, error) {
	opts := []zplot.EngineOption{zplot.WithFormula(c.Formula)}
	if c.Step > 0 {
		opts = append(opts, zplot.WithStep(c.Step))
	}
	ctx, ok, err := c.SamplingContext()
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, zplot.WithSamplingContext(ctx))
	}
	return opts, nil
}

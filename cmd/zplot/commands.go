package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/zplot"
	"github.com/gogpu/zplot/config"
	"github.com/gogpu/zplot/expr"
	"github.com/gogpu/zplot/service"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "zplot",
		Short:         "Sample surfaces z = f(x, y) into GPU vertex buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log to stderr at this level (debug, info, warn, error); empty disables logging")

	root.AddCommand(newSampleCmd(), newBatchCmd(), newParseCmd())
	return root
}

// setupLogging installs a text handler on stderr. The library stays silent
// when no level is given.
func setupLogging(cmd *cobra.Command, level string) error {
	if level == "" {
		zplot.SetLogger(nil)
		return nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	zplot.SetLogger(slog.New(h))
	return nil
}

type sampleFlags struct {
	config  string
	formula string
	zoom    float64
	out     string
	format  string
}

func newSampleCmd() *cobra.Command {
	var f sampleFlags

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Compute one grid and write it out",
		Long: `Sample loads a profile, applies flag overrides, computes the grid and
writes it as little-endian float32 triples (bin) or one "x y z" line per
vertex (text). In adaptive mode triangle vertices come first, followed by
the forced-leaf points.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "YAML profile (default: built-in profile)")
	cmd.Flags().StringVarP(&f.formula, "formula", "f", "", "formula, overrides the profile")
	cmd.Flags().Float64VarP(&f.zoom, "zoom", "z", 1, "zoom factor, overrides the profile")
	cmd.Flags().StringVarP(&f.out, "out", "o", "-", `output file, "-" for stdout`)
	cmd.Flags().StringVar(&f.format, "format", formatBinary, "output format (bin, text)")
	return cmd
}

func runSample(cmd *cobra.Command, f sampleFlags) error {
	if f.format != formatBinary && f.format != formatText {
		return fmt.Errorf("unknown format %q", f.format)
	}

	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("formula") {
		cfg.Formula = f.formula
	}
	if cmd.Flags().Changed("zoom") {
		cfg.Zoom = f.zoom
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	upd, err := sampleProfile(cfg)
	if err != nil {
		return err
	}

	if f.out == "-" {
		err = writeGrid(cmd.OutOrStdout(), upd.Grid, f.format)
	} else {
		err = writeGridFile(f.out, upd.Grid, f.format)
	}
	if err != nil {
		return fmt.Errorf("write grid: %w", err)
	}

	zplot.Logger().Info("zplot: grid written",
		"out", f.out,
		"format", f.format,
		"adaptive", upd.Grid.Adaptive(),
		"vertices", upd.Grid.VertexCount(),
		"points", len(upd.Grid.Points)/3)
	return nil
}

// sampleProfile runs one session: a fresh service configured from cfg,
// with the profile zoom applied as a scale change.
func sampleProfile(cfg config.Config, extra ...zplot.EngineOption) (*service.GridUpdated, error) {
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	svc := service.New(service.WithEngineOptions(append(opts, extra...)...))
	if cfg.Zoom == 1 {
		return svc.Recompute(), nil
	}
	return svc.Handle(service.ScaleChanged{Factor: cfg.Zoom})
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FORMULA",
		Short: "Parse a formula and print its fully parenthesized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := expr.Parse(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), e.String())
			return err
		},
	}
}

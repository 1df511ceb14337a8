package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/zplot"
	"github.com/gogpu/zplot/config"
	"github.com/gogpu/zplot/expr"
	"github.com/gogpu/zplot/internal/parallel"
)

type batchFlags struct {
	outDir  string
	format  string
	workers int
}

func newBatchCmd() *cobra.Command {
	var f batchFlags

	cmd := &cobra.Command{
		Use:   "batch PROFILE...",
		Short: "Sample several profiles concurrently",
		Long: `Batch runs one independent session per profile on a pool of workers
and writes each grid to OUT-DIR/<profile name>.bin (or .txt). Sessions share
a parse cache, so profiles with the same formula parse it once. A failing
profile does not stop the others; all failures are reported together.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args, f)
		},
	}
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "d", ".", "directory for the output files")
	cmd.Flags().StringVar(&f.format, "format", formatBinary, "output format (bin, text)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "concurrent sessions (default GOMAXPROCS)")
	return cmd
}

func outputName(profile, format string) string {
	ext := ".bin"
	if format == formatText {
		ext = ".txt"
	}
	return strings.TrimSuffix(filepath.Base(profile), filepath.Ext(profile)) + ext
}

func runBatch(profiles []string, f batchFlags) error {
	if f.format != formatBinary && f.format != formatText {
		return fmt.Errorf("unknown format %q", f.format)
	}

	outs := make([]string, len(profiles))
	seen := make(map[string]string, len(profiles))
	for i, p := range profiles {
		name := outputName(p, f.format)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("profiles %s and %s both write %s", prev, p, name)
		}
		seen[name] = p
		outs[i] = filepath.Join(f.outDir, name)
	}
	if err := os.MkdirAll(f.outDir, 0o755); err != nil {
		return err
	}

	pool := parallel.NewPool(f.workers)
	defer pool.Close()
	parses := expr.NewCache(len(profiles))

	errs := make([]error, len(profiles))
	tasks := make([]func(), len(profiles))
	for i, p := range profiles {
		tasks[i] = func() {
			if err := sampleOne(p, outs[i], f.format, parses); err != nil {
				errs[i] = fmt.Errorf("%s: %w", p, err)
			}
		}
	}
	pool.Run(tasks)

	st := parses.Stats()
	zplot.Logger().Info("zplot: batch finished",
		"profiles", len(profiles),
		"workers", pool.Workers(),
		"parse_hits", st.Hits,
		"parse_misses", st.Misses)
	return errors.Join(errs...)
}

func sampleOne(profile, out, format string, parses *expr.Cache) error {
	cfg, err := config.Load(profile)
	if err != nil {
		return err
	}
	upd, err := sampleProfile(cfg, zplot.WithParseCache(parses))
	if err != nil {
		return err
	}
	if err := writeGridFile(out, upd.Grid, format); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	zplot.Logger().Debug("zplot: grid written",
		"profile", profile,
		"out", out,
		"adaptive", upd.Grid.Adaptive(),
		"vertices", upd.Grid.VertexCount())
	return nil
}

// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/finmatrix/converters"
	"github.com/katalvlaran/finmatrix/formula"
	"github.com/katalvlaran/finmatrix/watch"
)

var (
	outputPath string
	plain      bool
	debounce   time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the styled matrix",
	RunE:  runRender,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the matrix to an XLSX workbook",
	RunE:  runExport,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report formula parse errors and dependency cycles",
	Long: `check builds the model and inspects every calc-row formula. It exits
non-zero when a formula fails to parse; cycles are reported but tolerated
because evaluation is capped.`,
	RunE: runCheck,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render whenever the settings, data or documents change",
	RunE:  runWatch,
}

func terminalOptions(title string) []converters.TerminalOption {
	opts := []converters.TerminalOption{converters.WithTitle(title)}
	if plain {
		opts = append(opts, converters.WithPlain())
	}

	return opts
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	res, err := rebuild(ctx, configPath)
	if err != nil {
		return err
	}

	return converters.RenderTerminal(cmd.OutOrStdout(), res.grid(), terminalOptions(filepath.Base(configPath))...)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	res, err := rebuild(ctx, configPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	if err := converters.ExportXLSX(f, res.grid()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing workbook: %w", err)
	}
	logger.Info("workbook written", zap.String("path", outputPath), zap.Int("rows", len(res.model.Rows)))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputPath)

	return nil
}

// errFormulas is returned by check when a formula does not parse.
var errFormulas = errors.New("formulas failed to parse")

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	res, err := rebuild(ctx, configPath)
	if err != nil {
		return err
	}
	engine := formula.NewEngine(formula.WithLogger(logger))
	report, err := engine.Inspect(ctx, res.model.Forest)
	if err != nil {
		return err
	}

	// Formulas naming rows the model never built are checked on their own.
	detached := make(map[string]string)
	for code, src := range res.settings.Formulas {
		if !res.model.Forest.Has(code) {
			detached[code] = src
		}
	}
	extra, err := engine.Check(ctx, detached)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeReport(out, report)
	for _, code := range sortedKeys(detached) {
		fmt.Fprintf(out, "unused %s: no such row\n", code)
	}
	for _, code := range sortedKeys(extra.Errors) {
		fmt.Fprintf(out, "error  %s: %v\n", code, extra.Errors[code])
	}

	if n := len(report.Errors) + len(extra.Errors); n > 0 {
		return fmt.Errorf("%d %w", n, errFormulas)
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

func writeReport(w io.Writer, r formula.Report) {
	fmt.Fprintf(w, "formulas: %d\n", len(r.Order))

	codes := sortedKeys(r.Errors)
	for _, code := range codes {
		fmt.Fprintf(w, "error  %s: %v\n", code, r.Errors[code])
	}
	for _, cycle := range r.Cycles {
		fmt.Fprintf(w, "cycle  %s\n", strings.Join(cycle, " -> "))
	}
	if len(codes) == 0 && len(r.Cycles) == 0 {
		fmt.Fprintln(w, "ok")
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	draw := func(ctx context.Context) {
		bctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		res, err := rebuild(bctx, configPath)
		if err != nil {
			logger.Error("rebuild failed", zap.Error(err))
			fmt.Fprintf(out, "rebuild failed: %v\n", err)
			return
		}
		if err := converters.RenderTerminal(out, res.grid(), terminalOptions(time.Now().Format(time.TimeOnly))...); err != nil {
			logger.Error("render failed", zap.Error(err))
		}
	}

	res, err := rebuild(ctx, configPath)
	if err != nil {
		return err
	}
	if err := converters.RenderTerminal(out, res.grid(), terminalOptions(filepath.Base(configPath))...); err != nil {
		return err
	}

	paths := append([]string{configPath}, res.cfg.Paths()...)
	w, err := watch.New(paths, draw, watch.WithLogger(logger), watch.WithDebounce(debounce))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	logger.Info("watching", zap.Strings("paths", paths))

	<-ctx.Done()
	w.Stop()

	return nil
}

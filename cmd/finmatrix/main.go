// SPDX-License-Identifier: MIT
// Command finmatrix builds a financial-statement matrix from bound data and
// declarative documents, then renders, exports or checks it.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	timeout    time.Duration

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "finmatrix",
	Short: "Matrix pivot and formatting engine",
	Long: `finmatrix pivots bound records into a row/column hierarchy, aggregates
parents and totals, evaluates calc-row formulas and resolves conditional
formatting.

Every command reads a YAML settings file (-c) naming the data source, the
field binding and the layout, formula, conditional-format and custom-table
documents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "finmatrix.yaml", "Settings file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Operation timeout")

	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "matrix.xlsx", "Workbook path")
	renderCmd.Flags().BoolVar(&plain, "plain", false, "Render without colors")
	watchCmd.Flags().BoolVar(&plain, "plain", false, "Render without colors")
	watchCmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before a rebuild (default 300ms)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

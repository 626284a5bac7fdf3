// SPDX-License-Identifier: MIT
package formula

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/dfs"
)

// MaxPasses caps the fixpoint. Mutually dependent rows stop here.
const MaxPasses = 6

// Engine evaluates the calc rows of a forest.
type Engine struct {
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for parse failures and cycles.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an Engine that logs nowhere unless configured.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Report summarizes a compile or a run.
type Report struct {
	// Passes is the number of passes executed (0 when nothing was evaluated).
	Passes int
	// Converged is true when the last pass changed no cell.
	Converged bool
	// Errors maps calc row codes to their parse failure.
	Errors map[string]error
	// Cycles lists the closed dependency cycles among calc rows.
	Cycles [][]string
	// Order is the sequence calc rows are evaluated in.
	Order []string
}

type program struct {
	order []string
	nodes map[string]Node
}

// compile parses every calc row of f and orders them by dependency. Rows
// that fail to parse are reported and left out of the program.
func (e *Engine) compile(ctx context.Context, f *core.Forest) (program, Report, error) {
	rep := Report{Errors: make(map[string]error)}
	prog := program{nodes: make(map[string]Node)}

	var display []string
	for _, code := range dfs.Flatten(f) {
		n, _ := f.Node(code)
		if n.Type != core.RowCalc {
			continue
		}
		ast, err := Parse(n.Formula)
		if err != nil {
			rep.Errors[code] = err
			e.logger.Warn("formula parse failed",
				zap.String("row", code), zap.String("formula", n.Formula), zap.Error(err))
			continue
		}
		prog.nodes[code] = ast
		display = append(display, code)
	}

	g := dfs.NewDigraph()
	for _, code := range display {
		g.AddVertex(code)
	}
	for _, code := range display {
		deps := References(prog.nodes[code])
		for _, ref := range deps.Refs {
			if _, ok := prog.nodes[ref]; ok {
				g.AddEdge(code, ref)
			}
		}
		for _, parent := range deps.Parents {
			p, ok := f.Node(parent)
			if !ok {
				continue
			}
			for _, ch := range p.Children {
				if _, ok := prog.nodes[ch]; ok {
					g.AddEdge(code, ch)
				}
			}
		}
	}

	order, err := dfs.TopologicalSort(g, dfs.WithCancelContext(ctx))
	switch {
	case errors.Is(err, dfs.ErrCycleDetected):
		_, rep.Cycles = dfs.DetectCycles(g)
		e.logger.Warn("formula dependency cycle, using display order",
			zap.Int("cycles", len(rep.Cycles)), zap.Strings("rows", dfs.CycleMembers(g)))
		order = display
	case err != nil:
		return prog, rep, fmt.Errorf("formula: ordering calc rows: %w", err)
	}
	prog.order = order
	rep.Order = order

	return prog, rep, nil
}

// Inspect parses and orders the calc rows of f without evaluating them.
func (e *Engine) Inspect(ctx context.Context, f *core.Forest) (Report, error) {
	_, rep, err := e.compile(ctx, f)
	return rep, err
}

// Run evaluates every calc row of f in every column, writing results into
// cells, until a pass changes nothing or MaxPasses is reached. Rows whose
// formula does not parse are null in every column.
func (e *Engine) Run(ctx context.Context, f *core.Forest, cols []core.ColumnKey, cells *core.CellMap, blankAsZero bool) (Report, error) {
	prog, rep, err := e.compile(ctx, f)
	if err != nil {
		return rep, err
	}
	for code := range rep.Errors {
		for _, c := range cols {
			cells.Set(code, c.Key, core.Null)
		}
	}
	if len(prog.order) == 0 {
		rep.Converged = true
		return rep, nil
	}

	env := &Env{Cells: cells, Forest: f, BlankAsZero: blankAsZero}
	for pass := 1; pass <= MaxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Passes = pass
		changed := false
		for _, code := range prog.order {
			ast := prog.nodes[code]
			for _, c := range cols {
				env.Column = c
				v := Evaluate(ast, env)
				prev, ok := cells.Get(code, c.Key)
				if !ok || !prev.Equal(v) {
					changed = true
				}
				cells.Set(code, c.Key, v)
			}
		}
		if !changed {
			rep.Converged = true
			break
		}
	}
	if !rep.Converged {
		e.logger.Warn("formula evaluation did not converge",
			zap.Int("passes", rep.Passes), zap.Int("rows", len(prog.order)))
	}
	e.logger.Debug("formulas evaluated",
		zap.Int("rows", len(prog.order)), zap.Int("passes", rep.Passes), zap.Bool("converged", rep.Converged))

	return rep, nil
}

// Check parses and orders a formula document on its own, outside any
// forest. Each entry becomes a root calc row; codes are visited in sorted
// order.
func (e *Engine) Check(ctx context.Context, formulas map[string]string) (Report, error) {
	f := core.NewForest()
	codes := make([]string, 0, len(formulas))
	for code := range formulas {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if err := f.Add(&core.RowNode{Code: code, Label: code, Type: core.RowCalc, Formula: formulas[code]}); err != nil {
			return Report{}, fmt.Errorf("formula: %w", err)
		}
	}

	return e.Inspect(ctx, f)
}

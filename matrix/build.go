// SPDX-License-Identifier: MIT
package matrix

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/finmatrix/aggregate"
	"github.com/katalvlaran/finmatrix/builder"
	"github.com/katalvlaran/finmatrix/condformat"
	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/customtable"
	"github.com/katalvlaran/finmatrix/formula"
)

// Build runs a full rebuild with a background context.
func Build(records []core.Record, s Settings, opts ...Option) (*core.Model, error) {
	return BuildContext(context.Background(), records, s, opts...)
}

// BuildContext runs a full rebuild. The only failure is cancellation of ctx,
// checked before the hierarchies are built and while formulas are ordered or
// evaluated. The call is synchronous: it returns once the model is final.
func BuildContext(ctx context.Context, records []core.Record, s Settings, opts ...Option) (*core.Model, error) {
	o := gatherOptions(opts...)
	log := o.logger

	var (
		forest  *core.Forest
		columns []core.ColumnKey
		cells   *core.CellMap
		fields  *core.RawFields
	)
	if !s.CustomTable.Empty() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("matrix: building custom table: %w", err)
		}
		t := customtable.Build(s.CustomTable, records, s.Measures)
		forest, columns, cells, fields = t.Forest, t.Columns, t.Cells, t.Fields
		log.Debug("custom table built", zap.Int("rows", forest.Len()), zap.Int("columns", len(columns)))
	} else {
		// The three builders read records only and write disjoint results.
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			columns = builder.BuildColumns(columnTuples(records), s.Measures)
			return nil
		})
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			forest = builder.BuildRows(rowTuples(records), s.Layout,
				builder.WithFormulas(s.Formulas), builder.WithBlankGroupLabel(s.BlankGroupLabel))
			return nil
		})
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			cells, fields = aggregate.Collect(records, s.Measures)
			return nil
		})
		if err := eg.Wait(); err != nil {
			return nil, fmt.Errorf("matrix: building hierarchies: %w", err)
		}
	}

	if s.AutoAggregateParents {
		aggregate.AutoAggregate(forest, columns, cells, s.BlankAsZero)
	}

	rep, err := formula.NewEngine(formula.WithLogger(log)).Run(ctx, forest, columns, cells, s.BlankAsZero)
	if err != nil {
		return nil, fmt.Errorf("matrix: evaluating formulas: %w", err)
	}

	rows := aggregate.InjectTotals(forest, columns, cells, aggregate.TotalsOptions{
		Subtotals:   s.ShowSubtotals,
		GrandTotal:  s.ShowGrandTotal,
		BlankAsZero: s.BlankAsZero,
	})

	m := &core.Model{
		Columns:         columns,
		Rows:            rows,
		Forest:          forest,
		Cells:           cells,
		Fields:          fields,
		ShowColumnTotal: s.ShowColumnTotal,
		BlankAsZero:     s.BlankAsZero,
	}
	for _, r := range records {
		m.HasGroup = m.HasGroup || r.HasGroup
		m.RowFieldCount = max(m.RowFieldCount, len(r.Row))
	}
	m.RowHeaderTitles = headerTitles(m, s)

	log.Debug("matrix built",
		zap.Int("records", len(records)),
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(columns)),
		zap.Int("formulaPasses", rep.Passes),
		zap.Int("formulaErrors", len(rep.Errors)))

	return m, nil
}

// Style binds cfg to a finished model.
func Style(m *core.Model, cfg condformat.Config, opts ...condformat.ResolverOption) *condformat.Resolver {
	return condformat.NewResolver(cfg, m, opts...)
}

func rowTuples(records []core.Record) []builder.RowTuple {
	out := make([]builder.RowTuple, 0, len(records))
	for _, r := range records {
		out = append(out, builder.RowTuple{Values: r.Row, Group: r.Group, HasGroup: r.HasGroup})
	}

	return out
}

func columnTuples(records []core.Record) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Column)
	}

	return out
}

// headerTitles names the row-header columns, group first. Missing titles
// fall back to "Level n".
func headerTitles(m *core.Model, s Settings) []string {
	var out []string
	if m.HasGroup {
		title := s.GroupTitle
		if title == "" {
			title = "Group"
		}
		out = append(out, title)
	}
	for i := 0; i < m.RowFieldCount; i++ {
		if i < len(s.RowFieldTitles) && s.RowFieldTitles[i] != "" {
			out = append(out, s.RowFieldTitles[i])
			continue
		}
		out = append(out, fmt.Sprintf("Level %d", i+1))
	}

	return out
}

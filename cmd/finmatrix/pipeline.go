// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/finmatrix/condformat"
	"github.com/katalvlaran/finmatrix/config"
	"github.com/katalvlaran/finmatrix/converters"
	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/matrix"
)

// result is one full rebuild from the settings file.
type result struct {
	cfg      *config.Config
	settings matrix.Settings
	model    *core.Model
	style    *condformat.Resolver
}

func (r *result) grid() *converters.Grid {
	return converters.NewGrid(r.model, r.style)
}

// rebuild loads settings, data and documents and builds the model.
func rebuild(ctx context.Context, path string) (*result, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	records, err := cfg.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	cf, err := cfg.ConditionalFormat()
	if err != nil {
		return nil, err
	}

	m, err := matrix.BuildContext(ctx, records, settings, matrix.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Debug("model built",
		zap.Int("records", len(records)),
		zap.Int("rows", len(m.Rows)),
		zap.Int("columns", len(m.Columns)),
		zap.Int("rules", len(cf.Rules)))

	return &result{cfg: cfg, settings: settings, model: m, style: matrix.Style(m, cf)}, nil
}

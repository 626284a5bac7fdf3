// SPDX-License-Identifier: MIT
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/finmatrix/builder"
	"github.com/katalvlaran/finmatrix/condformat"
	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/customtable"
	"github.com/katalvlaran/finmatrix/formula"
	"github.com/katalvlaran/finmatrix/matrix"
	"github.com/katalvlaran/finmatrix/source"
)

// Source kinds.
const (
	SourceJSON   = "json"
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

var (
	// ErrNoSource indicates a config without a data path.
	ErrNoSource = errors.New("config: source path is empty")

	// ErrUnknownSource indicates an unsupported source type.
	ErrUnknownSource = errors.New("config: unknown source type")
)

// Config is the root of the YAML settings file.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Binding   source.Binding  `yaml:"binding"`
	Documents DocumentsConfig `yaml:"documents"`
	Options   OptionsConfig   `yaml:"options"`
	Titles    TitlesConfig    `yaml:"titles"`
	Logging   LoggingConfig   `yaml:"logging"`

	// dir resolves relative paths; set by Load.
	dir string
}

// SourceConfig names the bound data.
type SourceConfig struct {
	Type  string `yaml:"type"` // json, csv, sqlite; inferred from the extension when empty
	Path  string `yaml:"path"`
	Query string `yaml:"query"` // sqlite only
}

// DocumentsConfig points at the declarative JSON documents. Empty paths are
// skipped.
type DocumentsConfig struct {
	Layout            string `yaml:"layout"`
	Formulas          string `yaml:"formulas"`
	ConditionalFormat string `yaml:"conditional_format"`
	CustomTable       string `yaml:"custom_table"`
}

// OptionsConfig holds the model flags.
type OptionsConfig struct {
	BlankAsZero          bool `yaml:"blank_as_zero"`
	AutoAggregateParents bool `yaml:"auto_aggregate_parents"`
	ShowGrandTotal       bool `yaml:"show_grand_total"`
	ShowSubtotals        bool `yaml:"show_subtotals"`
	ShowColumnTotal      bool `yaml:"show_column_total"`
}

// TitlesConfig names the row-header columns.
type TitlesConfig struct {
	Rows       []string `yaml:"rows"`
	Group      string   `yaml:"group"`
	BlankGroup string   `yaml:"blank_group"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the defaults applied before the file is read.
func DefaultConfig() *Config {
	return &Config{
		Options: OptionsConfig{
			AutoAggregateParents: true,
			ShowGrandTotal:       true,
		},
		Logging: LoggingConfig{Level: "info"},
		dir:     ".",
	}
}

// Load reads the YAML file at path over the defaults. FINMATRIX_DATA
// overrides the source path.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	if p := os.Getenv("FINMATRIX_DATA"); p != "" {
		cfg.Source.Path = p
	}

	return cfg, nil
}

// Save writes c as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

// Resolve returns p relative to the config file's directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.dir, p)
}

// Paths lists every file the run reads, resolved.
func (c *Config) Paths() []string {
	var out []string
	for _, p := range []string{c.Source.Path, c.Documents.Layout, c.Documents.Formulas,
		c.Documents.ConditionalFormat, c.Documents.CustomTable} {
		if p != "" {
			out = append(out, c.Resolve(p))
		}
	}

	return out
}

// SourceType returns the configured source type, inferred from the data
// file extension when unset.
func (c *Config) SourceType() string {
	if t := strings.ToLower(strings.TrimSpace(c.Source.Type)); t != "" {
		return t
	}
	switch strings.ToLower(filepath.Ext(c.Source.Path)) {
	case ".csv":
		return SourceCSV
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	}

	return SourceJSON
}

// Records loads the bound data and applies the binding.
func (c *Config) Records(ctx context.Context) ([]core.Record, error) {
	if c.Source.Path == "" {
		return nil, ErrNoSource
	}
	path := c.Resolve(c.Source.Path)

	var (
		rows []map[string]any
		err  error
	)
	switch c.SourceType() {
	case SourceSQLite:
		rows, err = source.LoadSQLite(ctx, path, c.Source.Query)
	case SourceJSON, SourceCSV:
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("config: open data: %w", openErr)
		}
		defer f.Close()
		if c.SourceType() == SourceCSV {
			rows, err = source.LoadCSV(f)
		} else {
			rows, err = source.LoadJSON(f)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, c.Source.Type)
	}
	if err != nil {
		return nil, err
	}

	return c.Binding.Records(rows), nil
}

// readDoc reads an optional document; an empty path yields nil.
func (c *Config) readDoc(p string) ([]byte, error) {
	if p == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.Resolve(p))
	if err != nil {
		return nil, fmt.Errorf("config: read document: %w", err)
	}

	return data, nil
}

// Settings assembles matrix settings from the options and documents.
// Document contents never fail: malformed JSON degrades to defaults.
func (c *Config) Settings() (matrix.Settings, error) {
	s := matrix.Settings{
		Measures:             c.Binding.Measures,
		RowFieldTitles:       c.Titles.Rows,
		GroupTitle:           c.Titles.Group,
		BlankGroupLabel:      c.Titles.BlankGroup,
		BlankAsZero:          c.Options.BlankAsZero,
		AutoAggregateParents: c.Options.AutoAggregateParents,
		ShowGrandTotal:       c.Options.ShowGrandTotal,
		ShowSubtotals:        c.Options.ShowSubtotals,
		ShowColumnTotal:      c.Options.ShowColumnTotal,
	}
	if len(s.RowFieldTitles) == 0 {
		s.RowFieldTitles = c.Binding.RowFields
	}
	if s.GroupTitle == "" {
		s.GroupTitle = c.Binding.GroupField
	}

	layout, err := c.readDoc(c.Documents.Layout)
	if err != nil {
		return s, err
	}
	s.Layout = builder.ParseLayout(layout)

	formulas, err := c.readDoc(c.Documents.Formulas)
	if err != nil {
		return s, err
	}
	s.Formulas = formula.ParseFormulas(formulas)

	table, err := c.readDoc(c.Documents.CustomTable)
	if err != nil {
		return s, err
	}
	if table != nil {
		s.CustomTable = customtable.Parse(table)
	}

	return s, nil
}

// ConditionalFormat reads the conditional-formatting document.
func (c *Config) ConditionalFormat() (condformat.Config, error) {
	data, err := c.readDoc(c.Documents.ConditionalFormat)
	if err != nil {
		return condformat.Config{}, err
	}

	return condformat.Parse(data), nil
}

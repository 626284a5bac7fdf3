// SPDX-License-Identifier: MIT
// Package: finmatrix/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Design:
//   • rowConfig is the single source of truth for row builder knobs.
//   • newRowConfig applies options in-order (later overrides earlier).

package builder

// rowConfig aggregates all knobs used by BuildRows.
// It is passed by VALUE (immutable to callers).
type rowConfig struct {
	// formulas maps row code to formula text; inline layout formulas win.
	formulas map[string]string
	// blankGroupLabel labels a group root whose value was blank.
	blankGroupLabel string
}

// newRowConfig constructs a config with deterministic defaults and applies
// all options in order.
func newRowConfig(opts ...Option) rowConfig {
	cfg := rowConfig{
		formulas:        nil,
		blankGroupLabel: "",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Option customizes BuildRows.
type Option func(*rowConfig)

// WithFormulas attaches a `{code: formula}` map. A row's inline layout
// formula takes precedence over the map.
func WithFormulas(m map[string]string) Option {
	return func(c *rowConfig) {
		c.formulas = m
	}
}

// WithBlankGroupLabel sets the label shown for a group root whose value was
// blank. Empty keeps core.Blank.
func WithBlankGroupLabel(label string) Option {
	return func(c *rowConfig) {
		c.blankGroupLabel = label
	}
}

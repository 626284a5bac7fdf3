// SPDX-License-Identifier: MIT
package customtable

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/katalvlaran/finmatrix/core"
)

// Aggregations of a value mapping.
const (
	AggNone  = "none"
	AggSum   = "sum"
	AggAvg   = "avg"
	AggMin   = "min"
	AggMax   = "max"
	AggCount = "count"
)

var aggregations = []string{AggNone, AggSum, AggAvg, AggMin, AggMax, AggCount}

// ValueMapping binds one column leaf to a record field.
type ValueMapping struct {
	Field       string `json:"field"`
	Label       string `json:"label,omitempty"`
	Aggregation string `json:"aggregation,omitempty"`
}

// Leaf is the column leaf label of the mapping.
func (v ValueMapping) Leaf() string {
	if v.Label != "" {
		return v.Label
	}

	return v.Field
}

// Parent is a top-level row.
type Parent struct {
	ParentNo   int            `json:"parentNo"`
	ParentName string         `json:"parentName"`
	Values     []ValueMapping `json:"values,omitempty"`
	Format     string         `json:"format,omitempty"`
}

// Child is a row under a parent, or a template of rows when
// ChildNameFromField is set.
type Child struct {
	ID                 string         `json:"id"`
	SetParentNo        int            `json:"setParentNo"`
	ChildName          string         `json:"childName,omitempty"`
	ChildNameFromField string         `json:"childNameFromField,omitempty"`
	ParentMatchField   string         `json:"parentMatchField,omitempty"`
	Values             []ValueMapping `json:"values,omitempty"`
	Format             string         `json:"format,omitempty"`
}

// Config is the custom table document.
type Config struct {
	Version                 int      `json:"version"`
	Parents                 []Parent `json:"parents"`
	Children                []Child  `json:"children"`
	ShowValueNamesInColumns bool     `json:"showValueNamesInColumns,omitempty"`
	HiddenColumnFieldKeys   []string `json:"hiddenColumnFieldKeys,omitempty"`
}

// Empty reports whether cfg declares no rows.
func (c Config) Empty() bool { return len(c.Parents) == 0 && len(c.Children) == 0 }

// Parse reads a custom table document. Malformed JSON yields an empty
// config; mappings without a field and children without a name source are
// dropped; unknown aggregations become AggNone; parents are ordered by
// parent number.
func Parse(data []byte) Config {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{Version: 1}
	}
	cfg.Version = 1

	seen := make(map[int]bool)
	parents := cfg.Parents[:0]
	for _, p := range cfg.Parents {
		if seen[p.ParentNo] {
			continue
		}
		seen[p.ParentNo] = true
		p.ParentName = strings.TrimSpace(p.ParentName)
		p.Values = normalizeValues(p.Values)
		parents = append(parents, p)
	}
	sort.SliceStable(parents, func(i, j int) bool { return parents[i].ParentNo < parents[j].ParentNo })
	cfg.Parents = parents

	children := cfg.Children[:0]
	for i, c := range cfg.Children {
		c.ChildName = strings.TrimSpace(c.ChildName)
		c.ChildNameFromField = strings.TrimSpace(c.ChildNameFromField)
		c.ParentMatchField = strings.TrimSpace(c.ParentMatchField)
		if c.ChildName == "" && c.ChildNameFromField == "" {
			continue
		}
		if c.ID = strings.TrimSpace(c.ID); c.ID == "" {
			c.ID = core.ToText(float64(i))
		}
		c.Values = normalizeValues(c.Values)
		children = append(children, c)
	}
	cfg.Children = children

	return cfg
}

func normalizeValues(in []ValueMapping) []ValueMapping {
	out := in[:0]
	for _, v := range in {
		v.Field = strings.TrimSpace(v.Field)
		if v.Field == "" {
			continue
		}
		v.Label = strings.TrimSpace(v.Label)
		agg := strings.TrimSpace(v.Aggregation)
		v.Aggregation = AggNone
		for _, a := range aggregations {
			if strings.EqualFold(agg, a) {
				v.Aggregation = a
			}
		}
		out = append(out, v)
	}

	return out
}

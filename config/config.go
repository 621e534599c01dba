// Package config loads engine options from YAML files for the CLI. The
// file mirrors the engine's configuration surface; absent fields keep
// their defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pageflow/pageflow"
)

// File is the YAML representation of the engine options. Pointer fields
// distinguish "absent" from zero.
type File struct {
	ToleranceY      *float64   `yaml:"tolerance_y"`
	ToleranceX      *float64   `yaml:"tolerance_x"`
	MergeGap        *float64   `yaml:"merge_gap"`
	RowTolerance    *float64   `yaml:"row_tolerance"`
	ColumnProximity *float64   `yaml:"column_proximity"`
	VerticalCutoff  *float64   `yaml:"vertical_cutoff"`
	HeadingRatios   *[]float64 `yaml:"heading_ratios"`
	Workers         *int       `yaml:"workers"`
}

// Load reads a YAML options file and applies it over the defaults.
func Load(path string) (pageflow.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pageflow.Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse applies YAML data over the default options.
func Parse(data []byte) (pageflow.Options, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return pageflow.Options{}, fmt.Errorf("config: parse: %w", err)
	}

	opts := pageflow.DefaultOptions()
	if f.ToleranceY != nil {
		opts.ToleranceY = *f.ToleranceY
	}
	if f.ToleranceX != nil {
		opts.ToleranceX = *f.ToleranceX
	}
	if f.MergeGap != nil {
		opts.MergeGap = *f.MergeGap
	}
	if f.RowTolerance != nil {
		opts.RowTolerance = *f.RowTolerance
	}
	if f.ColumnProximity != nil {
		opts.ColumnProximity = *f.ColumnProximity
	}
	if f.VerticalCutoff != nil {
		opts.VerticalCutoff = *f.VerticalCutoff
	}
	if f.HeadingRatios != nil {
		if len(*f.HeadingRatios) != 3 {
			return pageflow.Options{}, fmt.Errorf("config: heading_ratios needs exactly 3 values, got %d", len(*f.HeadingRatios))
		}
		copy(opts.HeadingRatios[:], *f.HeadingRatios)
	}
	if f.Workers != nil {
		opts.Workers = *f.Workers
	}
	return opts, nil
}

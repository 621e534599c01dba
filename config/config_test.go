package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageflow/pageflow"
)

func TestParse_Empty(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, pageflow.DefaultOptions(), opts)
}

func TestParse_Overrides(t *testing.T) {
	data := []byte(`
tolerance_y: 5.0
merge_gap: 1.5
heading_ratios: [2.0, 1.7, 1.4]
workers: 4
`)

	opts, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 5.0, opts.ToleranceY)
	assert.Equal(t, 1.5, opts.MergeGap)
	assert.Equal(t, [3]float64{2.0, 1.7, 1.4}, opts.HeadingRatios)
	assert.Equal(t, 4, opts.Workers)

	// Untouched fields keep their defaults.
	defaults := pageflow.DefaultOptions()
	assert.Equal(t, defaults.RowTolerance, opts.RowTolerance)
	assert.Equal(t, defaults.ColumnProximity, opts.ColumnProximity)
	assert.Equal(t, defaults.VerticalCutoff, opts.VerticalCutoff)
}

func TestParse_ZeroIsNotAbsent(t *testing.T) {
	opts, err := Parse([]byte("merge_gap: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, opts.MergeGap)
}

func TestParse_BadHeadingRatios(t *testing.T) {
	_, err := Parse([]byte("heading_ratios: [1.5, 1.3]\n"))
	assert.ErrorContains(t, err, "heading_ratios")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("tolerance_y: [not a number\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tolerance_x: 8.0\n"), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, opts.ToleranceX)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

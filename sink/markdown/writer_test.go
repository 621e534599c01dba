package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageflow/pageflow/model"
)

func render(t *testing.T, flow []model.FlowElement) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Write(flow))
	return buf.String()
}

func TestWrite_HeadingsAndBody(t *testing.T) {
	out := render(t, []model.FlowElement{
		model.TextLine{Text: "Title", HeadingLevel: 1},
		model.TextLine{Text: "Section", HeadingLevel: 2},
		model.TextLine{Text: "Plain body text."},
		model.TextLine{Text: "Strong", Bold: true},
		model.TextLine{Text: "Slanted", Italic: true},
	})

	assert.Contains(t, out, "# Title\n\n")
	assert.Contains(t, out, "## Section\n\n")
	assert.Contains(t, out, "Plain body text.\n\n")
	assert.Contains(t, out, "**Strong**\n\n")
	assert.Contains(t, out, "*Slanted*\n\n")
}

// Heading markup wins over inline emphasis: a bold heading renders with
// #-prefix only.
func TestWrite_BoldHeading(t *testing.T) {
	out := render(t, []model.FlowElement{
		model.TextLine{Text: "Bold Title", HeadingLevel: 1, Bold: true},
	})

	assert.Contains(t, out, "# Bold Title\n")
	assert.NotContains(t, out, "**")
}

func TestWrite_Table(t *testing.T) {
	out := render(t, []model.FlowElement{
		&model.TableStructure{
			Headers: []string{"Name", "Age", "City"},
			Rows: [][]string{
				{"Alice", "30", "NYC"},
				{"Bob", "", "LA"},
			},
		},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4, "header, separator, and two data rows")

	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[0], "City")
	assert.Contains(t, lines[1], "---")
	assert.Contains(t, lines[2], "Alice")
	assert.Contains(t, lines[3], "Bob")
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "|"), "markdown table rows start with a pipe: %q", line)
	}
}

func TestWrite_ImageAndPageBreak(t *testing.T) {
	out := render(t, []model.FlowElement{
		model.TextLine{Text: "before"},
		model.ImageBlock{Width: 200, Height: 120},
		model.PageBreak{PageIndex: 0, PageHeight: 792},
		model.TextLine{Text: "after"},
	})

	assert.Contains(t, out, "![image 200x120](embedded)\n\n")
	assert.Contains(t, out, "---\n\n")
	assert.Less(t, strings.Index(out, "before"), strings.Index(out, "---"))
	assert.Less(t, strings.Index(out, "---"), strings.Index(out, "after"))
}

func TestWrite_SkipsBlankLines(t *testing.T) {
	out := render(t, []model.FlowElement{
		model.TextLine{Text: "   "},
		model.TextLine{Text: "kept"},
	})

	assert.Equal(t, "kept\n\n", out)
}

func TestWrite_EmptyFlow(t *testing.T) {
	assert.Empty(t, render(t, nil))
}

// Package markdown serializes a reconstructed document flow as markdown.
// Headings map to #-prefixes, tables are rendered as markdown pipe tables,
// images become placeholders with their target dimensions, and page breaks
// become thematic breaks.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pageflow/pageflow/model"
)

// Writer emits markdown to an underlying writer.
type Writer struct {
	out io.Writer
}

// NewWriter creates a markdown writer.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write serializes the flow in order.
func (w *Writer) Write(flow []model.FlowElement) error {
	buf := bufio.NewWriter(w.out)

	for _, elem := range flow {
		switch e := elem.(type) {
		case model.TextLine:
			writeTextLine(buf, e)
		case *model.TableStructure:
			buf.WriteString(renderTable(e))
			buf.WriteString("\n\n")
		case model.ImageBlock:
			fmt.Fprintf(buf, "![image %.0fx%.0f](embedded)\n\n", e.Width, e.Height)
		case model.PageBreak:
			buf.WriteString("---\n\n")
		}
	}

	return buf.Flush()
}

func writeTextLine(buf *bufio.Writer, line model.TextLine) {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		return
	}

	if line.HeadingLevel > 0 {
		buf.WriteString(strings.Repeat("#", line.HeadingLevel))
		buf.WriteByte(' ')
		buf.WriteString(text)
		buf.WriteString("\n\n")
		return
	}

	if line.Bold {
		text = "**" + text + "**"
	} else if line.Italic {
		text = "*" + text + "*"
	}
	buf.WriteString(text)
	buf.WriteString("\n\n")
}

func renderTable(t *model.TableStructure) string {
	tw := table.NewWriter()

	header := make(table.Row, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	return tw.RenderMarkdown()
}

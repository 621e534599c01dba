// Package pageflow reconstructs the logical layout of page-based documents
// into a flowed, structured model and re-emits it in other formats.
//
// Raw extraction yields a flat list of positioned, formatted text spans
// with no notion of lines, paragraphs, tables, or reading order; pageflow
// re-derives those structures from geometric and typographic cues alone.
//
// Basic usage:
//
//	flow, err := pageflow.Open("report.pdf").Flow()
//	if err != nil {
//	    // handle error
//	}
//
// With options and a concrete output:
//
//	err := pageflow.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    WithOptions(opts).
//	    ToDOCX("report.docx")
//
// For advanced use the source, flow, and sink packages are available
// directly.
package pageflow

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pageflow/pageflow/flow"
	"github.com/pageflow/pageflow/model"
	"github.com/pageflow/pageflow/sink"
	"github.com/pageflow/pageflow/sink/docx"
	"github.com/pageflow/pageflow/sink/markdown"
	"github.com/pageflow/pageflow/source"
)

// Converter is a fluent handle on one conversion run. Configure it with
// chained calls, then invoke a terminal operation (Flow, WriteTo, ToDOCX,
// ToMarkdown).
type Converter struct {
	path    string
	src     source.Source
	ownsSrc bool
	pages   []int // 1-indexed selection; nil means all pages
	options Options
	log     *zap.Logger
}

// Open prepares a conversion of the PDF file at path. The underlying file
// is opened and closed by the terminal operation.
func Open(path string) *Converter {
	return &Converter{
		path:    path,
		ownsSrc: true,
		options: DefaultOptions(),
		log:     zap.NewNop(),
	}
}

// FromSource prepares a conversion reading from an already-open content
// source. The caller retains ownership and must close the source.
func FromSource(src source.Source) *Converter {
	return &Converter{
		src:     src,
		options: DefaultOptions(),
		log:     zap.NewNop(),
	}
}

// Pages restricts the conversion to the given 1-indexed pages, in the
// order given. Without a selection all pages are converted.
func (c *Converter) Pages(pages ...int) *Converter {
	c.pages = append([]int(nil), pages...)
	return c
}

// WithOptions replaces the engine configuration.
func (c *Converter) WithOptions(opts Options) *Converter {
	c.options = opts
	return c
}

// WithLogger sets the logger used for per-page degradation reports.
func (c *Converter) WithLogger(log *zap.Logger) *Converter {
	if log != nil {
		c.log = log
	}
	return c
}

// Flow runs the reconstruction engine and returns the ordered FlowElement
// sequence for the document. This is the single externally visible
// artifact of the core; the To* helpers replay it through a sink.
func (c *Converter) Flow() ([]model.FlowElement, error) {
	src, err := c.openSource()
	if err != nil {
		return nil, err
	}
	if c.ownsSrc {
		defer src.Close()
	}

	indexes, err := c.pageIndexes(src.PageCount())
	if err != nil {
		return nil, err
	}

	pages := make([]model.PageContent, 0, len(indexes))
	for _, idx := range indexes {
		page, err := src.Page(idx)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	assembler, err := flow.NewAssemblerWithConfig(c.options.flowConfig())
	if err != nil {
		return nil, err
	}
	return assembler.WithLogger(c.log).AssembleDocument(pages), nil
}

// WriteTo runs the conversion and replays the flow through the given sink.
func (c *Converter) WriteTo(s sink.Sink) error {
	elements, err := c.Flow()
	if err != nil {
		return err
	}
	return s.Write(elements)
}

// ToDOCX converts the document and writes a .docx file at path.
func (c *Converter) ToDOCX(path string) error {
	elements, err := c.Flow()
	if err != nil {
		return err
	}
	return docx.WriteFile(path, elements)
}

// ToMarkdown converts the document and writes a markdown file at path.
func (c *Converter) ToMarkdown(path string) error {
	elements, err := c.Flow()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pageflow: create %s: %w", path, err)
	}
	if err := markdown.NewWriter(f).Write(elements); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// To converts the document and writes it in the named output format:
// "docx", or "markdown" (alias "md").
func (c *Converter) To(path, format string) error {
	switch format {
	case "docx":
		return c.ToDOCX(path)
	case "markdown", "md":
		return c.ToMarkdown(path)
	default:
		return fmt.Errorf("pageflow: format %q: %w", format, ErrUnsupportedFormat)
	}
}

func (c *Converter) openSource() (source.Source, error) {
	if c.src != nil {
		return c.src, nil
	}
	src, err := source.OpenPDF(c.path)
	if err != nil {
		return nil, err
	}
	return src.WithLogger(c.log), nil
}

// pageIndexes resolves the 1-indexed page selection into 0-indexed page
// numbers, defaulting to all pages.
func (c *Converter) pageIndexes(pageCount int) ([]int, error) {
	if c.pages == nil {
		indexes := make([]int, pageCount)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}

	indexes := make([]int, 0, len(c.pages))
	for _, p := range c.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("pageflow: page %d out of range [1,%d]: %w", p, pageCount, ErrPageOutOfRange)
		}
		indexes = append(indexes, p-1)
	}
	return indexes, nil
}

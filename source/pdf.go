package source

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/pageflow/pageflow/model"
)

// Source yields raw page content for the reconstruction engine. Page
// indexes are 0-based. Implementations are trusted to supply valid
// geometry; the engine still skips non-finite boxes defensively.
type Source interface {
	PageCount() int
	Page(index int) (model.PageContent, error)
	Close() error
}

// Letter-size fallback when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Span coalescing thresholds, as fractions of the font size: glyph runs
// closer than runGapEm join one span (with a space inserted above
// spaceGapEm), wider gaps split spans so column boundaries survive.
const (
	runGapEm   = 0.5
	spaceGapEm = 0.15
)

// PDF is a content source backed by a PDF file.
type PDF struct {
	file   *os.File
	reader *pdf.Reader
	log    *zap.Logger
}

// OpenPDF opens a PDF file as a content source. The returned source must be
// closed when done.
func OpenPDF(path string) (*PDF, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	return &PDF{file: f, reader: r, log: zap.NewNop()}, nil
}

// WithLogger sets the logger for extraction warnings and returns the source.
func (p *PDF) WithLogger(log *zap.Logger) *PDF {
	if log != nil {
		p.log = log
	}
	return p
}

// PageCount returns the number of pages in the document.
func (p *PDF) PageCount() int {
	return p.reader.NumPage()
}

// Close releases the underlying file.
func (p *PDF) Close() error {
	return p.file.Close()
}

// Page extracts the content of one page. Extraction failures degrade to an
// empty page rather than an error: one malformed page never aborts the
// document (the error return is reserved for out-of-range indexes).
func (p *PDF) Page(index int) (model.PageContent, error) {
	if index < 0 || index >= p.reader.NumPage() {
		return model.PageContent{}, fmt.Errorf("source: page index %d out of range [0,%d)", index, p.reader.NumPage())
	}

	page := p.reader.Page(index + 1)
	content := model.PageContent{
		Index:  index,
		Width:  defaultPageWidth,
		Height: defaultPageHeight,
	}
	if page.V.IsNull() {
		return content, nil
	}

	if w, h, ok := mediaBoxSize(page); ok {
		content.Width, content.Height = w, h
	}

	p.extractPageSafe(page, &content)
	return content, nil
}

// extractPageSafe fills spans, fills, and images, recovering from parser
// panics so a corrupt page degrades to whatever was extracted before the
// failure.
func (p *PDF) extractPageSafe(page pdf.Page, content *model.PageContent) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("page extraction failed, emitting partial page",
				zap.Int("page", content.Index),
				zap.Any("panic", r))
		}
	}()

	raw := page.Content()
	content.Spans = p.buildSpans(raw.Text, content.Index, content.Height)
	content.Fills = buildFills(raw.Rect, content.Height)
	content.Images = p.extractImages(page, content.Index, content.Height)
}

// buildSpans coalesces glyph-level text runs into spans and flips Y into
// top-down page space. Whitespace-only and non-finite runs are dropped.
func (p *PDF) buildSpans(texts []pdf.Text, pageIndex int, pageHeight float64) []model.Span {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		if !isFinite(t.X) || !isFinite(t.Y) || !isFinite(t.W) || t.W < 0 {
			continue
		}
		runs = append(runs, t)
	}
	if len(runs) == 0 {
		return nil
	}

	// Reading order: top of page first (PDF Y grows upward), then left to
	// right.
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Y != runs[j].Y {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var spans []model.Span
	var sb strings.Builder
	var cur pdf.Text  // first run of the open span
	var prev pdf.Text // last run appended
	open := false

	flush := func() {
		if !open {
			return
		}
		spans = append(spans, model.Span{
			Text:      norm.NFC.String(sb.String()),
			X:         cur.X,
			Y:         pageHeight - cur.Y,
			Width:     prev.X + prev.W - cur.X,
			Height:    cur.FontSize,
			FontName:  cur.Font,
			FontSize:  cur.FontSize,
			Bold:      isBoldFont(cur.Font),
			Italic:    isItalicFont(cur.Font),
			Color:     model.Black,
			PageIndex: pageIndex,
		})
		sb.Reset()
		open = false
	}

	for _, t := range runs {
		if open {
			gap := t.X - (prev.X + prev.W)
			sameLine := math.Abs(t.Y-cur.Y) <= 0.5
			sameStyle := t.Font == cur.Font && t.FontSize == cur.FontSize
			if sameLine && sameStyle && gap <= runGapEm*cur.FontSize {
				if gap > spaceGapEm*cur.FontSize {
					sb.WriteByte(' ')
				}
				sb.WriteString(t.S)
				prev = t
				continue
			}
			flush()
		}
		cur, prev = t, t
		sb.WriteString(t.S)
		open = true
	}
	flush()

	return spans
}

// buildFills converts fill rectangles into top-down page space.
func buildFills(rects []pdf.Rect, pageHeight float64) []model.FillRect {
	var fills []model.FillRect
	for _, r := range rects {
		w := r.Max.X - r.Min.X
		h := r.Max.Y - r.Min.Y
		if !isFinite(w) || !isFinite(h) || w <= 0 || h <= 0 {
			continue
		}
		fills = append(fills, model.FillRect{
			X:      r.Min.X,
			Y:      pageHeight - r.Max.Y,
			Width:  w,
			Height: h,
			Color:  model.Black,
		})
	}
	return fills
}

// extractImages walks the page's XObject resources. Only flate-compressed
// 8-bit DeviceRGB and DeviceGray images are decodable through the parser;
// they are re-encoded as PNG. Placement transforms are not exposed, so
// images are pinned to the bottom of the page and ordered after its text.
func (p *PDF) extractImages(page pdf.Page, pageIndex int, pageHeight float64) []model.ImageBlock {
	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return nil
	}
	xobjects := resources.Key("XObject")
	if xobjects.IsNull() {
		return nil
	}

	var images []model.ImageBlock
	for _, name := range xobjects.Keys() {
		obj := xobjects.Key(name)
		if obj.Key("Subtype").Name() != "Image" {
			continue
		}
		img, ok := p.decodeImageSafe(name, obj, pageIndex, pageHeight)
		if ok {
			images = append(images, img)
		}
	}
	return images
}

// decodeImageSafe decodes one image XObject, recovering from unsupported
// filter panics.
func (p *PDF) decodeImageSafe(name string, obj pdf.Value, pageIndex int, pageHeight float64) (img model.ImageBlock, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("skipping undecodable image",
				zap.Int("page", pageIndex),
				zap.String("xobject", name),
				zap.Any("panic", r))
			ok = false
		}
	}()

	width := int(obj.Key("Width").Int64())
	height := int(obj.Key("Height").Int64())
	if width <= 0 || height <= 0 {
		return model.ImageBlock{}, false
	}

	data, format := decodeImageData(obj, width, height)
	if data == nil {
		p.log.Warn("skipping image with unsupported encoding",
			zap.Int("page", pageIndex),
			zap.String("xobject", name))
		return model.ImageBlock{}, false
	}

	return model.ImageBlock{
		Data:      data,
		Format:    format,
		X:         0,
		Y:         pageHeight,
		Width:     float64(width),
		Height:    float64(height),
		PageIndex: pageIndex,
	}, true
}

func isBoldFont(font string) bool {
	return strings.Contains(font, "Bold") || strings.Contains(font, "Black") ||
		strings.Contains(font, "Heavy")
}

func isItalicFont(font string) bool {
	return strings.Contains(font, "Italic") || strings.Contains(font, "Oblique")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// mediaBoxSize reads the page's MediaBox, following the standard
// [llx lly urx ury] layout.
func mediaBoxSize(page pdf.Page) (width, height float64, ok bool) {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() != 4 {
		return 0, 0, false
	}
	llx, lly := box.Index(0).Float64(), box.Index(1).Float64()
	urx, ury := box.Index(2).Float64(), box.Index(3).Float64()
	w, h := urx-llx, ury-lly
	if !isFinite(w) || !isFinite(h) || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

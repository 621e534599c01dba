// Package stamp overlays page numbers onto an existing PDF. Each page of
// the input is imported as a template and re-emitted with the formatted
// page number drawn at one of nine positions.
package stamp

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"github.com/ledongthuc/pdf"

	"github.com/pageflow/pageflow/model"
)

// Position names a page-number placement.
type Position string

const (
	TopLeft      Position = "top_left"
	TopCenter    Position = "top_center"
	TopRight     Position = "top_right"
	MiddleLeft   Position = "middle_left"
	MiddleCenter Position = "middle_center"
	MiddleRight  Position = "middle_right"
	BottomLeft   Position = "bottom_left"
	BottomCenter Position = "bottom_center"
	BottomRight  Position = "bottom_right"
)

// Valid reports whether the position is one of the nine known placements.
func (p Position) Valid() bool {
	switch p {
	case TopLeft, TopCenter, TopRight,
		MiddleLeft, MiddleCenter, MiddleRight,
		BottomLeft, BottomCenter, BottomRight:
		return true
	}
	return false
}

// Config holds stamping options.
type Config struct {
	// Position places the number on the page (default: bottom_center).
	Position Position

	// FontSize is the number's font size in points (default: 12).
	FontSize float64

	// Color is the text color (default: black).
	Color model.Color

	// Margin is the distance from the page edge in points (default: 30).
	Margin float64

	// StartPage is the number assigned to the first page (default: 1).
	StartPage int

	// Format is the number template; {page} expands to the page number and
	// {total} to the page count (default: "{page}").
	Format string
}

// DefaultConfig returns the default stamping options.
func DefaultConfig() Config {
	return Config{
		Position:  BottomCenter,
		FontSize:  12,
		Color:     model.Black,
		Margin:    30,
		StartPage: 1,
		Format:    "{page}",
	}
}

// File stamps the PDF at inputPath and writes the result to outputPath.
func File(inputPath, outputPath string, cfg Config) error {
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("stamp: read %s: %w", inputPath, err)
	}
	output, err := Apply(input, cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		return fmt.Errorf("stamp: write %s: %w", outputPath, err)
	}
	return nil
}

// Apply stamps every page of the input PDF and returns the modified PDF.
func Apply(input []byte, cfg Config) ([]byte, error) {
	if !cfg.Position.Valid() {
		return nil, fmt.Errorf("stamp: unknown position %q", cfg.Position)
	}
	if cfg.FontSize <= 0 {
		return nil, fmt.Errorf("stamp: non-positive font size %v", cfg.FontSize)
	}

	reader, err := pdf.NewReader(bytes.NewReader(input), int64(len(input)))
	if err != nil {
		return nil, fmt.Errorf("stamp: open input: %w", err)
	}
	total := reader.NumPage()

	doc := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(input))

	for i := 1; i <= total; i++ {
		width, height := pageSize(reader.Page(i))
		doc.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})

		tpl := importer.ImportPageFromStream(doc, &rs, i, "/MediaBox")
		importer.UseImportedTemplate(doc, tpl, 0, 0, width, 0)

		doc.SetFont("Helvetica", "", cfg.FontSize)
		doc.SetTextColor(int(cfg.Color.R), int(cfg.Color.G), int(cfg.Color.B))

		text := FormatNumber(cfg.Format, i-1+cfg.StartPage, total)
		x, y := Place(cfg.Position, width, height, doc.GetStringWidth(text), cfg.FontSize, cfg.Margin)
		doc.Text(x, y, text)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("stamp: render output: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatNumber expands the {page} and {total} placeholders.
func FormatNumber(format string, page, total int) string {
	s := strings.ReplaceAll(format, "{page}", strconv.Itoa(page))
	return strings.ReplaceAll(s, "{total}", strconv.Itoa(total))
}

// Place computes the baseline origin for the page-number text. The page
// uses top-down coordinates (fpdf convention).
func Place(pos Position, pageWidth, pageHeight, textWidth, fontSize, margin float64) (x, y float64) {
	switch pos {
	case TopLeft, MiddleLeft, BottomLeft:
		x = margin
	case TopCenter, MiddleCenter, BottomCenter:
		x = (pageWidth - textWidth) / 2
	case TopRight, MiddleRight, BottomRight:
		x = pageWidth - margin - textWidth
	}

	switch pos {
	case TopLeft, TopCenter, TopRight:
		y = margin + fontSize
	case MiddleLeft, MiddleCenter, MiddleRight:
		y = pageHeight / 2
	case BottomLeft, BottomCenter, BottomRight:
		y = pageHeight - margin
	}

	return x, y
}

// pageSize reads a page's MediaBox, falling back to letter size.
func pageSize(page pdf.Page) (width, height float64) {
	width, height = 612, 792
	if page.V.IsNull() {
		return width, height
	}
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() != 4 {
		return width, height
	}
	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if w > 0 && h > 0 {
		width, height = w, h
	}
	return width, height
}

// Package docx serializes a reconstructed document flow as an Office Open
// XML (.docx) package. Text lines become paragraph runs with their source
// formatting, headings map to Heading1-3 styles, tables become bordered
// w:tbl grids with a bold header row, images are embedded as inline
// drawings, and page breaks become hard breaks.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for image.Decode
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/draw"

	"github.com/pageflow/pageflow/model"
)

const (
	emuPerPoint = 12700

	// maxImageWidth is the printable width images are scaled down to fit,
	// in points (6 inches, matching letter size with default margins).
	maxImageWidth = 432.0

	// maxImagePixels is the pixel width above which embedded bitmaps are
	// downscaled before packaging.
	maxImagePixels = 1600
)

// Writer emits a DOCX package to an underlying writer.
type Writer struct {
	out io.Writer
}

// NewWriter creates a DOCX writer.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteFile serializes the flow into a .docx file at path.
func WriteFile(path string, flow []model.FlowElement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("docx: create %s: %w", path, err)
	}
	if err := NewWriter(f).Write(flow); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type mediaEntry struct {
	name        string
	contentType string
	data        []byte
}

// Write serializes the flow in order into a complete DOCX package.
func (w *Writer) Write(flow []model.FlowElement) error {
	var body wordBody
	var media []mediaEntry

	for _, elem := range flow {
		switch e := elem.(type) {
		case model.TextLine:
			body.Content = append(body.Content, textParagraph(e))
		case *model.TableStructure:
			body.Content = append(body.Content, buildTable(e))
		case model.ImageBlock:
			p, entry := buildImage(e, len(media))
			body.Content = append(body.Content, p)
			if entry != nil {
				media = append(media, *entry)
			}
		case model.PageBreak:
			body.Content = append(body.Content, paragraph{
				Runs: []run{{Break: &runBreak{Type: "page"}}},
			})
		}
	}

	doc := wordDocument{
		XmlnsW:   nsW,
		XmlnsR:   nsR,
		XmlnsWP:  nsWP,
		XmlnsA:   nsA,
		XmlnsPic: nsPic,
		Body:     body,
	}
	docXML, err := xml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docx: marshal document: %w", err)
	}

	return w.writePackage(append([]byte(xml.Header), docXML...), media)
}

// writePackage assembles the OOXML ZIP container.
func (w *Writer) writePackage(documentXML []byte, media []mediaEntry) error {
	zw := zip.NewWriter(w.out)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", documentRelsXML(media)},
		{"word/styles.xml", []byte(stylesXML)},
	}
	for _, m := range media {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/media/" + m.name, m.data})
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("docx: create part %s: %w", part.name, err)
		}
		if _, err := f.Write(part.data); err != nil {
			return fmt.Errorf("docx: write part %s: %w", part.name, err)
		}
	}

	return zw.Close()
}

func textParagraph(line model.TextLine) paragraph {
	if line.HeadingLevel > 0 {
		return paragraph{
			Props: &paragraphProps{
				Style: &valAttr{Val: fmt.Sprintf("Heading%d", line.HeadingLevel)},
			},
			Runs: []run{{Text: &runText{Space: "preserve", Value: line.Text}}},
		}
	}

	props := &runProps{
		Size: &valAttr{Val: fmt.Sprintf("%d", int(line.FontSize*2))},
	}
	if line.FontName != "" {
		props.Fonts = &runFonts{ASCII: line.FontName, HAnsi: line.FontName}
	}
	if line.Bold {
		props.Bold = &emptyTag{}
	}
	if line.Italic {
		props.Italic = &emptyTag{}
	}
	if line.Color != model.Black {
		props.Color = &valAttr{
			Val: fmt.Sprintf("%02X%02X%02X", line.Color.R, line.Color.G, line.Color.B),
		}
	}

	return paragraph{
		Runs: []run{{
			Props: props,
			Text:  &runText{Space: "preserve", Value: line.Text},
		}},
	}
}

func buildTable(t *model.TableStructure) wordTable {
	tbl := wordTable{
		Props: tableProps{
			Width:   tableWidth{W: "0", Type: "auto"},
			Borders: singleBorders(),
		},
	}

	header := tableRow{}
	for _, h := range t.Headers {
		cell := tableCell{
			Paras: []paragraph{{
				Runs: []run{{
					Props: &runProps{Bold: &emptyTag{}},
					Text:  &runText{Space: "preserve", Value: h},
				}},
			}},
		}
		if t.HasHeaderBackground {
			cell.Props = &cellProps{Shading: &cellShading{Val: "clear", Fill: "D9D9D9"}}
		}
		header.Cells = append(header.Cells, cell)
	}
	tbl.Rows = append(tbl.Rows, header)

	for _, row := range t.Rows {
		tr := tableRow{}
		for _, text := range row {
			tr.Cells = append(tr.Cells, tableCell{
				Paras: []paragraph{{
					Runs: []run{{Text: &runText{Space: "preserve", Value: text}}},
				}},
			})
		}
		tbl.Rows = append(tbl.Rows, tr)
	}

	return tbl
}

// buildImage returns a paragraph embedding the image as an inline drawing,
// plus the media entry to package. Images the stdlib cannot decode are
// embedded as-is with their declared dimensions; oversized bitmaps are
// downscaled first.
func buildImage(img model.ImageBlock, index int) (paragraph, *mediaEntry) {
	data, format := img.Data, img.Format
	if len(data) == 0 {
		return placeholderParagraph(img), nil
	}

	widthPt, heightPt := img.Width, img.Height
	if decoded, name, err := image.Decode(bytes.NewReader(data)); err == nil {
		format = name
		bounds := decoded.Bounds()
		if bounds.Dx() > maxImagePixels {
			if scaled, ok := downscale(decoded, maxImagePixels); ok {
				data, format = scaled, "png"
			}
		}
		// Preserve the decoded aspect ratio when the declared box is
		// degenerate.
		if widthPt <= 0 || heightPt <= 0 {
			widthPt = float64(bounds.Dx())
			heightPt = float64(bounds.Dy())
		}
	}
	if format != "png" && format != "jpeg" {
		return placeholderParagraph(img), nil
	}
	if widthPt > maxImageWidth {
		heightPt = heightPt * maxImageWidth / widthPt
		widthPt = maxImageWidth
	}

	ext := "png"
	contentType := "image/png"
	if format == "jpeg" {
		ext, contentType = "jpeg", "image/jpeg"
	}
	entry := &mediaEntry{
		name:        fmt.Sprintf("image%d.%s", index+1, ext),
		contentType: contentType,
		data:        data,
	}

	cx := int64(widthPt * emuPerPoint)
	cy := int64(heightPt * emuPerPoint)
	relID := firstImageRelID + index
	inner := fmt.Sprintf(
		`<wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:docPr id="%d" name="Image %d"/>`+
			`<a:graphic><a:graphicData uri="%s">`+
			`<pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="Image %d"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="rId%d"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic></wp:inline>`,
		cx, cy, index+1, index+1, nsPic, index+1, index+1, relID, cx, cy)

	return paragraph{Runs: []run{{Drawing: &rawInline{Inner: inner}}}}, entry
}

func placeholderParagraph(img model.ImageBlock) paragraph {
	return paragraph{
		Runs: []run{{
			Text: &runText{Value: fmt.Sprintf("[Image: %.0fx%.0f]", img.Width, img.Height)},
		}},
	}
}

// downscale resizes an image to the given pixel width, preserving aspect
// ratio, and re-encodes it as PNG.
func downscale(src image.Image, width int) ([]byte, bool) {
	bounds := src.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	if height <= 0 {
		return nil, false
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// Relationship IDs: rId1 is styles.xml, images follow.
const firstImageRelID = 2

const rootRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Default Extension="png" ContentType="image/png"/>` +
	`<Default Extension="jpeg" ContentType="image/jpeg"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

func documentRelsXML(media []mediaEntry) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for i, m := range media {
		fmt.Fprintf(&sb,
			`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`,
			firstImageRelID+i, m.name)
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

const stylesXML = xml.Header +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:outlineLvl w:val="2"/></w:pPr><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>` +
	`</w:styles>`

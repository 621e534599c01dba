package docx

import "encoding/xml"

// WordprocessingML element structures for document.xml. These are
// write-only: names carry their namespace prefixes literally, with the
// namespaces declared on the root element.

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

type wordDocument struct {
	XMLName  xml.Name `xml:"w:document"`
	XmlnsW   string   `xml:"xmlns:w,attr"`
	XmlnsR   string   `xml:"xmlns:r,attr"`
	XmlnsWP  string   `xml:"xmlns:wp,attr"`
	XmlnsA   string   `xml:"xmlns:a,attr"`
	XmlnsPic string   `xml:"xmlns:pic,attr"`
	Body     wordBody `xml:"w:body"`
}

type wordBody struct {
	// Content holds paragraphs and tables in flow order; each concrete
	// type carries its own XMLName.
	Content []any
}

type paragraph struct {
	XMLName xml.Name        `xml:"w:p"`
	Props   *paragraphProps `xml:"w:pPr,omitempty"`
	Runs    []run
}

type paragraphProps struct {
	Style *valAttr `xml:"w:pStyle,omitempty"`
}

type run struct {
	XMLName xml.Name   `xml:"w:r"`
	Props   *runProps  `xml:"w:rPr,omitempty"`
	Break   *runBreak  `xml:"w:br,omitempty"`
	Drawing *rawInline `xml:"w:drawing,omitempty"`
	Text    *runText   `xml:"w:t,omitempty"`
}

type runProps struct {
	Fonts  *runFonts `xml:"w:rFonts,omitempty"`
	Bold   *emptyTag `xml:"w:b,omitempty"`
	Italic *emptyTag `xml:"w:i,omitempty"`
	Color  *valAttr  `xml:"w:color,omitempty"`
	Size   *valAttr  `xml:"w:sz,omitempty"` // half-points
}

type runFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
}

type runText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type runBreak struct {
	Type string `xml:"w:type,attr,omitempty"`
}

// rawInline carries pre-rendered DrawingML for inline images.
type rawInline struct {
	Inner string `xml:",innerxml"`
}

type valAttr struct {
	Val string `xml:"w:val,attr"`
}

type emptyTag struct{}

type wordTable struct {
	XMLName xml.Name   `xml:"w:tbl"`
	Props   tableProps `xml:"w:tblPr"`
	Rows    []tableRow
}

type tableProps struct {
	Width   tableWidth   `xml:"w:tblW"`
	Borders tableBorders `xml:"w:tblBorders"`
}

type tableWidth struct {
	W    string `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type tableBorders struct {
	Top     borderEdge `xml:"w:top"`
	Left    borderEdge `xml:"w:left"`
	Bottom  borderEdge `xml:"w:bottom"`
	Right   borderEdge `xml:"w:right"`
	InsideH borderEdge `xml:"w:insideH"`
	InsideV borderEdge `xml:"w:insideV"`
}

type borderEdge struct {
	Val string `xml:"w:val,attr"`
	Sz  string `xml:"w:sz,attr"`
}

type tableRow struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []tableCell
}

type tableCell struct {
	XMLName xml.Name   `xml:"w:tc"`
	Props   *cellProps `xml:"w:tcPr,omitempty"`
	Paras   []paragraph
}

type cellProps struct {
	Shading *cellShading `xml:"w:shd,omitempty"`
}

type cellShading struct {
	Val  string `xml:"w:val,attr"`
	Fill string `xml:"w:fill,attr"`
}

func singleBorders() tableBorders {
	edge := borderEdge{Val: "single", Sz: "4"}
	return tableBorders{
		Top: edge, Left: edge, Bottom: edge, Right: edge,
		InsideH: edge, InsideV: edge,
	}
}

package model

// ElementKind identifies the concrete type of a FlowElement.
type ElementKind int

const (
	KindTextLine ElementKind = iota
	KindTable
	KindImage
	KindPageBreak
)

func (k ElementKind) String() string {
	switch k {
	case KindTextLine:
		return "TextLine"
	case KindTable:
		return "Table"
	case KindImage:
		return "Image"
	case KindPageBreak:
		return "PageBreak"
	default:
		return "Unknown"
	}
}

// FlowElement is the tagged union over reconstructed content. The flow
// assembler's output is an ordered sequence of FlowElements per document;
// this is the single externally visible artifact of the engine.
type FlowElement interface {
	Kind() ElementKind

	// Offset returns the element's top Y coordinate on its page, used for
	// ordering assertions. PageBreak elements report the page height of the
	// page they terminate.
	Offset() float64
}

// TextLine is a merged line of text carrying the formatting of its first
// span, ready for direct emission as a paragraph or heading run.
type TextLine struct {
	Text      string
	X         float64
	Y         float64
	Width     float64
	Height    float64
	FontName  string
	FontSize  float64
	Bold      bool
	Italic    bool
	Color     Color
	PageIndex int

	// HeadingLevel is 0 for body text, 1-3 for headings.
	HeadingLevel int
}

func (t TextLine) Kind() ElementKind { return KindTextLine }
func (t TextLine) Offset() float64   { return t.Y }

// IsHeading reports whether the line was classified as a heading.
func (t TextLine) IsHeading() bool { return t.HeadingLevel > 0 }

// ImageBlock is an embedded image with its target dimensions. Images are
// independent of text structures and ordered into the flow purely by Y.
type ImageBlock struct {
	Data      []byte
	Format    string // "jpeg", "png", or "" when unknown
	X         float64
	Y         float64
	Width     float64
	Height    float64
	PageIndex int
}

func (i ImageBlock) Kind() ElementKind { return KindImage }
func (i ImageBlock) Offset() float64   { return i.Y }

// BBox returns the image's bounding box.
func (i ImageBlock) BBox() BBox {
	return BBox{X: i.X, Y: i.Y, Width: i.Width, Height: i.Height}
}

// PageBreak signals a hard page boundary in the sink format. One is emitted
// after every page except the last.
type PageBreak struct {
	// PageIndex is the 0-indexed page the break terminates.
	PageIndex int

	// PageHeight is the height of the terminated page.
	PageHeight float64
}

func (p PageBreak) Kind() ElementKind { return KindPageBreak }
func (p PageBreak) Offset() float64   { return p.PageHeight }

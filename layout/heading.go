package layout

// HeadingRatios are the minimum font-size ratios, relative to the page
// average, for heading levels 1 through 3.
type HeadingRatios [3]float64

// DefaultHeadingRatios returns the default classification thresholds.
func DefaultHeadingRatios() HeadingRatios {
	return HeadingRatios{1.5, 1.3, 1.15}
}

// HeadingClassifier assigns structural heading levels to lines based on
// font-size ratio to the page average.
type HeadingClassifier struct {
	ratios HeadingRatios
}

// NewHeadingClassifier creates a classifier with default ratios.
func NewHeadingClassifier() *HeadingClassifier {
	return &HeadingClassifier{ratios: DefaultHeadingRatios()}
}

// NewHeadingClassifierWithRatios creates a classifier with custom ratios.
func NewHeadingClassifierWithRatios(ratios HeadingRatios) *HeadingClassifier {
	return &HeadingClassifier{ratios: ratios}
}

// Classify returns the heading level for a line with the given font size on
// a page with the given average font size: 1, 2, or 3 for headings, 0 for
// body text. The thresholds are inclusive, so a font size of exactly
// ratio*average qualifies. Pure and total: callers pass a non-zero average
// (AverageFontSize never returns zero).
func (c *HeadingClassifier) Classify(fontSize, avgFontSize float64) int {
	switch {
	case fontSize >= avgFontSize*c.ratios[0]:
		return 1
	case fontSize >= avgFontSize*c.ratios[1]:
		return 2
	case fontSize >= avgFontSize*c.ratios[2]:
		return 3
	default:
		return 0
	}
}

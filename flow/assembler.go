package flow

import (
	"fmt"
	"math"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageflow/pageflow/layout"
	"github.com/pageflow/pageflow/model"
	"github.com/pageflow/pageflow/tables"
)

// Config holds assembler configuration, bundling the tolerances of the
// underlying components.
type Config struct {
	// Grouper configures line grouping.
	Grouper layout.GrouperConfig

	// Tables configures table detection.
	Tables tables.Config

	// HeadingRatios configures heading classification.
	HeadingRatios layout.HeadingRatios

	// TableAnchor is the distance from a table's YStart within which a
	// consumed line triggers emission of the table element (default: 1.0
	// points).
	TableAnchor float64

	// Workers bounds page-level parallelism in AssembleDocument. Zero or
	// negative means one worker per CPU. Pages are always reassembled in
	// strict page-index order regardless of this setting.
	Workers int
}

// DefaultConfig returns the default assembler configuration.
func DefaultConfig() Config {
	return Config{
		Grouper:       layout.DefaultGrouperConfig(),
		Tables:        tables.DefaultConfig(),
		HeadingRatios: layout.DefaultHeadingRatios(),
		TableAnchor:   1.0,
		Workers:       1,
	}
}

// Validate checks the configuration for violated preconditions. Negative
// tolerances are caller errors; everything else degrades gracefully.
func (c Config) Validate() error {
	switch {
	case c.Grouper.ToleranceY < 0:
		return fmt.Errorf("flow: negative line grouping tolerance %v", c.Grouper.ToleranceY)
	case c.Tables.RowTolerance < 0:
		return fmt.Errorf("flow: negative row grouping tolerance %v", c.Tables.RowTolerance)
	case c.Tables.ColumnProximity < 0:
		return fmt.Errorf("flow: negative column proximity %v", c.Tables.ColumnProximity)
	case c.TableAnchor < 0:
		return fmt.Errorf("flow: negative table anchor tolerance %v", c.TableAnchor)
	}
	return nil
}

// Assembler produces the final ordered FlowElement sequence for pages and
// documents.
type Assembler struct {
	config     Config
	grouper    *layout.Grouper
	detector   *tables.Detector
	classifier *layout.HeadingClassifier
	log        *zap.Logger
}

// NewAssembler creates an assembler with default configuration.
func NewAssembler() *Assembler {
	a, _ := NewAssemblerWithConfig(DefaultConfig())
	return a
}

// NewAssemblerWithConfig creates an assembler with custom configuration.
// It returns an error when the configuration violates preconditions.
func NewAssemblerWithConfig(config Config) (*Assembler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Assembler{
		config:     config,
		grouper:    layout.NewGrouperWithConfig(config.Grouper),
		detector:   tables.NewDetectorWithConfig(config.Tables),
		classifier: layout.NewHeadingClassifierWithRatios(config.HeadingRatios),
		log:        zap.NewNop(),
	}, nil
}

// WithLogger sets the logger used for per-page degradation reports and
// returns the assembler.
func (a *Assembler) WithLogger(log *zap.Logger) *Assembler {
	if log != nil {
		a.log = log
	}
	return a
}

// AssemblePage reconstructs a single page into an ordered element stream.
// Lines consumed by tables are suppressed; each table is emitted once, at
// the position of the first consumed line near its top. Images are
// interleaved by their own Y coordinate. No PageBreak is appended here.
//
// A page with no spans and no images yields an empty sequence. The result
// is pure data transformation: no I/O, no shared state.
func (a *Assembler) AssemblePage(page model.PageContent) []model.FlowElement {
	lines := a.grouper.GroupIntoLines(page.Spans)
	detected := a.detector.Detect(lines, page.Fills, page.Index)
	avgFontSize := layout.AverageFontSize(page.Spans)

	images := make([]model.ImageBlock, 0, len(page.Images))
	for _, img := range page.Images {
		if !img.BBox().IsFinite() {
			a.log.Warn("skipping image with malformed geometry",
				zap.Int("page", page.Index))
			continue
		}
		images = append(images, img)
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Y < images[j].Y
	})

	var elems []model.FlowElement
	imgIdx := 0
	flushImagesAbove := func(y float64) {
		for imgIdx < len(images) && images[imgIdx].Y < y {
			elems = append(elems, images[imgIdx])
			imgIdx++
		}
	}

	emitted := make([]bool, len(detected))
	for _, line := range lines {
		flushImagesAbove(line.Y)

		if ti := tableConsuming(detected, line.Y); ti >= 0 {
			if !emitted[ti] && math.Abs(line.Y-detected[ti].YStart) <= a.config.TableAnchor {
				elems = append(elems, detected[ti])
				emitted[ti] = true
			}
			continue
		}

		merged := a.grouper.MergeLine(line)
		merged.HeadingLevel = a.classifier.Classify(merged.FontSize, avgFontSize)
		elems = append(elems, merged)
	}
	flushImagesAbove(math.Inf(1))

	return elems
}

// AssembleDocument reconstructs all pages and concatenates them in page
// order, separated by PageBreak elements (omitted after the last page).
// Pages are processed in parallel up to Config.Workers; results are
// reassembled in strict page-index order. A panic while reconstructing one
// page is caught at the page boundary, logged, and that page emitted empty
// so a malformed page never aborts the document.
func (a *Assembler) AssembleDocument(pages []model.PageContent) []model.FlowElement {
	if len(pages) == 0 {
		return nil
	}

	workers := a.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([][]model.FlowElement, len(pages))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range pages {
		i := i
		g.Go(func() error {
			results[i] = a.assemblePageSafe(pages[i])
			return nil
		})
	}
	// Workers never return errors; degraded pages are logged instead.
	_ = g.Wait()

	var flow []model.FlowElement
	for i, page := range pages {
		flow = append(flow, results[i]...)
		if i < len(pages)-1 {
			flow = append(flow, model.PageBreak{
				PageIndex:  page.Index,
				PageHeight: page.Height,
			})
		}
	}
	return flow
}

// assemblePageSafe wraps AssemblePage with panic recovery so one bad page
// degrades to empty output instead of failing the whole document.
func (a *Assembler) assemblePageSafe(page model.PageContent) (elems []model.FlowElement) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Warn("page reconstruction failed, emitting empty page",
				zap.Int("page", page.Index),
				zap.Any("panic", r))
			elems = nil
		}
	}()
	return a.AssemblePage(page)
}

// tableConsuming returns the index of the first table whose vertical range
// contains y, or -1.
func tableConsuming(detected []*model.TableStructure, y float64) int {
	for i, t := range detected {
		if t.ConsumesY(y) {
			return i
		}
	}
	return -1
}

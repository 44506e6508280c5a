// Package layout decides how slide sections are placed on the canvas
// and estimates whether text fits its region.
package layout

import (
	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// Weighting for mixed slides: the Content band above, the columnar or
// grid block below.
const (
	mixedContentWeight = 0.3
	mixedMainWeight    = 0.7

	readingPassageShare   = 0.65
	readingQuestionsShare = 0.35
)

// Engine classifies slides and runs the text fit heuristics. It is
// stateless apart from its geometry.
type Engine struct {
	geom entities.Geometry
}

// NewEngine creates a layout engine with the given geometry.
func NewEngine(geom entities.Geometry) *Engine {
	return &Engine{geom: geom}
}

var _ ports.LayoutEngine = (*Engine)(nil)

// Classify picks the arrangement for a slide. Precedence: reading,
// four-box, two-column, single column. A populated Content section on
// top of a columnar or grid slide turns the decision into a mixed
// layout with Content in a 30% band above the main block.
func (e *Engine) Classify(slide *entities.Slide) entities.LayoutDecision {
	g := e.geom

	reading := slide.Has(entities.SectionLeftTop) && slide.Has(entities.SectionLeftBottom) &&
		!slide.Has(entities.SectionRightTop) && !slide.Has(entities.SectionRightBottom)
	fourBox := slide.Has(entities.SectionLeftTop) || slide.Has(entities.SectionRightTop) ||
		slide.Has(entities.SectionLeftBottom) || slide.Has(entities.SectionRightBottom)
	twoColumn := slide.Has(entities.SectionLeft) || slide.Has(entities.SectionRight)
	hasContent := slide.Has(entities.SectionContent)

	switch {
	case reading:
		return entities.LayoutDecision{
			Kind:    entities.LayoutReading,
			Regions: e.readingRegions(g.ContentTop, g.ContentHeight),
		}

	case fourBox && hasContent:
		return e.mixed(entities.LayoutFourBox, slide)

	case fourBox:
		return entities.LayoutDecision{
			Kind:    entities.LayoutFourBox,
			Regions: e.gridRegions(slide, g.ContentTop, g.ContentHeight),
		}

	case twoColumn && hasContent:
		return e.mixed(entities.LayoutTwoColumn, slide)

	case twoColumn:
		return entities.LayoutDecision{
			Kind:    entities.LayoutTwoColumn,
			Regions: e.columnRegions(slide, g.ContentTop, g.ContentHeight),
		}

	case hasContent:
		return entities.LayoutDecision{
			Kind: entities.LayoutSingleColumn,
			Regions: []entities.Region{{
				Section: entities.SectionContent,
				Left:    g.ContentLeft,
				Top:     g.ContentTop,
				Width:   g.ContentWidth,
				Height:  g.ContentHeight,
			}},
		}

	default:
		return entities.LayoutDecision{Kind: entities.LayoutEmpty}
	}
}

// mixed stacks a Content band over the main block. Band heights come
// from the weighted split of the gap-free height:
// height = (total - gap) * weight / (sum of weights).
func (e *Engine) mixed(mainKind entities.LayoutKind, slide *entities.Slide) entities.LayoutDecision {
	g := e.geom

	usable := g.ContentHeight - g.RowGap
	contentHeight := usable * mixedContentWeight / (mixedContentWeight + mixedMainWeight)
	mainHeight := usable * mixedMainWeight / (mixedContentWeight + mixedMainWeight)
	mainTop := g.ContentTop + contentHeight + g.RowGap

	regions := []entities.Region{{
		Section: entities.SectionContent,
		Left:    g.ContentLeft,
		Top:     g.ContentTop,
		Width:   g.ContentWidth,
		Height:  contentHeight,
	}}

	if mainKind == entities.LayoutFourBox {
		regions = append(regions, e.gridRegions(slide, mainTop, mainHeight)...)
	} else {
		regions = append(regions, e.columnRegions(slide, mainTop, mainHeight)...)
	}

	return entities.LayoutDecision{Kind: entities.LayoutMixed, Regions: regions}
}

// readingRegions places the passage over the questions with a 65/35
// split, the row gap carved out of the questions band.
func (e *Engine) readingRegions(top, height float64) []entities.Region {
	g := e.geom
	passageHeight := height * readingPassageShare
	questionsHeight := height*readingQuestionsShare - g.RowGap

	return []entities.Region{
		{
			Section: entities.SectionLeftTop,
			Left:    g.ContentLeft,
			Top:     top,
			Width:   g.ContentWidth,
			Height:  passageHeight,
		},
		{
			Section: entities.SectionLeftBottom,
			Left:    g.ContentLeft,
			Top:     top + passageHeight + g.RowGap,
			Width:   g.ContentWidth,
			Height:  questionsHeight,
		},
	}
}

// gridRegions lays the four quadrants out in a 2x2 grid within the
// given band. Only populated quadrants get a region.
func (e *Engine) gridRegions(slide *entities.Slide, top, height float64) []entities.Region {
	g := e.geom
	colWidth := (g.ContentWidth - g.ColumnGap) / 2
	rowHeight := (height - g.RowGap) / 2
	rightLeft := g.ContentLeft + colWidth + g.ColumnGap
	bottomTop := top + rowHeight + g.RowGap

	cells := []struct {
		section   entities.SectionKind
		left, top float64
	}{
		{entities.SectionLeftTop, g.ContentLeft, top},
		{entities.SectionRightTop, rightLeft, top},
		{entities.SectionLeftBottom, g.ContentLeft, bottomTop},
		{entities.SectionRightBottom, rightLeft, bottomTop},
	}

	var regions []entities.Region
	for _, c := range cells {
		if !slide.Has(c.section) {
			continue
		}
		regions = append(regions, entities.Region{
			Section: c.section,
			Left:    c.left,
			Top:     c.top,
			Width:   colWidth,
			Height:  rowHeight,
		})
	}
	return regions
}

// columnRegions places Left and Right side by side within the given
// band. Only populated columns get a region.
func (e *Engine) columnRegions(slide *entities.Slide, top, height float64) []entities.Region {
	g := e.geom
	colWidth := (g.ContentWidth - g.ColumnGap) / 2

	var regions []entities.Region
	if slide.Has(entities.SectionLeft) {
		regions = append(regions, entities.Region{
			Section: entities.SectionLeft,
			Left:    g.ContentLeft,
			Top:     top,
			Width:   colWidth,
			Height:  height,
		})
	}
	if slide.Has(entities.SectionRight) {
		regions = append(regions, entities.Region{
			Section: entities.SectionRight,
			Left:    g.ContentLeft + colWidth + g.ColumnGap,
			Top:     top,
			Width:   colWidth,
			Height:  height,
		})
	}
	return regions
}

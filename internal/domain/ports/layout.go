package ports

import "github.com/lessondeck/lessondeck/internal/domain/entities"

// LayoutEngine decides how a slide's sections are arranged on the
// canvas and estimates whether text fits its region.
type LayoutEngine interface {
	// Classify picks a layout and computes region geometry for a slide
	Classify(slide *entities.Slide) entities.LayoutDecision

	// Estimate reports whether text at a font size fits a region
	Estimate(text string, fontSize int, width, height float64) TextEstimate

	// AutoSize returns the effective font size for a text length,
	// never larger than the base size
	AutoSize(textLength, baseFontSize int) int
}

// TextEstimate is the result of a fit check for one text block.
type TextEstimate struct {
	LinesNeeded    int  `json:"lines_needed"`
	LinesAvailable int  `json:"lines_available"`
	Overflows      bool `json:"overflows"`
}

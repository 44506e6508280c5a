package entities

// LayoutKind names the overall arrangement chosen for a slide body.
type LayoutKind string

const (
	LayoutSingleColumn LayoutKind = "single_column"
	LayoutTwoColumn    LayoutKind = "two_column"
	LayoutFourBox      LayoutKind = "four_box"
	LayoutReading      LayoutKind = "reading"
	LayoutMixed        LayoutKind = "mixed"
	LayoutEmpty        LayoutKind = "empty"
)

// Region is a rectangular placement for one section, in inches from
// the slide's top-left corner.
type Region struct {
	Section SectionKind `json:"section"`
	Left    float64     `json:"left"`
	Top     float64     `json:"top"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
}

// LayoutDecision is the classifier's output for one slide: the chosen
// arrangement and the concrete region per populated section.
type LayoutDecision struct {
	Kind    LayoutKind `json:"kind"`
	Regions []Region   `json:"regions"`
}

// Region returns the placement for a section, if the decision
// includes one.
func (d LayoutDecision) Region(kind SectionKind) (Region, bool) {
	for _, r := range d.Regions {
		if r.Section == kind {
			return r, true
		}
	}
	return Region{}, false
}

// Geometry holds the fixed slide dimensions used for placement.
// All values are inches on a 16:9 slide.
type Geometry struct {
	SlideWidth    float64
	SlideHeight   float64
	ContentLeft   float64
	ContentTop    float64
	ContentWidth  float64
	ContentHeight float64
	ColumnGap     float64
	RowGap        float64
}

// DefaultGeometry returns the standard 16:9 slide geometry with a
// content area below the title band.
func DefaultGeometry() Geometry {
	return Geometry{
		SlideWidth:    13.33,
		SlideHeight:   7.5,
		ContentLeft:   1.5,
		ContentTop:    1.5,
		ContentWidth:  10.5,
		ContentHeight: 5.0,
		ColumnGap:     0.4,
		RowGap:        0.3,
	}
}

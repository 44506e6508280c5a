package entities

import "strings"

// SectionKind identifies a named content slot on a slide.
type SectionKind string

const (
	SectionContent     SectionKind = "content"
	SectionLeft        SectionKind = "left"
	SectionRight       SectionKind = "right"
	SectionLeftTop     SectionKind = "left_top"
	SectionRightTop    SectionKind = "right_top"
	SectionLeftBottom  SectionKind = "left_bottom"
	SectionRightBottom SectionKind = "right_bottom"
	SectionNotes       SectionKind = "notes"
)

// SectionKinds lists all recognized sections in declaration order.
var SectionKinds = []SectionKind{
	SectionContent,
	SectionLeft,
	SectionRight,
	SectionLeftTop,
	SectionRightTop,
	SectionLeftBottom,
	SectionRightBottom,
	SectionNotes,
}

// BodySectionKinds lists the sections that occupy the slide body
// (everything except speaker notes).
var BodySectionKinds = []SectionKind{
	SectionContent,
	SectionLeft,
	SectionRight,
	SectionLeftTop,
	SectionRightTop,
	SectionLeftBottom,
	SectionRightBottom,
}

// Line is a single raw line of section content. Step marks lines that
// carried a [step] marker in the source: they render as separately
// revealed elements. The flag is captured before tag normalization
// because normalization strips the marker from the text.
type Line struct {
	Text string `json:"text"`
	Step bool   `json:"step,omitempty"`
}

// Slide represents a single slide parsed from a lesson document.
type Slide struct {
	// Index is the slide position in the deck (0-based)
	Index int `json:"index"`

	// Title is taken from the slide's Title: line
	Title string `json:"title"`

	// Template is an optional named layout template from the Template: line
	Template string `json:"template,omitempty"`

	// Sections maps each section kind to its ordered content lines.
	// Lines render top-to-bottom in insertion order.
	Sections map[SectionKind][]Line `json:"sections"`
}

// NewSlide creates an empty slide with initialized section storage.
func NewSlide() *Slide {
	return &Slide{Sections: make(map[SectionKind][]Line)}
}

// Append adds a raw line to the given section.
func (s *Slide) Append(kind SectionKind, line Line) {
	if s.Sections == nil {
		s.Sections = make(map[SectionKind][]Line)
	}
	s.Sections[kind] = append(s.Sections[kind], line)
}

// Section returns the ordered lines of a section (nil if empty).
func (s *Slide) Section(kind SectionKind) []Line {
	if s.Sections == nil {
		return nil
	}
	return s.Sections[kind]
}

// SectionText returns a section's lines as plain strings.
func (s *Slide) SectionText(kind SectionKind) []string {
	lines := s.Section(kind)
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// Has reports whether a section holds at least one line.
func (s *Slide) Has(kind SectionKind) bool {
	return len(s.Section(kind)) > 0
}

// HasBodyContent reports whether any body section is populated.
// Notes do not count: a slide with only speaker notes renders as
// title-only.
func (s *Slide) HasBodyContent() bool {
	for _, kind := range BodySectionKinds {
		if s.Has(kind) {
			return true
		}
	}
	return false
}

// PopulatedSections returns the body sections that hold content, in
// declaration order.
func (s *Slide) PopulatedSections() []SectionKind {
	var kinds []SectionKind
	for _, kind := range BodySectionKinds {
		if s.Has(kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// HasTitle reports whether the slide carries a non-blank title.
func (s *Slide) HasTitle() bool {
	return strings.TrimSpace(s.Title) != ""
}

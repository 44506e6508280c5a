package entities

import "fmt"

// Deck represents a complete parsed lesson deck.
type Deck struct {
	// Title is the deck title, taken from the first slide when present
	Title string `json:"title"`

	// SourcePath records where the deck was loaded from (empty for
	// in-memory content)
	SourcePath string `json:"source_path,omitempty"`

	// Slides contains all deck slides in document order
	Slides []Slide `json:"slides"`
}

// SlideCount returns the total number of slides.
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// GetSlideByIndex returns a slide by its index (0-based).
func (d *Deck) GetSlideByIndex(index int) (*Slide, error) {
	if index < 0 || index >= len(d.Slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(d.Slides)-1)
	}
	return &d.Slides[index], nil
}

// Warnings scans the deck and returns human-readable advisory issues.
// The parser itself never fails on malformed content, so missing
// titles or empty slides surface here instead of as errors.
func (d *Deck) Warnings() []string {
	var issues []string

	if len(d.Slides) == 0 {
		issues = append(issues, "document contains no slides")
		return issues
	}

	for i, slide := range d.Slides {
		num := i + 1
		if !slide.HasTitle() {
			issues = append(issues, fmt.Sprintf("slide %d: missing title", num))
		} else if len(slide.Title) > 100 {
			issues = append(issues, fmt.Sprintf("slide %d: title very long (%d chars)", num, len(slide.Title)))
		}

		if !slide.HasBodyContent() {
			issues = append(issues, fmt.Sprintf("slide %d: no content defined", num))
		}
	}

	return issues
}

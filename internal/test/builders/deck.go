// Package builders provides fluent test data builders for deck entities.
package builders

import (
	"fmt"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck *entities.Deck
}

// NewDeckBuilder creates a new deck builder with sensible defaults
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: &entities.Deck{
			Title:  "Test Deck",
			Slides: []entities.Slide{},
		},
	}
}

// WithTitle sets the deck title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.deck.Title = title
	return b
}

// WithSourcePath sets the deck source path
func (b *DeckBuilder) WithSourcePath(path string) *DeckBuilder {
	b.deck.SourcePath = path
	return b
}

// WithSlide adds a single slide to the deck
func (b *DeckBuilder) WithSlide(slide entities.Slide) *DeckBuilder {
	b.deck.Slides = append(b.deck.Slides, slide)
	return b
}

// WithSlideCount adds the specified number of default slides
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 0; i < count; i++ {
		slide := NewSlideBuilder().
			WithIndex(i).
			WithTitle(fmt.Sprintf("Slide %d", i+1)).
			WithContent("Content line").
			Build()
		b.deck.Slides = append(b.deck.Slides, *slide)
	}
	return b
}

// Build creates the final Deck entity
func (b *DeckBuilder) Build() *entities.Deck {
	// Copy slides to prevent mutation across tests
	return &entities.Deck{
		Title:      b.deck.Title,
		SourcePath: b.deck.SourcePath,
		Slides:     append([]entities.Slide{}, b.deck.Slides...),
	}
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide *entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	slide := entities.NewSlide()
	slide.Title = "Test Slide"
	return &SlideBuilder{slide: slide}
}

// WithIndex sets the slide index
func (b *SlideBuilder) WithIndex(index int) *SlideBuilder {
	b.slide.Index = index
	return b
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithTemplate sets the slide template name
func (b *SlideBuilder) WithTemplate(template string) *SlideBuilder {
	b.slide.Template = template
	return b
}

// WithContent adds lines to the content section
func (b *SlideBuilder) WithContent(lines ...string) *SlideBuilder {
	return b.WithSection(entities.SectionContent, lines...)
}

// WithNotes adds lines to the speaker notes section
func (b *SlideBuilder) WithNotes(lines ...string) *SlideBuilder {
	return b.WithSection(entities.SectionNotes, lines...)
}

// WithSection adds lines to an arbitrary section
func (b *SlideBuilder) WithSection(kind entities.SectionKind, lines ...string) *SlideBuilder {
	for _, line := range lines {
		b.slide.Append(kind, entities.Line{Text: line})
	}
	return b
}

// WithStepLine adds a line revealed as a separate step
func (b *SlideBuilder) WithStepLine(kind entities.SectionKind, text string) *SlideBuilder {
	b.slide.Append(kind, entities.Line{Text: text, Step: true})
	return b
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() *entities.Slide {
	copied := entities.NewSlide()
	copied.Index = b.slide.Index
	copied.Title = b.slide.Title
	copied.Template = b.slide.Template
	for kind, lines := range b.slide.Sections {
		copied.Sections[kind] = append([]entities.Line{}, lines...)
	}
	return copied
}

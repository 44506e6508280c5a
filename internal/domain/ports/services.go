package ports

import (
	"context"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
)

// RenderedSlide represents a slide after rendering
type RenderedSlide struct {
	Slide     *entities.Slide         `json:"slide"`
	Layout    entities.LayoutDecision `json:"layout"`
	HTML      string                  `json:"html"`
	NotesHTML string                  `json:"notes_html,omitempty"`
	Warnings  []string                `json:"warnings,omitempty"`
}

// DeckParser defines the interface for parsing lesson markup documents
type DeckParser interface {
	// Parse converts markup content into a deck. Parsing is total:
	// malformed input degrades, it never errors.
	Parse(content []byte) *entities.Deck
}

// SlideRenderer defines the interface for rendering slides to HTML
type SlideRenderer interface {
	// RenderSlide converts a slide and its layout decision to preview HTML
	RenderSlide(slide *entities.Slide, layout entities.LayoutDecision, styles entities.StyleConfig) (*RenderedSlide, error)
}

// PageRenderer renders the complete preview page for a deck
type PageRenderer interface {
	RenderDeckPage(title string, slides []RenderedSlide) ([]byte, error)
}

// DeckService defines the main service interface for lesson decks
type DeckService interface {
	// LoadDeck loads a deck from a file path
	LoadDeck(ctx context.Context, path string) (*entities.Deck, error)

	// ParseDeck parses markup content into a deck
	ParseDeck(ctx context.Context, content []byte) (*entities.Deck, error)

	// RenderSlides renders all slides in a deck
	RenderSlides(ctx context.Context, deck *entities.Deck, styles entities.StyleConfig) ([]RenderedSlide, error)

	// ValidateDeck returns advisory warnings for a deck
	ValidateDeck(ctx context.Context, deck *entities.Deck) []string

	// WatchDeck watches a deck file for changes
	WatchDeck(ctx context.Context, path string) (<-chan FileChangeEvent, error)
}

// Package services implements the core business logic coordinating
// parsing, layout, rendering, and live preview.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// DeckService implements the business logic for lesson decks
type DeckService struct {
	parser   ports.DeckParser
	layout   ports.LayoutEngine
	renderer ports.SlideRenderer
	watcher  ports.FileWatcher
	logger   *slog.Logger
}

// NewDeckService creates a new deck service instance
func NewDeckService(
	parser ports.DeckParser,
	layout ports.LayoutEngine,
	renderer ports.SlideRenderer,
	watcher ports.FileWatcher,
	logger *slog.Logger,
) *DeckService {
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckService{
		parser:   parser,
		layout:   layout,
		renderer: renderer,
		watcher:  watcher,
		logger:   logger.With("service", "deck"),
	}
}

var _ ports.DeckService = (*DeckService)(nil)

// LoadDeck loads a deck from a file path
func (s *DeckService) LoadDeck(ctx context.Context, path string) (*entities.Deck, error) {
	if path == "" {
		return nil, errors.New("deck path cannot be empty")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("deck file not found: %s", path)
		}
		return nil, fmt.Errorf("checking deck file: %w", err)
	}

	content, err := os.ReadFile(path) // #nosec G304 - path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("reading deck file: %w", err)
	}

	deck, err := s.ParseDeck(ctx, content)
	if err != nil {
		return nil, err
	}
	deck.SourcePath = path

	s.logger.Debug("Deck loaded",
		slog.String("path", path),
		slog.Int("slides", deck.SlideCount()),
	)

	return deck, nil
}

// ParseDeck parses markup content into a deck. Parsing is total, so
// the only failure is empty input.
func (s *DeckService) ParseDeck(ctx context.Context, content []byte) (*entities.Deck, error) {
	if len(content) == 0 {
		return nil, errors.New("deck content cannot be empty")
	}

	deck := s.parser.Parse(content)

	for i := range deck.Slides {
		deck.Slides[i].Index = i
	}

	return deck, nil
}

// RenderSlides classifies and renders every slide in a deck
func (s *DeckService) RenderSlides(ctx context.Context, deck *entities.Deck, styles entities.StyleConfig) ([]ports.RenderedSlide, error) {
	if deck == nil {
		return nil, errors.New("deck cannot be nil")
	}

	rendered := make([]ports.RenderedSlide, 0, len(deck.Slides))

	for i := range deck.Slides {
		slide := &deck.Slides[i]

		decision := s.layout.Classify(slide)
		renderedSlide, err := s.renderer.RenderSlide(slide, decision, styles)
		if err != nil {
			return nil, fmt.Errorf("rendering slide %d: %w", i+1, err)
		}

		for _, w := range renderedSlide.Warnings {
			s.logger.Warn("Overflow detected", slog.String("warning", w))
		}

		rendered = append(rendered, *renderedSlide)
	}

	return rendered, nil
}

// ValidateDeck returns advisory warnings for a deck
func (s *DeckService) ValidateDeck(ctx context.Context, deck *entities.Deck) []string {
	if deck == nil {
		return []string{"no deck loaded"}
	}
	return deck.Warnings()
}

// WatchDeck watches a deck file for changes
func (s *DeckService) WatchDeck(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	if path == "" {
		return nil, errors.New("deck path cannot be empty")
	}
	if s.watcher == nil {
		return nil, errors.New("no file watcher configured")
	}

	events, err := s.watcher.Watch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}

	return events, nil
}

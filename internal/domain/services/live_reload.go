package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// LiveReloadService coordinates file watching with re-rendering and
// WebSocket notifications: on every change the deck is reparsed, the
// preview page rebuilt, and connected browsers told to reload.
type LiveReloadService struct {
	decks     ports.DeckService
	pages     ports.PageRenderer
	publisher ports.DeckPublisher
	styles    entities.StyleConfig
	logger    *slog.Logger

	mu          sync.Mutex
	watching    bool
	watchCancel context.CancelFunc
	deckPath    string
}

// NewLiveReloadService creates a new live reload service
func NewLiveReloadService(
	decks ports.DeckService,
	pages ports.PageRenderer,
	publisher ports.DeckPublisher,
	styles entities.StyleConfig,
	logger *slog.Logger,
) *LiveReloadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LiveReloadService{
		decks:     decks,
		pages:     pages,
		publisher: publisher,
		styles:    styles,
		logger:    logger.With("service", "live_reload"),
	}
}

// Start begins watching the deck file
func (s *LiveReloadService) Start(ctx context.Context, filePath string) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return errors.New("already watching")
	}
	s.watching = true
	s.deckPath = filePath
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.watchCancel = cancel
	s.mu.Unlock()

	events, err := s.decks.WatchDeck(watchCtx, filePath)
	if err != nil {
		cancel()
		s.mu.Lock()
		s.watching = false
		s.watchCancel = nil
		s.mu.Unlock()
		return fmt.Errorf("starting watcher: %w", err)
	}

	go s.handleEvents(watchCtx, events)

	return nil
}

// Stop stops watching
func (s *LiveReloadService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.watching {
		return nil
	}

	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}

	s.watching = false
	return nil
}

// IsWatching returns whether the service is currently watching
func (s *LiveReloadService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// handleEvents processes file change events
func (s *LiveReloadService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			s.logger.Info("File change detected",
				slog.String("path", event.Path),
				slog.String("type", event.Type.String()),
				slog.Time("timestamp", event.Timestamp),
			)

			if event.Type == ports.Deleted {
				s.logger.Warn("Deck file deleted, keeping last rendered version",
					slog.String("path", event.Path),
				)
				continue
			}

			if err := s.reloadDeck(ctx); err != nil {
				s.logger.Error("Failed to reload deck",
					slog.String("error", err.Error()),
					slog.String("path", event.Path),
				)
				s.notifyError(event, err)
				continue
			}

			updateEvent := ports.UpdateEvent{
				Type:      ports.EventTypeReload,
				Timestamp: event.Timestamp,
				Data: map[string]interface{}{
					"file": event.Path,
					"type": event.Type.String(),
				},
			}

			if err := s.publisher.NotifyClients(updateEvent); err != nil {
				s.logger.Warn("Failed to notify WebSocket clients",
					slog.String("error", err.Error()),
					slog.String("file", event.Path),
				)
			} else {
				s.logger.Debug("WebSocket clients notified",
					slog.String("file", event.Path),
				)
			}
		}
	}
}

// reloadDeck reparses and re-renders the deck from disk, then installs
// it on the server.
func (s *LiveReloadService) reloadDeck(ctx context.Context) error {
	s.mu.Lock()
	path := s.deckPath
	s.mu.Unlock()

	if path == "" {
		return errors.New("no deck path set")
	}

	deck, err := s.decks.LoadDeck(ctx, path)
	if err != nil {
		return fmt.Errorf("loading deck: %w", err)
	}

	slides, err := s.decks.RenderSlides(ctx, deck, s.styles)
	if err != nil {
		return fmt.Errorf("rendering slides: %w", err)
	}

	page, err := s.pages.RenderDeckPage(deck.Title, slides)
	if err != nil {
		return fmt.Errorf("rendering deck page: %w", err)
	}

	s.publisher.SetDeck(deck, slides, page)

	s.logger.Info("Deck reloaded",
		slog.Int("slides", deck.SlideCount()),
		slog.Int("page_bytes", len(page)),
		slog.String("path", path),
	)

	return nil
}

// notifyError pushes an error event so open previews can surface it
func (s *LiveReloadService) notifyError(event ports.FileChangeEvent, reloadErr error) {
	_ = s.publisher.NotifyClients(ports.UpdateEvent{
		Type:      ports.EventTypeError,
		Timestamp: event.Timestamp,
		Data: map[string]interface{}{
			"file":  event.Path,
			"error": reloadErr.Error(),
		},
	})
}

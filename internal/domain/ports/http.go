package ports

import (
	"context"
	"time"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
)

// HTTPServer defines the interface for the preview server
type HTTPServer interface {
	Start(ctx context.Context, port int, host string) error
	Stop(ctx context.Context) error
	NotifyClients(event UpdateEvent) error
	IsRunning() bool
}

// DeckPublisher is a preview server that can swap the deck it serves
type DeckPublisher interface {
	HTTPServer
	SetDeck(deck *entities.Deck, slides []RenderedSlide, page []byte)
}

// UpdateEvent represents an event sent to WebSocket clients
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// UpdateEventType constants
const (
	EventTypeReload = "reload"
	EventTypeError  = "error"
)

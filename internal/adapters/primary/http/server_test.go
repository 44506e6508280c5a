package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

func TestNewServerNilConfigPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewServer(nil)
	})
}

func TestServerNotRunningByDefault(t *testing.T) {
	s := newTestServer(t)
	assert.False(t, s.IsRunning())
}

func TestNotifyClientsNotRunning(t *testing.T) {
	s := newTestServer(t)
	err := s.NotifyClients(ports.UpdateEvent{Type: ports.EventTypeReload})
	assert.Error(t, err)
}

func TestStopNotRunning(t *testing.T) {
	s := newTestServer(t)
	err := s.Stop(context.Background())
	assert.Error(t, err)
}

func TestSetDeckSwapsContent(t *testing.T) {
	s := newTestServer(t)
	deck, rendered := testDeck()

	s.SetDeck(deck, rendered, []byte("page one"))
	assert.Equal(t, deck, s.GetDeck())

	other := &entities.Deck{Title: "Other"}
	s.SetDeck(other, nil, []byte("page two"))
	assert.Equal(t, "Other", s.GetDeck().Title)
}

func TestNewServerWithLogging(t *testing.T) {
	s := NewServerWithLogging(
		&entities.ServerConfig{Port: 1976},
		&entities.LoggingConfig{Level: "warn"},
	)
	assert.Equal(t, entities.LogLevelWarn, s.logger.level)

	verbose := NewServerWithLogging(
		&entities.ServerConfig{Port: 1976},
		&entities.LoggingConfig{Level: "warn", Verbose: true},
	)
	assert.Equal(t, entities.LogLevelDebug, verbose.logger.level)
}

func TestHTTPLoggerLevels(t *testing.T) {
	l := NewHTTPLoggerWithLevel("test", entities.LogLevelWarn)
	assert.False(t, l.shouldLog(entities.LogLevelDebug))
	assert.False(t, l.shouldLog(entities.LogLevelInfo))
	assert.True(t, l.shouldLog(entities.LogLevelWarn))
	assert.True(t, l.shouldLog(entities.LogLevelError))

	l.SetLevel(entities.LogLevelDebug)
	assert.True(t, l.shouldLog(entities.LogLevelDebug))
}

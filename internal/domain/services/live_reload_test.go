package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

type MockDeckService struct {
	mock.Mock
}

func (m *MockDeckService) LoadDeck(ctx context.Context, path string) (*entities.Deck, error) {
	args := m.Called(ctx, path)
	if d := args.Get(0); d != nil {
		return d.(*entities.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckService) ParseDeck(ctx context.Context, content []byte) (*entities.Deck, error) {
	args := m.Called(ctx, content)
	if d := args.Get(0); d != nil {
		return d.(*entities.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckService) RenderSlides(ctx context.Context, deck *entities.Deck, styles entities.StyleConfig) ([]ports.RenderedSlide, error) {
	args := m.Called(ctx, deck, styles)
	if slides := args.Get(0); slides != nil {
		return slides.([]ports.RenderedSlide), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckService) ValidateDeck(ctx context.Context, deck *entities.Deck) []string {
	args := m.Called(ctx, deck)
	if w := args.Get(0); w != nil {
		return w.([]string)
	}
	return nil
}

func (m *MockDeckService) WatchDeck(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	args := m.Called(ctx, path)
	if ch := args.Get(0); ch != nil {
		return ch.(<-chan ports.FileChangeEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPageRenderer struct {
	mock.Mock
}

func (m *MockPageRenderer) RenderDeckPage(title string, slides []ports.RenderedSlide) ([]byte, error) {
	args := m.Called(title, slides)
	if p := args.Get(0); p != nil {
		return p.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDeckPublisher struct {
	mock.Mock
}

func (m *MockDeckPublisher) Start(ctx context.Context, port int, host string) error {
	args := m.Called(ctx, port, host)
	return args.Error(0)
}

func (m *MockDeckPublisher) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeckPublisher) NotifyClients(event ports.UpdateEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockDeckPublisher) IsRunning() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockDeckPublisher) SetDeck(deck *entities.Deck, slides []ports.RenderedSlide, page []byte) {
	m.Called(deck, slides, page)
}

func newReloadFixture() (*MockDeckService, *MockPageRenderer, *MockDeckPublisher, *LiveReloadService) {
	decks := new(MockDeckService)
	pages := new(MockPageRenderer)
	publisher := new(MockDeckPublisher)
	svc := NewLiveReloadService(decks, pages, publisher, entities.DefaultStyleConfig(), nil)
	return decks, pages, publisher, svc
}

func TestLiveReloadStartAlreadyWatching(t *testing.T) {
	decks, _, _, svc := newReloadFixture()

	events := make(chan ports.FileChangeEvent)
	decks.On("WatchDeck", mock.Anything, "lesson.txt").
		Return((<-chan ports.FileChangeEvent)(events), nil)

	require.NoError(t, svc.Start(context.Background(), "lesson.txt"))
	defer func() { _ = svc.Stop() }()

	err := svc.Start(context.Background(), "lesson.txt")
	assert.Error(t, err)
	assert.True(t, svc.IsWatching())
}

func TestLiveReloadStartWatcherError(t *testing.T) {
	decks, _, _, svc := newReloadFixture()

	decks.On("WatchDeck", mock.Anything, "lesson.txt").
		Return(nil, errors.New("watch failed"))

	err := svc.Start(context.Background(), "lesson.txt")
	require.Error(t, err)
	assert.False(t, svc.IsWatching())
}

func TestLiveReloadStop(t *testing.T) {
	decks, _, _, svc := newReloadFixture()

	events := make(chan ports.FileChangeEvent)
	decks.On("WatchDeck", mock.Anything, "lesson.txt").
		Return((<-chan ports.FileChangeEvent)(events), nil)

	require.NoError(t, svc.Start(context.Background(), "lesson.txt"))
	require.NoError(t, svc.Stop())
	assert.False(t, svc.IsWatching())

	// Stopping twice is harmless
	assert.NoError(t, svc.Stop())
}

func TestLiveReloadOnChange(t *testing.T) {
	decks, pages, publisher, svc := newReloadFixture()

	deck := &entities.Deck{Title: "Lesson"}
	rendered := []ports.RenderedSlide{{HTML: "<div></div>"}}
	page := []byte("<html></html>")

	events := make(chan ports.FileChangeEvent, 1)
	decks.On("WatchDeck", mock.Anything, "lesson.txt").
		Return((<-chan ports.FileChangeEvent)(events), nil)
	decks.On("LoadDeck", mock.Anything, "lesson.txt").Return(deck, nil)
	decks.On("RenderSlides", mock.Anything, deck, mock.Anything).Return(rendered, nil)
	pages.On("RenderDeckPage", "Lesson", rendered).Return(page, nil)

	published := make(chan struct{})
	publisher.On("SetDeck", deck, rendered, page).Return()
	publisher.On("NotifyClients", mock.MatchedBy(func(e ports.UpdateEvent) bool {
		return e.Type == ports.EventTypeReload
	})).Run(func(args mock.Arguments) {
		close(published)
	}).Return(nil)

	require.NoError(t, svc.Start(context.Background(), "lesson.txt"))
	defer func() { _ = svc.Stop() }()

	events <- ports.FileChangeEvent{Path: "lesson.txt", Type: ports.Modified, Timestamp: time.Now()}

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("reload was never published")
	}

	publisher.AssertCalled(t, "SetDeck", deck, rendered, page)
}

func TestLiveReloadLoadErrorNotifies(t *testing.T) {
	decks, _, publisher, svc := newReloadFixture()

	events := make(chan ports.FileChangeEvent, 1)
	decks.On("WatchDeck", mock.Anything, "lesson.txt").
		Return((<-chan ports.FileChangeEvent)(events), nil)
	decks.On("LoadDeck", mock.Anything, "lesson.txt").
		Return(nil, errors.New("file vanished"))

	notified := make(chan struct{})
	publisher.On("NotifyClients", mock.MatchedBy(func(e ports.UpdateEvent) bool {
		return e.Type == ports.EventTypeError
	})).Run(func(args mock.Arguments) {
		close(notified)
	}).Return(nil)

	require.NoError(t, svc.Start(context.Background(), "lesson.txt"))
	defer func() { _ = svc.Stop() }()

	events <- ports.FileChangeEvent{Path: "lesson.txt", Type: ports.Modified, Timestamp: time.Now()}

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("error was never published")
	}
}

func TestLiveReloadDeletionSkipsReload(t *testing.T) {
	decks, _, _, svc := newReloadFixture()

	events := make(chan ports.FileChangeEvent, 1)
	decks.On("WatchDeck", mock.Anything, "lesson.txt").
		Return((<-chan ports.FileChangeEvent)(events), nil)

	require.NoError(t, svc.Start(context.Background(), "lesson.txt"))
	defer func() { _ = svc.Stop() }()

	events <- ports.FileChangeEvent{Path: "lesson.txt", Type: ports.Deleted, Timestamp: time.Now()}

	// Give the event loop a moment; LoadDeck must never be called
	time.Sleep(50 * time.Millisecond)
	decks.AssertNotCalled(t, "LoadDeck", mock.Anything, mock.Anything)
}

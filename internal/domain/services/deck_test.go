package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// Mock implementations

type MockDeckParser struct {
	mock.Mock
}

func (m *MockDeckParser) Parse(content []byte) *entities.Deck {
	args := m.Called(content)
	return args.Get(0).(*entities.Deck)
}

type MockLayoutEngine struct {
	mock.Mock
}

func (m *MockLayoutEngine) Classify(slide *entities.Slide) entities.LayoutDecision {
	args := m.Called(slide)
	return args.Get(0).(entities.LayoutDecision)
}

func (m *MockLayoutEngine) Estimate(text string, fontSize int, width, height float64) ports.TextEstimate {
	args := m.Called(text, fontSize, width, height)
	return args.Get(0).(ports.TextEstimate)
}

func (m *MockLayoutEngine) AutoSize(textLength, baseFontSize int) int {
	args := m.Called(textLength, baseFontSize)
	return args.Int(0)
}

type MockSlideRenderer struct {
	mock.Mock
}

func (m *MockSlideRenderer) RenderSlide(slide *entities.Slide, layout entities.LayoutDecision, styles entities.StyleConfig) (*ports.RenderedSlide, error) {
	args := m.Called(slide, layout, styles)
	if rs := args.Get(0); rs != nil {
		return rs.(*ports.RenderedSlide), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFileWatcher struct {
	mock.Mock
}

func (m *MockFileWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	args := m.Called(ctx, path)
	if ch := args.Get(0); ch != nil {
		return ch.(<-chan ports.FileChangeEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileWatcher) Stop() error {
	args := m.Called()
	return args.Error(0)
}

func titledDeck(titles ...string) *entities.Deck {
	deck := &entities.Deck{}
	for _, title := range titles {
		slide := entities.NewSlide()
		slide.Title = title
		slide.Append(entities.SectionContent, entities.Line{Text: "body"})
		deck.Slides = append(deck.Slides, *slide)
	}
	if len(deck.Slides) > 0 {
		deck.Title = deck.Slides[0].Title
	}
	return deck
}

func TestLoadDeck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lesson.txt")
	require.NoError(t, os.WriteFile(path, []byte("Slide 1\nTitle: Intro\n"), 0o600))

	parser := new(MockDeckParser)
	parser.On("Parse", mock.Anything).Return(titledDeck("Intro"))

	svc := NewDeckService(parser, nil, nil, nil, nil)

	deck, err := svc.LoadDeck(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, deck.SourcePath)
	assert.Equal(t, "Intro", deck.Title)
	parser.AssertExpectations(t)
}

func TestLoadDeckMissingFile(t *testing.T) {
	svc := NewDeckService(new(MockDeckParser), nil, nil, nil, nil)

	_, err := svc.LoadDeck(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadDeckEmptyPath(t *testing.T) {
	svc := NewDeckService(new(MockDeckParser), nil, nil, nil, nil)

	_, err := svc.LoadDeck(context.Background(), "")
	assert.Error(t, err)
}

func TestParseDeckAssignsIndices(t *testing.T) {
	parser := new(MockDeckParser)
	parser.On("Parse", mock.Anything).Return(titledDeck("One", "Two", "Three"))

	svc := NewDeckService(parser, nil, nil, nil, nil)

	deck, err := svc.ParseDeck(context.Background(), []byte("content"))
	require.NoError(t, err)
	for i, slide := range deck.Slides {
		assert.Equal(t, i, slide.Index)
	}
}

func TestParseDeckEmptyContent(t *testing.T) {
	svc := NewDeckService(new(MockDeckParser), nil, nil, nil, nil)

	_, err := svc.ParseDeck(context.Background(), nil)
	assert.Error(t, err)
}

func TestRenderSlides(t *testing.T) {
	deck := titledDeck("One", "Two")
	decision := entities.LayoutDecision{Kind: entities.LayoutSingleColumn}

	layoutEngine := new(MockLayoutEngine)
	layoutEngine.On("Classify", mock.Anything).Return(decision)

	renderer := new(MockSlideRenderer)
	renderer.On("RenderSlide", mock.Anything, decision, mock.Anything).
		Return(&ports.RenderedSlide{HTML: "<div></div>", Layout: decision}, nil)

	svc := NewDeckService(nil, layoutEngine, renderer, nil, nil)

	rendered, err := svc.RenderSlides(context.Background(), deck, entities.DefaultStyleConfig())
	require.NoError(t, err)
	assert.Len(t, rendered, 2)
	layoutEngine.AssertNumberOfCalls(t, "Classify", 2)
}

func TestRenderSlidesNilDeck(t *testing.T) {
	svc := NewDeckService(nil, nil, nil, nil, nil)

	_, err := svc.RenderSlides(context.Background(), nil, entities.DefaultStyleConfig())
	assert.Error(t, err)
}

func TestRenderSlidesRendererError(t *testing.T) {
	deck := titledDeck("One")

	layoutEngine := new(MockLayoutEngine)
	layoutEngine.On("Classify", mock.Anything).Return(entities.LayoutDecision{})

	renderer := new(MockSlideRenderer)
	renderer.On("RenderSlide", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("template exploded"))

	svc := NewDeckService(nil, layoutEngine, renderer, nil, nil)

	_, err := svc.RenderSlides(context.Background(), deck, entities.DefaultStyleConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering slide 1")
}

func TestValidateDeck(t *testing.T) {
	svc := NewDeckService(nil, nil, nil, nil, nil)

	assert.Contains(t, svc.ValidateDeck(context.Background(), nil), "no deck loaded")

	deck := titledDeck("Fine")
	assert.Empty(t, svc.ValidateDeck(context.Background(), deck))

	untitled := entities.NewSlide()
	deck.Slides = append(deck.Slides, *untitled)
	warnings := svc.ValidateDeck(context.Background(), deck)
	assert.NotEmpty(t, warnings)
}

func TestWatchDeck(t *testing.T) {
	events := make(chan ports.FileChangeEvent)
	watcher := new(MockFileWatcher)
	watcher.On("Watch", mock.Anything, "lesson.txt").
		Return((<-chan ports.FileChangeEvent)(events), nil)

	svc := NewDeckService(nil, nil, nil, watcher, nil)

	ch, err := svc.WatchDeck(context.Background(), "lesson.txt")
	require.NoError(t, err)
	assert.NotNil(t, ch)
}

func TestWatchDeckNoWatcher(t *testing.T) {
	svc := NewDeckService(nil, nil, nil, nil, nil)

	_, err := svc.WatchDeck(context.Background(), "lesson.txt")
	assert.Error(t, err)
}

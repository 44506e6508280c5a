package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lessondeck/lessondeck/internal/adapters/secondary/layout"
	"github.com/lessondeck/lessondeck/internal/domain/entities"
)

func newTestRenderer(t *testing.T) (*HTMLRenderer, *layout.Engine) {
	t.Helper()
	engine := layout.NewEngine(entities.DefaultGeometry())
	r, err := NewHTMLRenderer(engine, entities.DefaultGeometry())
	require.NoError(t, err)
	return r, engine
}

func renderSlide(t *testing.T, slide *entities.Slide) *string {
	t.Helper()
	r, engine := newTestRenderer(t)
	rendered, err := r.RenderSlide(slide, engine.Classify(slide), entities.DefaultStyleConfig())
	require.NoError(t, err)
	return &rendered.HTML
}

func TestRenderSlideNil(t *testing.T) {
	r, _ := newTestRenderer(t)
	_, err := r.RenderSlide(nil, entities.LayoutDecision{}, entities.DefaultStyleConfig())
	assert.Error(t, err)
}

func TestRenderSlideTitleOnly(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Just a Title"

	html := *renderSlide(t, slide)
	assert.Contains(t, html, "Just a Title")
	assert.NotContains(t, html, "class=\"region")
}

func TestRenderSlideContent(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Lesson"
	slide.Append(entities.SectionContent, entities.Line{Text: "Plain sentence"})

	html := *renderSlide(t, slide)
	assert.Contains(t, html, "region-content")
	assert.Contains(t, html, "Plain sentence")
	assert.Contains(t, html, `data-label="Content"`)
}

func TestRenderSlideStyledSegments(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Vocab"
	slide.Append(entities.SectionContent, entities.Line{Text: "A [vocabulary]term[/vocabulary] here"})

	html := *renderSlide(t, slide)
	assert.Contains(t, html, "<span style=\"color:#008000;font-size:24pt;font-weight:bold;\">term</span>")
	assert.Contains(t, html, "A ")
	assert.Contains(t, html, " here")
}

func TestRenderSlideStepLines(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Steps"
	slide.Append(entities.SectionContent, entities.Line{Text: "[step] revealed later", Step: true})
	slide.Append(entities.SectionContent, entities.Line{Text: "always visible"})

	html := *renderSlide(t, slide)
	assert.Contains(t, html, `class="step" hidden`)
	assert.Contains(t, html, "revealed later")
	// The marker itself never reaches the page
	assert.NotContains(t, html, "[step]")
}

func TestRenderSlideListFormatting(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "List"
	slide.Append(entities.SectionContent, entities.Line{Text: "- first"})
	slide.Append(entities.SectionContent, entities.Line{Text: "- second"})

	html := *renderSlide(t, slide)
	assert.Contains(t, html, "<ul>")
	assert.Contains(t, html, "<li>first</li>")
	// Bullet markers are stripped; the list supplies its own
	assert.NotContains(t, html, "- first")
}

func TestRenderSlideMathNotation(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Math"
	slide.Append(entities.SectionContent, entities.Line{Text: "E = mc^2 and x <= y"})

	html := *renderSlide(t, slide)
	assert.Contains(t, html, "mc²")
	assert.Contains(t, html, "≤")
}

func TestRenderSlideTwoColumnPlacement(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Columns"
	slide.Append(entities.SectionLeft, entities.Line{Text: "left side"})
	slide.Append(entities.SectionRight, entities.Line{Text: "right side"})

	html := *renderSlide(t, slide)
	assert.Contains(t, html, "region-left")
	assert.Contains(t, html, "region-right")
	assert.Contains(t, html, "position:absolute;")
	// Percent geometry, not inches
	assert.Contains(t, html, "%;")
	assert.NotContains(t, html, "in;")
}

func TestRenderSlideNotes(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Notes"
	slide.Append(entities.SectionContent, entities.Line{Text: "body"})
	slide.Append(entities.SectionNotes, entities.Line{Text: "Drill **pronunciation** first."})

	r, engine := newTestRenderer(t)
	rendered, err := r.RenderSlide(slide, engine.Classify(slide), entities.DefaultStyleConfig())
	require.NoError(t, err)

	assert.Contains(t, rendered.NotesHTML, "<strong>pronunciation</strong>")
	// Notes are not part of the slide body
	assert.NotContains(t, rendered.HTML, "pronunciation")
}

func TestRenderSlideNotesSanitized(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Unsafe"
	slide.Append(entities.SectionNotes, entities.Line{Text: `<script>alert("x")</script> fine`})

	r, engine := newTestRenderer(t)
	rendered, err := r.RenderSlide(slide, engine.Classify(slide), entities.DefaultStyleConfig())
	require.NoError(t, err)

	assert.NotContains(t, rendered.NotesHTML, "<script>")
	assert.Contains(t, rendered.NotesHTML, "fine")
}

func TestRenderSlideOverflowWarning(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Crowded"
	long := strings.Repeat("many words fill this region beyond its capacity ", 60)
	slide.Append(entities.SectionContent, entities.Line{Text: long})

	r, engine := newTestRenderer(t)
	rendered, err := r.RenderSlide(slide, engine.Classify(slide), entities.DefaultStyleConfig())
	require.NoError(t, err)

	require.NotEmpty(t, rendered.Warnings)
	assert.Contains(t, rendered.Warnings[0], "needs")
}

func TestRenderSlideWarningsDisabled(t *testing.T) {
	slide := entities.NewSlide()
	slide.Title = "Crowded"
	long := strings.Repeat("many words fill this region beyond its capacity ", 60)
	slide.Append(entities.SectionContent, entities.Line{Text: long})

	styles := entities.DefaultStyleConfig()
	styles.WarnOnOverflow = false

	r, engine := newTestRenderer(t)
	rendered, err := r.RenderSlide(slide, engine.Classify(slide), styles)
	require.NoError(t, err)
	assert.Empty(t, rendered.Warnings)
}

func TestRenderSlideNumberToggle(t *testing.T) {
	slide := entities.NewSlide()
	slide.Index = 4
	slide.Title = "Numbered"

	r, engine := newTestRenderer(t)
	styles := entities.DefaultStyleConfig()

	rendered, err := r.RenderSlide(slide, engine.Classify(slide), styles)
	require.NoError(t, err)
	assert.Contains(t, rendered.HTML, `<div class="slide-number">5</div>`)

	styles.ShowSlideNumbers = false
	rendered, err = r.RenderSlide(slide, engine.Classify(slide), styles)
	require.NoError(t, err)
	assert.NotContains(t, rendered.HTML, "slide-number")
}

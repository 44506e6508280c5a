// Package renderer turns parsed slides and their layout decisions
// into the HTML used by the live preview.
package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lessondeck/lessondeck/internal/adapters/secondary/markup"
	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// HTMLRenderer renders slides to positioned preview HTML
type HTMLRenderer struct {
	layout    ports.LayoutEngine
	geom      entities.Geometry
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	templates *template.Template
	titler    cases.Caser
}

// NewHTMLRenderer creates a slide renderer bound to a layout engine.
func NewHTMLRenderer(layoutEngine ports.LayoutEngine, geom entities.Geometry) (*HTMLRenderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
		),
	)

	tmpl, err := template.New("slide").Parse(slideTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing slide template: %w", err)
	}
	if _, err := tmpl.New("deck").Parse(deckTemplate); err != nil {
		return nil, fmt.Errorf("parsing deck template: %w", err)
	}

	return &HTMLRenderer{
		layout:    layoutEngine,
		geom:      geom,
		md:        md,
		sanitizer: bluemonday.UGCPolicy(),
		templates: tmpl,
		titler:    cases.Title(language.English),
	}, nil
}

var _ ports.SlideRenderer = (*HTMLRenderer)(nil)

// slideData feeds the per-slide template.
type slideData struct {
	Title      string
	Number     int
	FontFamily string
	TitleStyle template.CSS
	Background template.CSS
	ShowNumber bool
	Regions    []regionData
}

type regionData struct {
	Label     string
	Kind      string
	Placement template.CSS
	FontSize  int
	IsList    bool
	Lines     []lineData
}

type lineData struct {
	Step     bool
	Segments []segmentData
}

type segmentData struct {
	Text  string
	Style template.CSS
}

// RenderSlide converts a slide and its layout decision to HTML.
func (r *HTMLRenderer) RenderSlide(slide *entities.Slide, layout entities.LayoutDecision, styles entities.StyleConfig) (*ports.RenderedSlide, error) {
	if slide == nil {
		return nil, errors.New("slide cannot be nil")
	}

	data := slideData{
		Title:      slide.Title,
		Number:     slide.Index + 1,
		FontFamily: styles.FontFamily,
		TitleStyle: template.CSS(fmt.Sprintf("color:%s;font-size:%dpt;", styles.TitleColor.Hex(), styles.TitleFontSize)),
		Background: template.CSS("background-color:" + styles.BackgroundColor.Hex() + ";"),
		ShowNumber: styles.ShowSlideNumbers,
	}

	var warnings []string
	for _, region := range layout.Regions {
		rd, warning := r.renderRegion(slide, region, styles)
		data.Regions = append(data.Regions, rd)
		if warning != "" && styles.WarnOnOverflow {
			warnings = append(warnings, warning)
		}
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "slide", data); err != nil {
		return nil, fmt.Errorf("executing slide template: %w", err)
	}

	return &ports.RenderedSlide{
		Slide:     slide,
		Layout:    layout,
		HTML:      buf.String(),
		NotesHTML: r.renderNotes(slide.SectionText(entities.SectionNotes)),
		Warnings:  warnings,
	}, nil
}

// renderRegion builds one positioned region and an overflow warning
// when the fit estimate says the text will not fit.
func (r *HTMLRenderer) renderRegion(slide *entities.Slide, region entities.Region, styles entities.StyleConfig) (regionData, string) {
	lines := slide.Section(region.Section)
	texts := slide.SectionText(region.Section)
	isList := markup.IsListContent(texts)

	joined := markup.StripTags(strings.Join(texts, " "))
	fontSize := r.layout.AutoSize(len(joined), styles.BodyFontSize)

	var warning string
	est := r.layout.Estimate(joined, fontSize, region.Width, region.Height)
	if est.Overflows {
		warning = fmt.Sprintf("slide %d %s: needs %d lines, has %d",
			slide.Index+1, r.label(region.Section), est.LinesNeeded, est.LinesAvailable)
	}

	rd := regionData{
		Label:     r.label(region.Section),
		Kind:      string(region.Section),
		Placement: r.placement(region),
		FontSize:  fontSize,
		IsList:    isList,
	}

	for _, line := range lines {
		text := line.Text
		if isList {
			text = markup.CleanBulletMarker(text)
		}

		ld := lineData{Step: line.Step}
		for _, seg := range markup.Segment(text) {
			sd := segmentData{Text: markup.ConvertMathNotation(seg.Text)}
			if !seg.Plain() {
				sd.Style = tagCSS(styles.StyleFor(seg.Style))
			}
			ld.Segments = append(ld.Segments, sd)
		}
		rd.Lines = append(rd.Lines, ld)
	}

	return rd, warning
}

// placement converts inch geometry to percentage CSS so the preview
// scales with the viewport.
func (r *HTMLRenderer) placement(region entities.Region) template.CSS {
	pct := func(v, total float64) float64 { return v / total * 100 }
	return template.CSS(fmt.Sprintf(
		"left:%.2f%%;top:%.2f%%;width:%.2f%%;height:%.2f%%;",
		pct(region.Left, r.geom.SlideWidth),
		pct(region.Top, r.geom.SlideHeight),
		pct(region.Width, r.geom.SlideWidth),
		pct(region.Height, r.geom.SlideHeight),
	))
}

// label turns a section kind into a human-readable box label.
func (r *HTMLRenderer) label(kind entities.SectionKind) string {
	return r.titler.String(strings.ReplaceAll(string(kind), "_", " "))
}

// renderNotes converts speaker notes through markdown and sanitizes
// the result. Teachers paste from all kinds of sources, so the output
// is filtered even though the preview is local.
func (r *HTMLRenderer) renderNotes(notes []string) string {
	if len(notes) == 0 {
		return ""
	}

	var buf bytes.Buffer
	source := strings.Join(notes, "\n\n")
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		// Fall back to plain text paragraphs on conversion failure
		return "<p>" + template.HTMLEscapeString(source) + "</p>"
	}

	return r.sanitizer.Sanitize(buf.String())
}

// tagCSS builds the inline style for one styled segment.
func tagCSS(ts entities.TagStyle) template.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, "color:%s;font-size:%dpt;", ts.Color.Hex(), ts.FontSize)
	if ts.Bold {
		b.WriteString("font-weight:bold;")
	}
	if ts.Italic {
		b.WriteString("font-style:italic;")
	}
	return template.CSS(b.String())
}

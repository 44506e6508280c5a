package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// RenderDeckPage renders the complete preview page: all slides, the
// navigation controls, and the live-reload script.
func (r *HTMLRenderer) RenderDeckPage(title string, slides []ports.RenderedSlide) ([]byte, error) {
	type deckSlide struct {
		Index     int
		HTML      template.HTML
		NotesHTML template.HTML
	}

	data := struct {
		Title  string
		Total  int
		Slides []deckSlide
	}{
		Title: title,
		Total: len(slides),
	}
	for i, s := range slides {
		data.Slides = append(data.Slides, deckSlide{
			Index:     i,
			HTML:      template.HTML(s.HTML),      // #nosec G203 - produced by our own slide template
			NotesHTML: template.HTML(s.NotesHTML), // #nosec G203 - sanitized by bluemonday
		})
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "deck", data); err != nil {
		return nil, fmt.Errorf("executing deck template: %w", err)
	}

	return buf.Bytes(), nil
}

const slideTemplate = `<div class="slide-canvas" style="font-family:{{.FontFamily}};{{.Background}}">
  <h1 class="slide-title" style="{{.TitleStyle}}">{{.Title}}</h1>
  {{range .Regions}}
  <div class="region region-{{.Kind}}" data-label="{{.Label}}" style="position:absolute;{{.Placement}}font-size:{{.FontSize}}pt;">
    {{if .IsList}}
    <ul>
      {{range .Lines}}
      <li{{if .Step}} class="step" hidden{{end}}>{{range .Segments}}{{if .Style}}<span style="{{.Style}}">{{.Text}}</span>{{else}}{{.Text}}{{end}}{{end}}</li>
      {{end}}
    </ul>
    {{else}}
    {{range .Lines}}
    <p{{if .Step}} class="step" hidden{{end}}>{{range .Segments}}{{if .Style}}<span style="{{.Style}}">{{.Text}}</span>{{else}}{{.Text}}{{end}}{{end}}</p>
    {{end}}
    {{end}}
  </div>
  {{end}}
  {{if .ShowNumber}}<div class="slide-number">{{.Number}}</div>{{end}}
</div>`

const deckTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; background: #222; }
    .slide {
      display: none;
      position: relative;
      width: 100vw;
      height: 56.25vw;
      max-height: 100vh;
      max-width: 177.78vh;
      margin: 0 auto;
      overflow: hidden;
    }
    .slide.active { display: block; }
    .slide-canvas { position: absolute; inset: 0; }
    .slide-title { position: absolute; left: 11.25%; top: 8%; width: 78.75%; margin: 0; }
    .region { overflow: hidden; }
    .region p, .region li { margin: 0 0 0.4em; }
    .step[hidden] { display: none; }
    .slide-number {
      position: absolute; right: 2%; bottom: 2%;
      font-size: 12pt; color: #888;
    }
    .deck-counter {
      position: fixed; left: 1em; bottom: 1em;
      color: #aaa; font: 14px sans-serif;
    }
  </style>
</head>
<body>
  {{range .Slides}}
  <div class="slide{{if eq .Index 0}} active{{end}}" data-index="{{.Index}}">
    {{.HTML}}
    {{if .NotesHTML}}<div class="speaker-notes" style="display:none;">{{.NotesHTML}}</div>{{end}}
  </div>
  {{end}}
  <div class="deck-counter"><span id="current">1</span> / {{.Total}}</div>
  <script>
    (function() {
      var slides = document.querySelectorAll('.slide');
      var current = 0;

      function show(idx) {
        if (idx < 0 || idx >= slides.length) return;
        slides[current].classList.remove('active');
        current = idx;
        slides[current].classList.add('active');
        document.getElementById('current').textContent = current + 1;
      }

      function nextStep() {
        var hidden = slides[current].querySelector('.step[hidden]');
        if (hidden) { hidden.removeAttribute('hidden'); return true; }
        return false;
      }

      document.addEventListener('keydown', function(e) {
        if (e.key === 'ArrowRight' || e.key === ' ') {
          if (!nextStep()) show(current + 1);
        } else if (e.key === 'ArrowLeft') {
          show(current - 1);
        }
      });

      function connect() {
        var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
        var ws = new WebSocket(proto + location.host + '/ws');
        ws.onmessage = function(msg) {
          var event = JSON.parse(msg.data);
          if (event.type === 'reload') location.reload();
        };
        ws.onclose = function() { setTimeout(connect, 1000); };
      }
      connect();
    })();
  </script>
</body>
</html>`

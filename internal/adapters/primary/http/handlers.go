package http

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// DeckResponse represents the slides API response
type DeckResponse struct {
	Title  string          `json:"title"`
	Source string          `json:"source,omitempty"`
	Count  int             `json:"count"`
	Slides []SlideResponse `json:"slides"`
}

// SlideResponse represents a single slide in the API response
type SlideResponse struct {
	Index    int      `json:"index"`
	Title    string   `json:"title"`
	Template string   `json:"template,omitempty"`
	Layout   string   `json:"layout"`
	HTML     string   `json:"html"`
	Notes    string   `json:"notes,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ConfigResponse represents the configuration API response
type ConfigResponse struct {
	Version      string `json:"version"`
	WebSocketURL string `json:"websocket_url"`
	LiveReload   bool   `json:"live_reload"`
	Environment  string `json:"environment"`
}

// Version is overridden at build time via ldflags.
var Version = "dev"

const fallbackPage = `<!DOCTYPE html>
<html><head><title>lessondeck</title></head>
<body><h1>No deck loaded</h1><p>Point lessondeck at a lesson file to preview it.</p></body></html>`

// handlePreview serves the rendered deck page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	page := s.page
	s.mu.RUnlock()

	if len(page) == 0 {
		page = []byte(fallbackPage)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		s.logger.Error("Failed to write preview response: %v", err)
	}
}

// handleSlides returns the deck as JSON.
func (s *Server) handleSlides(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	deck := s.deck
	slides := s.slides
	s.mu.RUnlock()

	response := DeckResponse{Slides: []SlideResponse{}}
	if deck != nil {
		response.Title = deck.Title
		response.Source = deck.SourcePath
		response.Count = deck.SlideCount()
	}

	for _, rs := range slides {
		sr := SlideResponse{
			Layout:   string(rs.Layout.Kind),
			HTML:     rs.HTML,
			Notes:    rs.NotesHTML,
			Warnings: rs.Warnings,
		}
		if rs.Slide != nil {
			sr.Index = rs.Slide.Index
			sr.Title = rs.Slide.Title
			sr.Template = rs.Slide.Template
		}
		response.Slides = append(response.Slides, sr)
	}

	s.writeJSON(w, response)
}

// handleStyles returns the active style configuration.
func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	styles := s.styles
	s.mu.RUnlock()

	s.writeJSON(w, styles)
}

// handleConfig returns the server configuration.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, ConfigResponse{
		Version:      Version,
		WebSocketURL: "/ws",
		LiveReload:   true,
		Environment:  s.config.Environment,
	})
}

// handleHealth reports liveness and connection count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"clients": s.connMgr.Count(),
		"time":    time.Now(),
	})
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode JSON response: %v", err)
	}
}

// handleError writes a sanitized error response. The real error only
// reaches the server log.
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	var message string
	switch status {
	case http.StatusBadRequest:
		message = "Invalid request"
	case http.StatusNotFound:
		message = "Resource not found"
	case http.StatusMethodNotAllowed:
		message = "Method not allowed"
	case http.StatusTooManyRequests:
		message = "Too many requests"
	case http.StatusInternalServerError:
		message = "Internal server error"
	default:
		message = "An error occurred"
	}

	s.logger.Error("HTTP error (status %d): %v", status, err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	}); encodeErr != nil {
		s.logger.Error("Failed to encode error response: %v", encodeErr)
	}
}

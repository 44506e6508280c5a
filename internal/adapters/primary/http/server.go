// Package http serves the rendered deck preview and pushes live
// reload events to connected browsers.
package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// HTTPLogger provides leveled logging for the HTTP server
type HTTPLogger struct {
	component string
	level     entities.LogLevel
}

// NewHTTPLogger creates a logger at info level.
func NewHTTPLogger(component string) *HTTPLogger {
	return &HTTPLogger{
		component: component,
		level:     entities.LogLevelInfo,
	}
}

// NewHTTPLoggerWithLevel creates a logger at a specific level.
func NewHTTPLoggerWithLevel(component string, level entities.LogLevel) *HTTPLogger {
	return &HTTPLogger{
		component: component,
		level:     level,
	}
}

var logLevelRank = map[entities.LogLevel]int{
	entities.LogLevelDebug: 0,
	entities.LogLevelInfo:  1,
	entities.LogLevelWarn:  2,
	entities.LogLevelError: 3,
}

func (l *HTTPLogger) shouldLog(msgLevel entities.LogLevel) bool {
	return logLevelRank[msgLevel] >= logLevelRank[l.level]
}

// Debug logs debug messages
func (l *HTTPLogger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelDebug) {
		log.Printf("[DEBUG] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Info logs informational messages
func (l *HTTPLogger) Info(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) {
		log.Printf("[INFO] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Warn logs warning messages
func (l *HTTPLogger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelWarn) {
		log.Printf("[WARN] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Error logs error messages
func (l *HTTPLogger) Error(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelError) {
		log.Printf("[ERROR] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// SetLevel updates the logging level.
func (l *HTTPLogger) SetLevel(level entities.LogLevel) {
	l.level = level
}

// Server implements the HTTPServer interface. It holds the most
// recently rendered deck; the live reload service swaps the content
// on file changes.
type Server struct {
	server  *http.Server
	connMgr *ConnectionManager
	config  *entities.ServerConfig
	logger  *HTTPLogger

	mu      sync.RWMutex
	running bool
	page    []byte
	deck    *entities.Deck
	slides  []ports.RenderedSlide
	styles  entities.StyleConfig
}

// NewServer creates a new preview server.
// config must not be nil - use config.GetDefaultConfig().Server if needed
func NewServer(config *entities.ServerConfig) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}
	return &Server{
		connMgr: NewConnectionManager(),
		config:  config,
		logger:  NewHTTPLogger("server"),
		styles:  entities.DefaultStyleConfig(),
	}
}

// NewServerWithLogging creates a preview server with logging configuration.
func NewServerWithLogging(config *entities.ServerConfig, loggingConfig *entities.LoggingConfig) *Server {
	s := NewServer(config)

	level := entities.LogLevelInfo
	if loggingConfig != nil {
		level = loggingConfig.GetLevel()
		if loggingConfig.Verbose {
			level = entities.LogLevelDebug
		}
	}
	s.logger = NewHTTPLoggerWithLevel("server", level)

	return s
}

var _ ports.HTTPServer = (*Server)(nil)

// SetDeck installs a freshly rendered deck: the full preview page plus
// the per-slide data backing the API endpoints.
func (s *Server) SetDeck(deck *entities.Deck, slides []ports.RenderedSlide, page []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
	s.slides = slides
	s.page = page
}

// SetStyles installs the style configuration exposed on /api/styles.
func (s *Server) SetStyles(styles entities.StyleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.styles = styles
}

// GetDeck returns the currently served deck.
func (s *Server) GetDeck() *entities.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	go s.connMgr.Run(ctx)

	router := s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	handler := c.Handler(router)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  s.config.GetReadTimeout() * 4,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("Preview server starting on %s:%d", host, port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// NotifyClients sends an update event to all connected clients.
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.Broadcast(event)
	return nil
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ws", s.handleWebSocket)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/slides", s.handleSlides).Methods(http.MethodGet)
	api.HandleFunc("/styles", s.handleStyles).Methods(http.MethodGet)
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/", s.handlePreview).Methods(http.MethodGet)

	// Middleware order: security -> rate limiting -> logging -> recovery
	handler := securityHeadersMiddleware(router)
	handler = rateLimitMiddleware(handler)
	handler = createLoggingMiddleware(handler, s.logger)
	handler = createRecoveryMiddleware(handler, s.logger)

	return handler
}

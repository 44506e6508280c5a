package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	httpadapter "github.com/lessondeck/lessondeck/internal/adapters/primary/http"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/browser"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/config"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/layout"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/markup"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/renderer"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/watcher"
	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/services"
)

var (
	// Serve command flags
	servePort      int
	serveHost      string
	serveNoBrowser bool
	serveStyles    string
	serveNoWatch   bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve a live preview of a lesson file",
	Long: `Start a local HTTP server showing the rendered slide deck.
The preview reloads automatically whenever the lesson file changes.

Example:
  lessondeck serve lesson.txt
  lessondeck serve lesson.txt --port 8080 --no-browser
  lessondeck serve lesson.txt --styles classroom.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "Don't open browser automatically (overrides config)")
	serveCmd.Flags().StringVarP(&serveStyles, "styles", "s", "", "Style config YAML (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Disable file watching and live reload")
}

func runServe(cmd *cobra.Command, args []string) error {
	deckPath := args[0]

	cfg, err := loadServeConfig(cmd, deckPath)
	if err != nil {
		return err
	}

	logger := newSlogLogger(cfg.Logging)

	styles, err := loadStyles(cfg, deckPath)
	if err != nil {
		return err
	}

	app, err := buildApplication(cfg, styles, logger)
	if err != nil {
		return err
	}

	return app.run(cmd.Context(), deckPath, cfg)
}

// loadServeConfig assembles the effective configuration with precedence:
// CLI flags > env vars > local config > global config > defaults.
func loadServeConfig(cmd *cobra.Command, deckPath string) (*entities.Config, error) {
	ctx := cmd.Context()
	loader := config.NewTOMLLoader()
	merger := config.NewConfigMerger()

	globalConfig, err := loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	// An explicit --config file replaces the directory-local lookup
	var localConfig *entities.Config
	if cfgPath, _ := cmd.Flags().GetString("config"); cfgPath != "" {
		localConfig, err = loader.LoadFile(ctx, cfgPath)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", cfgPath, err)
		}
	} else {
		localConfig, err = loader.LoadLocal(ctx, filepath.Dir(deckPath))
		if err != nil {
			return nil, fmt.Errorf("loading local config: %w", err)
		}
	}

	cfg := merger.Merge(config.GetDefaultConfig(), globalConfig, localConfig)
	cfg = merger.ApplyEnvVars(cfg)

	flags := map[string]interface{}{}
	if cmd.Flags().Changed("port") {
		flags["port"] = servePort
	}
	if cmd.Flags().Changed("host") {
		flags["host"] = serveHost
	}
	if cmd.Flags().Changed("no-browser") {
		flags["no-browser"] = serveNoBrowser
	}
	if cmd.Flags().Changed("styles") {
		flags["styles"] = serveStyles
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		flags["verbose"] = true
	}
	cfg = merger.ApplyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadStyles resolves and loads the style configuration.
func loadStyles(cfg *entities.Config, deckPath string) (entities.StyleConfig, error) {
	styleLoader := config.NewYAMLStyleLoader()
	stylePath := cfg.Preview.GetStylePath(filepath.Dir(deckPath))
	styles, err := styleLoader.Load(context.Background(), stylePath)
	if err != nil {
		return entities.StyleConfig{}, fmt.Errorf("loading styles: %w", err)
	}
	return styles, nil
}

// newSlogLogger builds the application logger from logging config.
func newSlogLogger(cfg entities.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.GetLevel() {
	case entities.LogLevelDebug:
		level = slog.LevelDebug
	case entities.LogLevelWarn:
		level = slog.LevelWarn
	case entities.LogLevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// application bundles the wired components for the serve command.
type application struct {
	decks      *services.DeckService
	liveReload *services.LiveReloadService
	server     *httpadapter.Server
	pages      *renderer.HTMLRenderer
	styles     entities.StyleConfig
	logger     *slog.Logger
}

// buildApplication wires parser, layout, renderer, watcher, and server.
func buildApplication(cfg *entities.Config, styles entities.StyleConfig, logger *slog.Logger) (*application, error) {
	geom := entities.DefaultGeometry()
	engine := layout.NewEngine(geom)

	slideRenderer, err := renderer.NewHTMLRenderer(engine, geom)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	fileWatcher := watcher.NewPollingWatcher(cfg.Watcher.GetInterval(), cfg.Watcher.GetDebounce())
	deckService := services.NewDeckService(markup.NewParser(), engine, slideRenderer, fileWatcher, logger)

	server := httpadapter.NewServerWithLogging(&cfg.Server, &cfg.Logging)
	server.SetStyles(styles)

	liveReload := services.NewLiveReloadService(deckService, slideRenderer, server, styles, logger)

	return &application{
		decks:      deckService,
		liveReload: liveReload,
		server:     server,
		pages:      slideRenderer,
		styles:     styles,
		logger:     logger,
	}, nil
}

// run parses the deck, starts the server and watcher, and blocks until
// the context is cancelled.
func (a *application) run(ctx context.Context, deckPath string, cfg *entities.Config) error {
	deck, err := a.decks.LoadDeck(ctx, deckPath)
	if err != nil {
		return err
	}

	for _, warning := range a.decks.ValidateDeck(ctx, deck) {
		a.logger.Warn("Deck issue", slog.String("warning", warning))
	}

	slides, err := a.decks.RenderSlides(ctx, deck, a.styles)
	if err != nil {
		return fmt.Errorf("rendering deck: %w", err)
	}

	page, err := a.pages.RenderDeckPage(deck.Title, slides)
	if err != nil {
		return fmt.Errorf("rendering deck page: %w", err)
	}
	a.server.SetDeck(deck, slides, page)

	if err := a.server.Start(ctx, cfg.Server.Port, cfg.Server.Host); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	if !serveNoWatch {
		if err := a.liveReload.Start(ctx, deckPath); err != nil {
			return fmt.Errorf("starting live reload: %w", err)
		}
	}

	url := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	a.logger.Info("Preview running",
		slog.String("url", url),
		slog.Int("slides", deck.SlideCount()),
	)

	if cfg.Browser.AutoOpen {
		launcher := browser.NewLauncher()
		if err := launcher.Launch(url, false); err != nil {
			a.logger.Warn("Failed to open browser", slog.String("error", err.Error()))
		}
	}

	<-ctx.Done()

	a.logger.Info("Shutting down")
	_ = a.liveReload.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeout())
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during shutdown", slog.String("error", err.Error()))
	}

	return nil
}

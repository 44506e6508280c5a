package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lessondeck/lessondeck/internal/adapters/secondary/config"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/layout"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/markup"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/renderer"
	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
	"github.com/lessondeck/lessondeck/internal/domain/services"
)

var (
	buildOutput string
	buildHTML   bool
	buildStyles string
)

// buildCmd renders a lesson file once, without serving it.
var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Render a lesson file to a deck document",
	Long: `Parse a lesson file and write the rendered deck to a file or stdout.
The default output is the deck document as JSON (slides, layout
decisions, rendered HTML fragments); --html emits a self-contained
preview page instead.

Example:
  lessondeck build lesson.txt -o deck.json
  lessondeck build lesson.txt --html -o deck.html`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file (default: stdout)")
	buildCmd.Flags().BoolVar(&buildHTML, "html", false, "Emit a standalone HTML page instead of JSON")
	buildCmd.Flags().StringVarP(&buildStyles, "styles", "s", "", "Style config YAML")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	deckPath := args[0]

	stylePath := buildStyles
	if stylePath != "" && !filepath.IsAbs(stylePath) {
		// Relative style paths resolve against the working directory,
		// matching how the flag is typed on the command line
		abs, err := filepath.Abs(stylePath)
		if err == nil {
			stylePath = abs
		}
	}
	styles, err := config.NewYAMLStyleLoader().Load(ctx, stylePath)
	if err != nil {
		return fmt.Errorf("loading styles: %w", err)
	}

	geom := entities.DefaultGeometry()
	engine := layout.NewEngine(geom)
	slideRenderer, err := renderer.NewHTMLRenderer(engine, geom)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	decks := services.NewDeckService(markup.NewParser(), engine, slideRenderer, nil, newSlogLogger(entities.LoggingConfig{Level: "warn"}))

	deck, err := decks.LoadDeck(ctx, deckPath)
	if err != nil {
		return err
	}

	slides, err := decks.RenderSlides(ctx, deck, styles)
	if err != nil {
		return fmt.Errorf("rendering deck: %w", err)
	}

	var output []byte
	if buildHTML {
		output, err = slideRenderer.RenderDeckPage(deck.Title, slides)
		if err != nil {
			return fmt.Errorf("rendering deck page: %w", err)
		}
	} else {
		output, err = marshalDeck(deck, slides)
		if err != nil {
			return err
		}
	}

	if buildOutput == "" {
		_, err = os.Stdout.Write(output)
		return err
	}

	if err := os.WriteFile(buildOutput, output, 0o644); err != nil { // #nosec G306 - rendered output, not a secret
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d slides)\n", buildOutput, deck.SlideCount())
	return nil
}

// marshalDeck serializes the deck plus per-slide layout and HTML.
func marshalDeck(deck *entities.Deck, slides []ports.RenderedSlide) ([]byte, error) {
	payload := struct {
		Title  string                `json:"title"`
		Source string                `json:"source,omitempty"`
		Slides []ports.RenderedSlide `json:"slides"`
	}{
		Title:  deck.Title,
		Source: deck.SourcePath,
		Slides: slides,
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding deck: %w", err)
	}
	return out, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lessondeck/lessondeck/internal/adapters/secondary/layout"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/markup"
	"github.com/lessondeck/lessondeck/internal/adapters/secondary/renderer"
	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/services"
)

// validateCmd checks a lesson file and reports advisory issues.
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a lesson file for content issues",
	Long: `Parse a lesson file and report advisory issues: missing titles,
empty slides, and text that overflows its box. Issues never fail the
command; the exit code is non-zero only when the file cannot be read.

Example:
  lessondeck validate lesson.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	deckPath := args[0]

	geom := entities.DefaultGeometry()
	engine := layout.NewEngine(geom)
	slideRenderer, err := renderer.NewHTMLRenderer(engine, geom)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	decks := services.NewDeckService(markup.NewParser(), engine, slideRenderer, nil, newSlogLogger(entities.LoggingConfig{Level: "error"}))

	deck, err := decks.LoadDeck(ctx, deckPath)
	if err != nil {
		return err
	}

	issues := decks.ValidateDeck(ctx, deck)

	// Rendering surfaces overflow warnings on top of structural ones
	slides, err := decks.RenderSlides(ctx, deck, entities.DefaultStyleConfig())
	if err != nil {
		return fmt.Errorf("rendering deck: %w", err)
	}
	for _, slide := range slides {
		issues = append(issues, slide.Warnings...)
	}

	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		fmt.Fprintf(out, "%s: %d slides, no issues\n", deckPath, deck.SlideCount())
		return nil
	}

	fmt.Fprintf(out, "%s: %d slides, %d issue(s)\n", deckPath, deck.SlideCount(), len(issues))
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}

	return nil
}

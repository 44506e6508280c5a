package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
)

func TestYAMLStyleLoaderEmptyPath(t *testing.T) {
	cfg, err := NewYAMLStyleLoader().Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultStyleConfig(), cfg)
}

func TestYAMLStyleLoaderMissingFile(t *testing.T) {
	cfg, err := NewYAMLStyleLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultStyleConfig(), cfg)
}

func TestYAMLStyleLoaderOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.yaml")
	content := `
tags:
  vocabulary:
    font_size: 28
    color: {r: 10, g: 20, b: 30}
  question:
    italic: true
font_family: Georgia
show_slide_numbers: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := NewYAMLStyleLoader().Load(context.Background(), path)
	require.NoError(t, err)

	vocab := cfg.StyleFor(entities.StyleVocabulary)
	assert.Equal(t, 28, vocab.FontSize)
	assert.Equal(t, entities.RGB{R: 10, G: 20, B: 30}, vocab.Color)
	// Untouched fields keep their defaults
	assert.True(t, vocab.Bold)

	question := cfg.StyleFor(entities.StyleQuestion)
	assert.True(t, question.Italic)
	assert.Equal(t, 20, question.FontSize)

	assert.Equal(t, "Georgia", cfg.FontFamily)
	assert.False(t, cfg.ShowSlideNumbers)
	// A toggle the file does not mention keeps its default
	assert.True(t, cfg.WarnOnOverflow)
}

func TestYAMLStyleLoaderMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [not, a, map]"), 0600))

	_, err := NewYAMLStyleLoader().Load(context.Background(), path)
	assert.Error(t, err)
}

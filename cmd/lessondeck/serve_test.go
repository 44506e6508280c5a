package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
)

const sampleLesson = `Slide 1
Title: Plant Cells
Content: The [vocabulary]chloroplast[/vocabulary] captures light
Notes: Start with the diagram

Slide 2
Title: Check Understanding
LeftTop: Short passage about leaves
LeftBottom: 1. What does the leaf absorb? 2. Where does it happen?
`

func writeLesson(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lesson.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleLesson), 0o600))
	return path
}

func TestLoadServeConfigFlagPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("LESSONDECK_PORT", "2222")

	path := writeLesson(t)

	serveCmd.SetContext(context.Background())
	require.NoError(t, serveCmd.Flags().Set("port", "9000"))
	defer func() {
		require.NoError(t, serveCmd.Flags().Set("port", "0"))
		serveCmd.Flags().Lookup("port").Changed = false
	}()

	cfg, err := loadServeConfig(serveCmd, path)
	require.NoError(t, err)

	// CLI flag beats the environment variable
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadServeConfigEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("LESSONDECK_PORT", "2222")

	path := writeLesson(t)

	serveCmd.SetContext(context.Background())
	cfg, err := loadServeConfig(serveCmd, path)
	require.NoError(t, err)
	assert.Equal(t, 2222, cfg.Server.Port)
}

func TestNewSlogLogger(t *testing.T) {
	assert.NotNil(t, newSlogLogger(entities.LoggingConfig{}))
	assert.NotNil(t, newSlogLogger(entities.LoggingConfig{Level: "debug", Verbose: true}))
}

func TestRunValidate(t *testing.T) {
	path := writeLesson(t)

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	validateCmd.SetContext(context.Background())

	require.NoError(t, runValidate(validateCmd, []string{path}))
	assert.Contains(t, out.String(), "2 slides")
}

func TestRunValidateMissingFile(t *testing.T) {
	validateCmd.SetContext(context.Background())
	err := runValidate(validateCmd, []string{filepath.Join(t.TempDir(), "gone.txt")})
	assert.Error(t, err)
}

func TestRunBuildJSON(t *testing.T) {
	path := writeLesson(t)
	outPath := filepath.Join(t.TempDir(), "deck.json")

	buildOutput = outPath
	buildHTML = false
	defer func() { buildOutput = "" }()

	buildCmd.SetContext(context.Background())
	require.NoError(t, runBuild(buildCmd, []string{path}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Plant Cells"`)
	assert.Contains(t, string(data), `"layout"`)
}

func TestRunBuildHTML(t *testing.T) {
	path := writeLesson(t)
	outPath := filepath.Join(t.TempDir(), "deck.html")

	buildOutput = outPath
	buildHTML = true
	defer func() {
		buildOutput = ""
		buildHTML = false
	}()

	var out bytes.Buffer
	buildCmd.SetOut(&out)
	buildCmd.SetContext(context.Background())

	require.NoError(t, runBuild(buildCmd, []string{path}))

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Plant Cells</title>")
	assert.Contains(t, string(html), "chloroplast")
}

package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// YAMLStyleLoader reads the optional styles.yaml file and layers it
// over the built-in style defaults.
type YAMLStyleLoader struct{}

// NewYAMLStyleLoader creates a style loader.
func NewYAMLStyleLoader() *YAMLStyleLoader {
	return &YAMLStyleLoader{}
}

var _ ports.StyleLoader = (*YAMLStyleLoader)(nil)

// Load returns the effective style configuration. An empty path or a
// missing file yields the defaults; a present but malformed file is
// an error so typos do not silently fall back.
func (l *YAMLStyleLoader) Load(ctx context.Context, path string) (entities.StyleConfig, error) {
	defaults := entities.DefaultStyleConfig()

	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from config or flags
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("reading styles %s: %w", path, err)
	}

	var patch entities.StyleConfigPatch
	if err := yaml.Unmarshal(data, &patch); err != nil {
		return defaults, fmt.Errorf("parsing styles %s: %w", path, err)
	}

	return defaults.Apply(patch), nil
}

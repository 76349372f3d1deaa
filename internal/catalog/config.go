package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of the game content file.
type Config struct {
	GameObjects []Object `yaml:"game_objects"`
}

// Load reads the YAML content file at path and builds a Registry from it.
// When the file does not exist, the default catalog is written there first so
// operators have something to edit. A file that exists but fails to parse is
// an error and is never overwritten.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if werr := Save(path, cfg); werr != nil {
			return nil, fmt.Errorf("write default catalog: %w", werr)
		}
		return buildRegistry(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return buildRegistry(cfg)
}

// Save writes the config as YAML to path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func buildRegistry(cfg Config) (*Registry, error) {
	r := NewRegistry(cfg.GameObjects)
	if r.Player() == nil {
		return nil, errors.New(`catalog has no "player" character object`)
	}
	if r.Get("stairs") == nil {
		return nil, errors.New(`catalog has no "stairs" goal object`)
	}
	return r, nil
}

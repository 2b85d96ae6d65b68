package template

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSeed reads a YAML seed file and returns a store built from it.
// A missing file yields the built-in Seed; a malformed one is an error.
func LoadSeed(path string) (*Store, error) {
	if path == "" {
		return NewStore(Seed.Templates, Seed.Selected), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewStore(Seed.Templates, Seed.Selected), nil
		}
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if len(seed.Templates) == 0 {
		return NewEmptyStore(), nil
	}
	if seed.Selected < 0 || seed.Selected >= len(seed.Templates) {
		return nil, fmt.Errorf("%w: selected %d out of range for %d templates",
			ErrInvalidSeed, seed.Selected, len(seed.Templates))
	}
	return NewStore(seed.Templates, seed.Selected), nil
}

package persona

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile is the on-disk shape of a persona overlay.
type overlayFile struct {
	Personas []Persona `yaml:"personas"`
}

// LoadOverlay reads a YAML overlay and merges it over the built-in personas.
// A missing file is not an error; the built-ins are returned unchanged.
// Overlay entries with a built-in name replace that persona's prompt and
// label in place; new names append after the built-ins in file order.
func LoadOverlay(path string) (*Registry, error) {
	base := Builtin()
	if path == "" {
		return base, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("read persona overlay: %w", err)
	}

	var f overlayFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse persona overlay %s: %w", path, err)
	}

	seen := make(map[string]bool, len(f.Personas))
	for _, p := range f.Personas {
		if p.Name == "" {
			return nil, fmt.Errorf("persona overlay %s: entry missing name", path)
		}
		if p.SystemPrompt == "" {
			return nil, fmt.Errorf("persona overlay %s: persona %q missing system prompt", path, p.Name)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("persona overlay %s: duplicate persona %q", path, p.Name)
		}
		seen[p.Name] = true
	}

	merged := append(base.List(), f.Personas...)
	return NewRegistry(merged...), nil
}

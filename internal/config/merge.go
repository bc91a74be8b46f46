package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShallowMergeYAML overlays the YAML file at overlayPath onto target by
// top-level section: a section present in the overlay replaces the whole
// section in target, so fields it omits take their zero value. Sections absent
// from the overlay, and unknown keys, leave target unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var present map[string]yaml.Node
	if err = yaml.Unmarshal(data, &present); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}
	var overlay Config
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("decoding overlay sections from %s: %w", overlayPath, err)
	}

	for key := range present {
		switch key {
		case "output":
			target.Output = overlay.Output
		case "logging":
			target.Logging = overlay.Logging
		case "engine":
			target.Engine = overlay.Engine
		case "savings":
			target.Savings = overlay.Savings
		}
	}
	return nil
}

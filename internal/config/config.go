package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dendrascience/valheim-save-tools/world"
	"gopkg.in/yaml.v3"
)

// Load reads an analyzer rules file. Keys missing from the file keep the
// values of world.DefaultRules. An empty path returns the defaults.
func Load(path string) (world.Rules, error) {
	if path == "" {
		return world.DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return world.Rules{}, fmt.Errorf("reading rules file: %w", err)
	}
	rules, err := Parse(data)
	if err != nil {
		return world.Rules{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rules, nil
}

// Parse decodes rules from YAML on top of world.DefaultRules and validates
// the result. Unknown keys are rejected.
func Parse(data []byte) (world.Rules, error) {
	rules := world.DefaultRules()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return world.Rules{}, fmt.Errorf("parsing rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return world.Rules{}, fmt.Errorf("validating rules: %w", err)
	}
	return rules, nil
}

// Marshal renders rules in the file format Load reads.
func Marshal(rules world.Rules) ([]byte, error) {
	return yaml.Marshal(rules)
}

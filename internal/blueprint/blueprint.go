// Package blueprint decodes entity blueprint descriptors from YAML
// fixtures. spec.md §1 treats the blueprint text format as an external
// collaborator outside the engine's scope — this package exists only
// as a narrow test/demo stand-in for it, not a general parser
// (SPEC_FULL.md §3 "DOMAIN STACK"). Grounded on the teacher's
// internal/data/npc.go decode-then-index pattern, narrowed from a
// game-specific template table to a generic named-field descriptor.
package blueprint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Descriptor is one entity blueprint: a name plus an arbitrary bag of
// component field values, keyed by component name. A real blueprint
// parser would map these onto concrete component types via reflection
// or codegen; that translation is left to the caller, since spec.md
// explicitly keeps blueprint parsing out of the engine core.
type Descriptor struct {
	Name       string                    `yaml:"name"`
	Components map[string]map[string]any `yaml:"components"`
}

type descriptorFile struct {
	Blueprints []Descriptor `yaml:"blueprints"`
}

// Load reads and decodes every blueprint descriptor in the file at path.
func Load(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint file %s: %w", path, err)
	}
	var f descriptorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse blueprint file %s: %w", path, err)
	}
	return f.Blueprints, nil
}

// ByName indexes descriptors for lookup, mirroring the teacher's
// NpcTable.
type ByName map[string]Descriptor

// Index builds a ByName lookup from a descriptor slice.
func Index(descs []Descriptor) ByName {
	out := make(ByName, len(descs))
	for _, d := range descs {
		out[d.Name] = d
	}
	return out
}

package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/platkit/obj"
)

// TriggerSpec describes a surface trigger to build: its arbitration rules
// and whether descendant trigger updates bubble into it.
type TriggerSpec struct {
	Name                string     `yaml:"name"`
	TriggerFromChildren bool       `yaml:"trigger_from_children"`
	Rules               []RuleSpec `yaml:"rules"`
}

// RuleSpec references one scripted arbitration rule.
type RuleSpec struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"` // "collision" or "surface"
	Script string `yaml:"script"`
}

// ControllerSpec describes a controller actor.
type ControllerSpec struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoadSpec loads and unmarshals a YAML spec by name.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadTriggerSpec loads the named trigger spec.
func LoadTriggerSpec(name string) (*TriggerSpec, error) {
	spec, err := LoadSpec[TriggerSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadLevel loads and parses the named level.
func LoadLevel(name string) (*obj.Level, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return obj.ParseLevel(data)
}

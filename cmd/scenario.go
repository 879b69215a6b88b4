package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AlesInsomnes/Elementary-MC-model/mc"
)

// scenarioFileLayout is the top-level structure of a scenario YAML file:
// named parameter presets, each a partial mc.Config.
type scenarioFileLayout struct {
	Scenarios map[string]yaml.Node `yaml:"scenarios"`
}

// LoadScenario reads the named scenario and decodes it over the default
// configuration, so presets only need to list the fields they change.
func LoadScenario(path string, name string) (*mc.Config, error) {
	if name == "" {
		return nil, fmt.Errorf("scenario name required when --scenario-file is set")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var layout scenarioFileLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}

	node, ok := layout.Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("scenario %q not found in %s", name, path)
	}

	cfg := mc.DefaultConfig()
	if err := node.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode scenario %q: %w", name, err)
	}
	return cfg, nil
}

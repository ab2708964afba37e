package automatonfile

import (
	"gopkg.in/yaml.v3"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// ParseYAML parses an automaton from YAML. The layout matches the JSON form.
func ParseYAML(data []byte) (automaton.Automaton, error) {
	var d document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d.toAutomaton()
}

// ToYAML converts an automaton to YAML.
func ToYAML(a automaton.Automaton) ([]byte, error) {
	return yaml.Marshal(fromAutomaton(a))
}

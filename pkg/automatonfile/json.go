package automatonfile

import (
	"encoding/json"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// ParseJSON parses an automaton from JSON.
func ParseJSON(data []byte) (automaton.Automaton, error) {
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d.toAutomaton()
}

// ToJSON converts an automaton to JSON.
func ToJSON(a automaton.Automaton, pretty bool) ([]byte, error) {
	d := fromAutomaton(a)
	if pretty {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}

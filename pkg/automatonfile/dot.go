package automatonfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// Lambda is how empty labels are displayed.
const Lambda = "λ"

// EdgeLabel is the display label and endpoints of one transition.
type EdgeLabel struct {
	From, To int
	Label    string
}

// TransitionLabels returns display labels for all transitions in order:
// "a" for FSAs, "a/x" for Mealy machines and "a,X;YZ" for PDAs.
func TransitionLabels(a automaton.Automaton) []EdgeLabel {
	show := func(s string) string {
		if s == "" {
			return Lambda
		}
		return s
	}

	var out []EdgeLabel
	switch m := a.(type) {
	case *automaton.FSA:
		for _, t := range m.Transitions {
			out = append(out, EdgeLabel{t.From, t.To, show(t.Input)})
		}
	case *automaton.Transducer:
		for _, t := range m.Transitions {
			label := show(t.Input)
			if m.Type == automaton.KindMealy {
				label += "/" + show(t.Output)
			}
			out = append(out, EdgeLabel{t.From, t.To, label})
		}
	case *automaton.PDA:
		for _, t := range m.Transitions {
			out = append(out, EdgeLabel{t.From, t.To, fmt.Sprintf("%s,%s;%s", show(t.Input), show(t.Pop), show(t.Push))})
		}
	}
	return out
}

func isAccepting(a automaton.Automaton, id int) bool {
	switch m := a.(type) {
	case *automaton.FSA:
		return m.IsAccepting(id)
	case *automaton.PDA:
		return m.IsAccepting(id)
	}
	return false
}

// GenerateDOT converts an automaton to Graphviz DOT format. Transitions whose
// index is in highlight are drawn in red, e.g. the path of a generated word.
func GenerateDOT(a automaton.Automaton, title string, highlight map[int]bool) string {
	h := a.Base()
	var sb strings.Builder

	sb.WriteString("digraph automaton {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=11];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	// Invisible start node
	if h.HasState(h.Initial) {
		sb.WriteString("    __start [shape=none, label=\"\", width=0, height=0];\n")
		sb.WriteString(fmt.Sprintf("    __start -> \"%s\";\n", escapeDOT(h.StateLabel(h.Initial))))
		sb.WriteString("\n")
	}

	for _, s := range h.States {
		var attrs []string
		if isAccepting(a, s.ID) {
			attrs = append(attrs, "shape=doublecircle")
		} else {
			attrs = append(attrs, "shape=circle")
		}
		if a.Kind() == automaton.KindMoore && s.Output != "" {
			label := fmt.Sprintf("%s\\n/%s", s.Label(), s.Output)
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", escapeDOT(label)))
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [%s];\n", escapeDOT(s.Label()), strings.Join(attrs, ", ")))
	}
	sb.WriteString("\n")

	// Group transitions by (from, to)
	type key struct {
		from, to int
		hot      bool
	}
	grouped := make(map[key][]string)
	for i, e := range TransitionLabels(a) {
		k := key{e.From, e.To, highlight[i]}
		grouped[k] = append(grouped[k], e.Label)
	}
	keys := make([]key, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		if keys[i].to != keys[j].to {
			return keys[i].to < keys[j].to
		}
		return !keys[i].hot && keys[j].hot
	})

	for _, k := range keys {
		attrs := fmt.Sprintf("label=\"%s\"", escapeDOT(strings.Join(grouped[k], "\\n")))
		if k.hot {
			attrs += ", color=red, fontcolor=red, penwidth=2"
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\" [%s];\n",
			escapeDOT(h.StateLabel(k.from)), escapeDOT(h.StateLabel(k.to)), attrs))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "<", "\\<")
	s = strings.ReplaceAll(s, ">", "\\>")
	return s
}

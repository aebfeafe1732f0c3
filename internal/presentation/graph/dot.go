// Package graph renders machine transition graphs as Graphviz DOT and
// Mermaid state diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
)

// GenerateDOT produces a Graphviz digraph for the machine. Final states
// render as double circles and an arrow from an unnamed point marks the
// initial state; edge labels carry the model-specific transition text.
func GenerateDOT(m machine.Machine) string {
	var sb strings.Builder

	sb.WriteString("digraph {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  nodesep=0.5;\n")
	sb.WriteString("  ranksep=1;\n")
	sb.WriteString("  node [shape=circle];\n\n")

	// The empty node name can never collide with a declared state.
	sb.WriteString("  \"\" [shape=point];\n")
	fmt.Fprintf(&sb, "  \"\" -> %q;\n\n", m.InitialState())

	finals := make(map[machine.State]bool)
	for _, st := range m.FinalStates() {
		finals[st] = true
	}

	for _, st := range m.States() {
		if finals[st] {
			fmt.Fprintf(&sb, "  %q [shape=doublecircle];\n", st)
		} else {
			fmt.Fprintf(&sb, "  %q;\n", st)
		}
	}
	sb.WriteString("\n")

	for _, e := range m.Edges() {
		fmt.Fprintf(&sb, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
	}

	sb.WriteString("}\n")
	return sb.String()
}

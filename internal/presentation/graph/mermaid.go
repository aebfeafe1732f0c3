package graph

import (
	"fmt"
	"strings"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
)

// GenerateMermaid produces a Mermaid stateDiagram-v2 document for the
// machine. State identifiers are sanitized for Mermaid syntax; edge labels
// keep the raw transition text with double quotes softened to singles.
func GenerateMermaid(m machine.Machine) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(string(m.InitialState())))

	for _, e := range m.Edges() {
		label := strings.ReplaceAll(e.Label, "\"", "'")
		fmt.Fprintf(&sb, "    %s --> %s: %s\n", sanitizeMermaidID(string(e.From)), sanitizeMermaidID(string(e.To)), label)
	}

	for _, st := range m.FinalStates() {
		fmt.Fprintf(&sb, "    %s --> [*]\n", sanitizeMermaidID(string(st)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

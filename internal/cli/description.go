// Package cli holds the shared plumbing behind the command line verbs.
package cli

import (
	"fmt"
	"os"
	"strings"

	automata "github.com/GNINE11/ProjAutomata-TC"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"gopkg.in/yaml.v3"
)

// Description is the on-disk form of a machine: its kind plus the
// definition document. Files may be YAML or JSON, both parse the same way.
type Description struct {
	Kind       string         `yaml:"kind"`
	Definition map[string]any `yaml:"definition"`
}

// LoadDescription reads a description file and returns its kind and raw
// definition without building the machine.
func LoadDescription(path string) (machine.Kind, map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return "", nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	kind, err := machine.ParseKind(desc.Kind)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(desc.Definition) == 0 {
		return "", nil, fmt.Errorf("%s: definition is missing", path)
	}

	return kind, desc.Definition, nil
}

// Load builds the machine described by the file at path.
func Load(path string) (machine.Machine, error) {
	kind, def, err := LoadDescription(path)
	if err != nil {
		return nil, err
	}

	m, err := automata.FromMap(kind, def)
	if err != nil {
		return nil, fmt.Errorf("invalid %s definition in %s: %w", kind, path, err)
	}
	return m, nil
}

// Summary renders a machine as a Markdown fact sheet for terminal display.
func Summary(m machine.Machine) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s machine\n\n", strings.ToUpper(string(m.Kind())))
	fmt.Fprintf(&b, "- **States:** %d\n", len(m.States()))
	fmt.Fprintf(&b, "- **Initial state:** `%s`\n", m.InitialState())
	fmt.Fprintf(&b, "- **Final states:** %s\n", stateList(m.FinalStates()))
	fmt.Fprintf(&b, "- **Transitions:** %d\n", len(m.Edges()))

	b.WriteString("\n## Transitions\n\n")
	b.WriteString("| From | Label | To |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, e := range m.Edges() {
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", e.From, e.Label, e.To)
	}

	return b.String()
}

func stateList(states []machine.State) string {
	if len(states) == 0 {
		return "none"
	}

	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = fmt.Sprintf("`%s`", s)
	}
	return strings.Join(parts, ", ")
}

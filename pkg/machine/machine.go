package machine

import "fmt"

// Kind identifies an automaton model.
type Kind string

const (
	// KindDFA is the deterministic finite automaton.
	KindDFA Kind = "dfa"
	// KindDPDA is the deterministic pushdown automaton.
	KindDPDA Kind = "dpda"
	// KindDTM is the deterministic Turing machine.
	KindDTM Kind = "dtm"
)

// ParseKind maps a wire or CLI string onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDFA, KindDPDA, KindDTM:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown machine kind: %q (want dfa, dpda or dtm)", s)
	}
}

// Edge is one transition in display form. Label carries the model-specific
// annotation: the consumed symbol for a DFA, the symbol/stack effect for a
// DPDA, the read/write/move triple for a DTM.
type Edge struct {
	From  State  `json:"from"`
	Label string `json:"label"`
	To    State  `json:"to"`
}

// Machine is a validated automaton ready to run. Implementations are
// immutable and safe for concurrent use; the introspection methods exist
// for diagram rendering and API responses and return fresh slices in a
// stable order.
type Machine interface {
	// Kind reports which model the machine implements.
	Kind() Kind

	// Run feeds input to the machine and reports the outcome. It returns
	// an error only for inputs outside the declared alphabet; every other
	// failure mode is a Rejected result, possibly tagged with a
	// Diagnostic.
	Run(input string, opts ...RunOption) (Result, error)

	// States lists every declared state.
	States() []State

	// InitialState reports where every run starts.
	InitialState() State

	// FinalStates lists the accepting states.
	FinalStates() []State

	// Edges lists every transition in display form.
	Edges() []Edge
}

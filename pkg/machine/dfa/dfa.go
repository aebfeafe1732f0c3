// Package dfa implements deterministic finite automata with a total
// transition function.
package dfa

import (
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
)

// Definition is the declarative form of a finite automaton. Transitions
// map every state and input symbol to exactly one destination state; the
// validator rejects missing rows as well as unknown references.
type Definition struct {
	States        []machine.State  `json:"states" yaml:"states" mapstructure:"states"`
	InputAlphabet []machine.Symbol `json:"input_alphabet" yaml:"input_alphabet" mapstructure:"input_alphabet"`
	InitialState  machine.State    `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
	FinalStates   []machine.State  `json:"final_states" yaml:"final_states" mapstructure:"final_states"`

	Transitions map[machine.State]map[machine.Symbol]machine.State `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// DFA is a validated finite automaton.
type DFA struct {
	states  machine.StateSet
	input   machine.Alphabet
	initial machine.State
	finals  machine.StateSet
	delta   map[machine.State]map[machine.Symbol]machine.State
}

var _ machine.Machine = (*DFA)(nil)

// New validates def and builds the machine. The transition function must
// be total: every declared state needs a destination for every input
// symbol.
func New(def Definition) (*DFA, error) {
	// The definition stays caller-owned; the machine keeps its own copy.
	delta := make(map[machine.State]map[machine.Symbol]machine.State, len(def.Transitions))
	for from, row := range def.Transitions {
		copied := make(map[machine.Symbol]machine.State, len(row))
		for sym, dest := range row {
			copied[sym] = dest
		}
		delta[from] = copied
	}

	m := &DFA{
		states:  machine.NewStateSet(def.States),
		input:   machine.NewAlphabet(def.InputAlphabet),
		initial: def.InitialState,
		finals:  machine.NewStateSet(def.FinalStates),
		delta:   delta,
	}

	if !m.states.Contains(m.initial) {
		return nil, &machine.UnknownStateError{State: m.initial, Field: "initial_state"}
	}
	for _, st := range def.FinalStates {
		if !m.states.Contains(st) {
			return nil, &machine.UnknownStateError{State: st, Field: "final_states"}
		}
	}

	for _, from := range machine.SortedKeys(m.delta) {
		if !m.states.Contains(from) {
			return nil, &machine.UnknownStateError{State: from, Field: "transitions"}
		}
		row := m.delta[from]
		for _, sym := range machine.SortedKeys(row) {
			if !m.input.Contains(sym) {
				return nil, &machine.UnknownSymbolError{Symbol: sym, Alphabet: "input"}
			}
			if dest := row[sym]; !m.states.Contains(dest) {
				return nil, &machine.UnknownStateError{State: dest, Field: "transitions"}
			}
		}
	}

	// Totality: every (state, symbol) pair needs a row.
	for _, st := range m.states.States() {
		row := m.delta[st]
		for _, sym := range m.input.Symbols() {
			if _, ok := row[sym]; !ok {
				return nil, &machine.MissingTransitionError{State: st, Symbol: sym}
			}
		}
	}

	return m, nil
}

// Kind reports machine.KindDFA.
func (m *DFA) Kind() machine.Kind {
	return machine.KindDFA
}

// Run walks the input one symbol at a time and accepts when the machine
// lands on a final state. The transition function is total, so a run over
// a valid input can never get stuck.
func (m *DFA) Run(input string, opts ...machine.RunOption) (machine.Result, error) {
	cfg := machine.NewRunConfig(opts...)

	symbols, err := machine.ScanInput(input, m.input)
	if err != nil {
		return machine.Result{}, err
	}

	cur := m.initial
	steps := 0
	for _, sym := range symbols {
		if steps >= cfg.StepLimit {
			return machine.Result{Verdict: machine.Rejected, Diagnostic: machine.StepLimitExceeded, State: cur, Steps: steps}, nil
		}
		cur = m.delta[cur][sym]
		steps++
	}

	verdict := machine.Rejected
	if m.finals.Contains(cur) {
		verdict = machine.Accepted
	}
	return machine.Result{Verdict: verdict, State: cur, Steps: steps}, nil
}

// States lists the declared states in lexical order.
func (m *DFA) States() []machine.State {
	return m.states.States()
}

// InitialState reports where runs start.
func (m *DFA) InitialState() machine.State {
	return m.initial
}

// FinalStates lists the accepting states in lexical order.
func (m *DFA) FinalStates() []machine.State {
	return m.finals.States()
}

// Edges lists every transition labeled with its consumed symbol.
func (m *DFA) Edges() []machine.Edge {
	var edges []machine.Edge
	for _, from := range machine.SortedKeys(m.delta) {
		row := m.delta[from]
		for _, sym := range machine.SortedKeys(row) {
			edges = append(edges, machine.Edge{From: from, Label: string(sym), To: row[sym]})
		}
	}
	return edges
}

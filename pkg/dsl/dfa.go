package dsl

import (
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dfa"
)

// DFABuilder manages the construction of a finite automaton.
type DFABuilder struct {
	order  []machine.State
	states map[machine.State]*DFAStateBuilder

	initial machine.State
}

// DFA creates a new finite automaton builder.
func DFA() *DFABuilder {
	return &DFABuilder{
		states: make(map[machine.State]*DFAStateBuilder),
	}
}

// State declares a state in the machine.
// If the state already exists, it returns the existing builder.
func (b *DFABuilder) State(id machine.State) *DFAStateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &DFAStateBuilder{
		id:      id,
		moves:   make(map[machine.Symbol]machine.State),
		builder: b,
	}
	b.order = append(b.order, id)
	b.states[id] = sb
	return sb
}

// Definition assembles the declarative form of the machine. The input
// alphabet is the union of every symbol used in a transition.
func (b *DFABuilder) Definition() dfa.Definition {
	symbols := make(map[machine.Symbol]struct{})
	transitions := make(map[machine.State]map[machine.Symbol]machine.State, len(b.order))
	var finals []machine.State

	for _, id := range b.order {
		sb := b.states[id]
		if sb.final {
			finals = append(finals, id)
		}
		if len(sb.moves) == 0 {
			continue
		}

		row := make(map[machine.Symbol]machine.State, len(sb.moves))
		for sym, target := range sb.moves {
			symbols[sym] = struct{}{}
			row[sym] = target
		}
		transitions[id] = row
	}

	return dfa.Definition{
		States:        append([]machine.State(nil), b.order...),
		InputAlphabet: machine.SortedKeys(symbols),
		InitialState:  b.initial,
		FinalStates:   finals,
		Transitions:   transitions,
	}
}

// Build compiles and validates the machine.
func (b *DFABuilder) Build() (*dfa.DFA, error) {
	return dfa.New(b.Definition())
}

// DFAStateBuilder provides a fluent API for configuring one state.
type DFAStateBuilder struct {
	id      machine.State
	final   bool
	moves   map[machine.Symbol]machine.State
	builder *DFABuilder
}

// Initial marks this state as where runs start. Later calls on other
// states overwrite the mark.
func (s *DFAStateBuilder) Initial() *DFAStateBuilder {
	s.builder.initial = s.id
	return s
}

// Final marks this state as accepting.
func (s *DFAStateBuilder) Final() *DFAStateBuilder {
	s.final = true
	return s
}

// On adds a transition consuming symbol and moving to target. The target
// state is declared implicitly if it was not declared before.
func (s *DFAStateBuilder) On(symbol machine.Symbol, target machine.State) *DFAStateBuilder {
	s.builder.State(target)
	s.moves[symbol] = target
	return s
}

package dsl

import (
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dtm"
)

// DTMBuilder manages the construction of a Turing machine.
type DTMBuilder struct {
	order  []machine.State
	states map[machine.State]*DTMStateBuilder

	initial machine.State
	blank   machine.Symbol
	input   []machine.Symbol
}

// DTM creates a new Turing machine builder. Unwritten tape cells read as
// the blank symbol.
func DTM(blank machine.Symbol) *DTMBuilder {
	return &DTMBuilder{
		states: make(map[machine.State]*DTMStateBuilder),
		blank:  blank,
	}
}

// Input declares the input alphabet. Unlike the tape alphabet it cannot be
// inferred, because not every tape symbol is legal in the input.
func (b *DTMBuilder) Input(symbols ...machine.Symbol) *DTMBuilder {
	b.input = append(b.input, symbols...)
	return b
}

// State declares a state in the machine.
// If the state already exists, it returns the existing builder.
func (b *DTMBuilder) State(id machine.State) *DTMStateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &DTMStateBuilder{
		id:      id,
		steps:   make(map[machine.Symbol]dtm.Action),
		builder: b,
	}
	b.order = append(b.order, id)
	b.states[id] = sb
	return sb
}

// Definition assembles the declarative form of the machine. The tape
// alphabet is the input alphabet plus the blank plus everything read or
// written by a step.
func (b *DTMBuilder) Definition() dtm.Definition {
	tape := map[machine.Symbol]struct{}{b.blank: {}}
	for _, sym := range b.input {
		tape[sym] = struct{}{}
	}

	transitions := make(map[machine.State]map[machine.Symbol]dtm.Action, len(b.order))
	var finals []machine.State

	for _, id := range b.order {
		sb := b.states[id]
		if sb.final {
			finals = append(finals, id)
		}
		if len(sb.steps) == 0 {
			continue
		}

		row := make(map[machine.Symbol]dtm.Action, len(sb.steps))
		for read, act := range sb.steps {
			tape[read] = struct{}{}
			tape[act.Write] = struct{}{}
			row[read] = act
		}
		transitions[id] = row
	}

	return dtm.Definition{
		States:        append([]machine.State(nil), b.order...),
		InputAlphabet: append([]machine.Symbol(nil), b.input...),
		TapeAlphabet:  machine.SortedKeys(tape),
		Blank:         b.blank,
		InitialState:  b.initial,
		FinalStates:   finals,
		Transitions:   transitions,
	}
}

// Build compiles and validates the machine.
func (b *DTMBuilder) Build() (*dtm.DTM, error) {
	return dtm.New(b.Definition())
}

// DTMStateBuilder provides a fluent API for configuring one state.
type DTMStateBuilder struct {
	id      machine.State
	final   bool
	steps   map[machine.Symbol]dtm.Action
	builder *DTMBuilder
}

// Initial marks this state as where runs start. Later calls on other
// states overwrite the mark.
func (s *DTMStateBuilder) Initial() *DTMStateBuilder {
	s.builder.initial = s.id
	return s
}

// Final marks this state as accepting.
func (s *DTMStateBuilder) Final() *DTMStateBuilder {
	s.final = true
	return s
}

// Step adds an action for the read symbol: write a symbol over it, move the
// head and enter next. States without a step for the read symbol simply
// halt. The target state is declared implicitly if it was not declared
// before.
func (s *DTMStateBuilder) Step(read, write machine.Symbol, move dtm.Direction, next machine.State) *DTMStateBuilder {
	s.builder.State(next)
	s.steps[read] = dtm.Action{
		Next:  next,
		Write: write,
		Move:  move,
	}
	return s
}

package dsl

import (
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dpda"
)

// DPDABuilder manages the construction of a pushdown automaton.
type DPDABuilder struct {
	order  []machine.State
	states map[machine.State]*DPDAStateBuilder

	initial machine.State
	bottom  machine.Symbol
	mode    dpda.Acceptance
}

// DPDA creates a new pushdown automaton builder. The bottom symbol sits on
// the stack when runs start.
func DPDA(bottom machine.Symbol) *DPDABuilder {
	return &DPDABuilder{
		states: make(map[machine.State]*DPDAStateBuilder),
		bottom: bottom,
	}
}

// AcceptBy sets the acceptance policy. The default accepts in a final state.
func (b *DPDABuilder) AcceptBy(mode dpda.Acceptance) *DPDABuilder {
	b.mode = mode
	return b
}

// State declares a state in the machine.
// If the state already exists, it returns the existing builder.
func (b *DPDABuilder) State(id machine.State) *DPDAStateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &DPDAStateBuilder{
		id:      id,
		moves:   make(map[machine.Symbol]map[machine.Symbol]dpda.Move),
		builder: b,
	}
	b.order = append(b.order, id)
	b.states[id] = sb
	return sb
}

// Definition assembles the declarative form of the machine. The input
// alphabet is the union of every consumed symbol; the stack alphabet is the
// bottom symbol plus everything matched or pushed.
func (b *DPDABuilder) Definition() dpda.Definition {
	input := make(map[machine.Symbol]struct{})
	stack := map[machine.Symbol]struct{}{b.bottom: {}}
	transitions := make(map[machine.State]map[machine.Symbol]map[machine.Symbol]dpda.Move, len(b.order))
	var finals []machine.State

	for _, id := range b.order {
		sb := b.states[id]
		if sb.final {
			finals = append(finals, id)
		}
		if len(sb.moves) == 0 {
			continue
		}

		byRead := make(map[machine.Symbol]map[machine.Symbol]dpda.Move, len(sb.moves))
		for read, byTop := range sb.moves {
			if read != machine.Epsilon {
				input[read] = struct{}{}
			}
			row := make(map[machine.Symbol]dpda.Move, len(byTop))
			for top, mv := range byTop {
				stack[top] = struct{}{}
				for _, sym := range mv.Push {
					stack[sym] = struct{}{}
				}
				row[top] = mv
			}
			byRead[read] = row
		}
		transitions[id] = byRead
	}

	return dpda.Definition{
		States:             append([]machine.State(nil), b.order...),
		InputAlphabet:      machine.SortedKeys(input),
		StackAlphabet:      machine.SortedKeys(stack),
		InitialState:       b.initial,
		InitialStackSymbol: b.bottom,
		FinalStates:        finals,
		Acceptance:         b.mode,
		Transitions:        transitions,
	}
}

// Build compiles and validates the machine.
func (b *DPDABuilder) Build() (*dpda.DPDA, error) {
	return dpda.New(b.Definition())
}

// DPDAStateBuilder provides a fluent API for configuring one state.
type DPDAStateBuilder struct {
	id      machine.State
	final   bool
	moves   map[machine.Symbol]map[machine.Symbol]dpda.Move
	builder *DPDABuilder
}

// Initial marks this state as where runs start. Later calls on other
// states overwrite the mark.
func (s *DPDAStateBuilder) Initial() *DPDAStateBuilder {
	s.builder.initial = s.id
	return s
}

// Final marks this state as accepting.
func (s *DPDAStateBuilder) Final() *DPDAStateBuilder {
	s.final = true
	return s
}

// Move adds a transition that consumes read with top on the stack, replaces
// the top with the pushed symbols (last one ends up on top) and moves to
// next. No pushed symbols means a plain pop. The target state is declared
// implicitly if it was not declared before.
func (s *DPDAStateBuilder) Move(read, top machine.Symbol, next machine.State, push ...machine.Symbol) *DPDAStateBuilder {
	s.builder.State(next)

	byTop, ok := s.moves[read]
	if !ok {
		byTop = make(map[machine.Symbol]dpda.Move)
		s.moves[read] = byTop
	}
	byTop[top] = dpda.Move{
		Next: next,
		Push: append([]machine.Symbol(nil), push...),
	}
	return s
}

// Eps adds a transition taken without consuming input.
func (s *DPDAStateBuilder) Eps(top machine.Symbol, next machine.State, push ...machine.Symbol) *DPDAStateBuilder {
	return s.Move(machine.Epsilon, top, next, push...)
}

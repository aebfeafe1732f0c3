// Package dpda implements deterministic pushdown automata with epsilon
// moves and configurable acceptance.
package dpda

import (
	"fmt"
	"strings"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
)

// Acceptance selects the condition under which a halted run accepts.
type Acceptance string

const (
	// AcceptByFinalState accepts when the input is consumed and the
	// machine halted in a final state. This is the default.
	AcceptByFinalState Acceptance = "final_state"
	// AcceptByEmptyStack accepts when the input is consumed and the
	// stack drained completely.
	AcceptByEmptyStack Acceptance = "empty_stack"
	// AcceptByBoth accepts when either condition holds.
	AcceptByBoth Acceptance = "both"
)

// Definition is the declarative form of a pushdown automaton. Transitions
// nest state, then input symbol (the empty string keys an epsilon move),
// then stack top. Each cell is a [next, [push...]] move. The function may
// be partial; a configuration without a move halts the machine.
type Definition struct {
	States             []machine.State  `json:"states" yaml:"states" mapstructure:"states"`
	InputAlphabet      []machine.Symbol `json:"input_alphabet" yaml:"input_alphabet" mapstructure:"input_alphabet"`
	StackAlphabet      []machine.Symbol `json:"stack_alphabet" yaml:"stack_alphabet" mapstructure:"stack_alphabet"`
	InitialState       machine.State    `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
	InitialStackSymbol machine.Symbol   `json:"initial_stack_symbol" yaml:"initial_stack_symbol" mapstructure:"initial_stack_symbol"`
	FinalStates        []machine.State  `json:"final_states" yaml:"final_states" mapstructure:"final_states"`
	Acceptance         Acceptance       `json:"acceptance,omitempty" yaml:"acceptance,omitempty" mapstructure:"acceptance"`

	Transitions map[machine.State]map[machine.Symbol]map[machine.Symbol]Move `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// DPDA is a validated pushdown automaton.
type DPDA struct {
	states       machine.StateSet
	input        machine.Alphabet
	stack        machine.Alphabet
	initial      machine.State
	initialStack machine.Symbol
	finals       machine.StateSet
	acceptance   Acceptance
	moves        map[machine.State]map[machine.Symbol]map[machine.Symbol]Move
}

var _ machine.Machine = (*DPDA)(nil)

// New validates def and builds the machine. Beyond referential checks it
// enforces determinism (no configuration may fire both an epsilon move
// and a symbol move) and rejects statically detectable epsilon cycles.
func New(def Definition) (*DPDA, error) {
	moves := make(map[machine.State]map[machine.Symbol]map[machine.Symbol]Move, len(def.Transitions))
	for from, row := range def.Transitions {
		copiedRow := make(map[machine.Symbol]map[machine.Symbol]Move, len(row))
		for sym, byTop := range row {
			copiedTops := make(map[machine.Symbol]Move, len(byTop))
			for top, mv := range byTop {
				copiedTops[top] = Move{Next: mv.Next, Push: append([]machine.Symbol(nil), mv.Push...)}
			}
			copiedRow[sym] = copiedTops
		}
		moves[from] = copiedRow
	}

	m := &DPDA{
		states:       machine.NewStateSet(def.States),
		input:        machine.NewAlphabet(def.InputAlphabet),
		stack:        machine.NewAlphabet(def.StackAlphabet),
		initial:      def.InitialState,
		initialStack: def.InitialStackSymbol,
		finals:       machine.NewStateSet(def.FinalStates),
		acceptance:   def.Acceptance,
		moves:        moves,
	}

	switch m.acceptance {
	case "":
		m.acceptance = AcceptByFinalState
	case AcceptByFinalState, AcceptByEmptyStack, AcceptByBoth:
	default:
		return nil, fmt.Errorf("unknown acceptance policy: %q (want final_state, empty_stack or both)", m.acceptance)
	}

	if !m.states.Contains(m.initial) {
		return nil, &machine.UnknownStateError{State: m.initial, Field: "initial_state"}
	}
	for _, st := range def.FinalStates {
		if !m.states.Contains(st) {
			return nil, &machine.UnknownStateError{State: st, Field: "final_states"}
		}
	}
	if !m.stack.Contains(m.initialStack) {
		return nil, &machine.UnknownSymbolError{Symbol: m.initialStack, Alphabet: "stack"}
	}

	for _, from := range machine.SortedKeys(m.moves) {
		if !m.states.Contains(from) {
			return nil, &machine.UnknownStateError{State: from, Field: "transitions"}
		}
		row := m.moves[from]
		for _, sym := range machine.SortedKeys(row) {
			if sym != machine.Epsilon && !m.input.Contains(sym) {
				return nil, &machine.UnknownSymbolError{Symbol: sym, Alphabet: "input"}
			}
			byTop := row[sym]
			for _, top := range machine.SortedKeys(byTop) {
				if !m.stack.Contains(top) {
					return nil, &machine.UnknownSymbolError{Symbol: top, Alphabet: "stack"}
				}
				mv := byTop[top]
				if !m.states.Contains(mv.Next) {
					return nil, &machine.UnknownStateError{State: mv.Next, Field: "transitions"}
				}
				for _, pushed := range mv.Push {
					if !m.stack.Contains(pushed) {
						return nil, &machine.UnknownSymbolError{Symbol: pushed, Alphabet: "stack"}
					}
				}
			}
		}
	}

	if err := m.checkDeterminism(); err != nil {
		return nil, err
	}
	if err := m.checkEpsilonCycles(); err != nil {
		return nil, err
	}

	return m, nil
}

// checkDeterminism rejects configurations that could fire both an epsilon
// move and a symbol move. Structural duplicates are impossible because the
// transition table is keyed by (state, symbol, stack top).
func (m *DPDA) checkDeterminism() error {
	for _, from := range machine.SortedKeys(m.moves) {
		row := m.moves[from]
		epsilonTops, ok := row[machine.Epsilon]
		if !ok {
			continue
		}
		for _, sym := range machine.SortedKeys(row) {
			if sym == machine.Epsilon {
				continue
			}
			for _, top := range machine.SortedKeys(row[sym]) {
				if _, clash := epsilonTops[top]; clash {
					return &machine.NondeterministicTransitionError{State: from, StackTop: top, Symbol: sym}
				}
			}
		}
	}
	return nil
}

// checkEpsilonCycles walks the chains of epsilon moves whose push leaves a
// statically known stack top (a non-empty push exposes its last symbol).
// Determinism makes each (state, top) pair have at most one successor, so
// a revisited pair on the active chain is a loop the executor could never
// leave: epsilon moves always take priority and the configuration below
// the top never comes back into play.
func (m *DPDA) checkEpsilonCycles() error {
	type pair struct {
		state machine.State
		top   machine.Symbol
	}

	const (
		unvisited = iota
		visiting
		done
	)
	color := make(map[pair]int)

	var starts []pair
	for _, from := range machine.SortedKeys(m.moves) {
		byTop, ok := m.moves[from][machine.Epsilon]
		if !ok {
			continue
		}
		for _, top := range machine.SortedKeys(byTop) {
			starts = append(starts, pair{from, top})
		}
	}

	for _, start := range starts {
		if color[start] != unvisited {
			continue
		}
		var chain []pair
		cur := start
		for {
			color[cur] = visiting
			chain = append(chain, cur)

			mv, ok := m.move(cur.state, machine.Epsilon, cur.top)
			if !ok || len(mv.Push) == 0 {
				break
			}
			next := pair{mv.Next, mv.Push[len(mv.Push)-1]}
			if color[next] == visiting {
				return &machine.EpsilonCycleError{State: next.state, StackTop: next.top}
			}
			if color[next] == done {
				break
			}
			cur = next
		}
		for _, p := range chain {
			color[p] = done
		}
	}
	return nil
}

func (m *DPDA) move(from machine.State, sym, top machine.Symbol) (Move, bool) {
	byTop, ok := m.moves[from][sym]
	if !ok {
		return Move{}, false
	}
	mv, ok := byTop[top]
	return mv, ok
}

// Kind reports machine.KindDPDA.
func (m *DPDA) Kind() machine.Kind {
	return machine.KindDPDA
}

// Run executes the machine against input. Each step pops the stack top
// and pushes the move's replacement; epsilon moves fire before symbol
// moves. Runs that drain the stack early, exhaust the step budget or
// cycle through epsilon moves come back Rejected with a diagnostic.
func (m *DPDA) Run(input string, opts ...machine.RunOption) (machine.Result, error) {
	cfg := machine.NewRunConfig(opts...)

	symbols, err := machine.ScanInput(input, m.input)
	if err != nil {
		return machine.Result{}, err
	}

	cur := m.initial
	stack := []machine.Symbol{m.initialStack}
	pos := 0
	steps := 0

	// Loop guard over the active epsilon streak. Each (state, top) pair
	// records the stack height at its first visit; meeting the pair again
	// while its record is still live means the whole configuration
	// repeated, because the stack below the recorded height was never
	// touched in between. Records above the current height die when the
	// stack shrinks, and consuming input resets the streak.
	type pair struct {
		state machine.State
		top   machine.Symbol
	}
	streak := make(map[pair]int)

	for {
		if len(stack) == 0 {
			if pos == len(symbols) {
				break
			}
			return machine.Result{Verdict: machine.Rejected, Diagnostic: machine.EmptyStack, State: cur, Steps: steps}, nil
		}
		top := stack[len(stack)-1]

		if mv, ok := m.move(cur, machine.Epsilon, top); ok {
			if steps >= cfg.StepLimit {
				return machine.Result{Verdict: machine.Rejected, Diagnostic: machine.StepLimitExceeded, State: cur, Steps: steps}, nil
			}
			key := pair{cur, top}
			if _, seen := streak[key]; seen {
				return machine.Result{Verdict: machine.Rejected, Diagnostic: machine.NonTerminating, State: cur, Steps: steps}, nil
			}
			streak[key] = len(stack)

			stack = append(stack[:len(stack)-1], mv.Push...)
			cur = mv.Next
			steps++

			for k, h := range streak {
				if h > len(stack) {
					delete(streak, k)
				}
			}
			continue
		}

		if pos < len(symbols) {
			if mv, ok := m.move(cur, symbols[pos], top); ok {
				if steps >= cfg.StepLimit {
					return machine.Result{Verdict: machine.Rejected, Diagnostic: machine.StepLimitExceeded, State: cur, Steps: steps}, nil
				}
				stack = append(stack[:len(stack)-1], mv.Push...)
				cur = mv.Next
				pos++
				steps++
				clear(streak)
				continue
			}
		}

		// No move applies: the machine halted.
		break
	}

	verdict := machine.Rejected
	if pos == len(symbols) && m.accepts(cur, stack) {
		verdict = machine.Accepted
	}
	return machine.Result{Verdict: verdict, State: cur, Steps: steps}, nil
}

func (m *DPDA) accepts(cur machine.State, stack []machine.Symbol) bool {
	switch m.acceptance {
	case AcceptByEmptyStack:
		return len(stack) == 0
	case AcceptByBoth:
		return len(stack) == 0 || m.finals.Contains(cur)
	default:
		return m.finals.Contains(cur)
	}
}

// States lists the declared states in lexical order.
func (m *DPDA) States() []machine.State {
	return m.states.States()
}

// InitialState reports where runs start.
func (m *DPDA) InitialState() machine.State {
	return m.initial
}

// FinalStates lists the accepting states in lexical order.
func (m *DPDA) FinalStates() []machine.State {
	return m.finals.States()
}

// Edges lists every transition labeled "symbol,top/push", the classic
// pushdown notation with epsilon shown for empty reads and empty pushes.
func (m *DPDA) Edges() []machine.Edge {
	var edges []machine.Edge
	for _, from := range machine.SortedKeys(m.moves) {
		row := m.moves[from]
		for _, sym := range machine.SortedKeys(row) {
			byTop := row[sym]
			for _, top := range machine.SortedKeys(byTop) {
				mv := byTop[top]
				edges = append(edges, machine.Edge{From: from, Label: moveLabel(sym, top, mv), To: mv.Next})
			}
		}
	}
	return edges
}

func moveLabel(sym, top machine.Symbol, mv Move) string {
	read := "ε"
	if sym != machine.Epsilon {
		read = string(sym)
	}
	push := "ε"
	if len(mv.Push) > 0 {
		parts := make([]string, len(mv.Push))
		for i, s := range mv.Push {
			parts[i] = string(s)
		}
		push = strings.Join(parts, ",")
	}
	return fmt.Sprintf("%s,%s/%s", read, top, push)
}

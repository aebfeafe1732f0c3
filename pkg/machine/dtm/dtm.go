// Package dtm implements deterministic Turing machines over a sparse,
// unbounded tape.
package dtm

import (
	"fmt"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
)

// Definition is the declarative form of a Turing machine. The tape
// alphabet must cover the input alphabet plus the blank symbol, and the
// blank must not be a legal input symbol. Transitions map state and read
// symbol to a [next, write, direction] action; the function may be
// partial, a configuration without an action halts the machine.
type Definition struct {
	States        []machine.State  `json:"states" yaml:"states" mapstructure:"states"`
	InputAlphabet []machine.Symbol `json:"input_alphabet" yaml:"input_alphabet" mapstructure:"input_alphabet"`
	TapeAlphabet  []machine.Symbol `json:"tape_alphabet" yaml:"tape_alphabet" mapstructure:"tape_alphabet"`
	Blank         machine.Symbol   `json:"blank" yaml:"blank" mapstructure:"blank"`
	InitialState  machine.State    `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
	FinalStates   []machine.State  `json:"final_states" yaml:"final_states" mapstructure:"final_states"`

	Transitions map[machine.State]map[machine.Symbol]Action `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// DTM is a validated Turing machine.
type DTM struct {
	states  machine.StateSet
	input   machine.Alphabet
	tape    machine.Alphabet
	blank   machine.Symbol
	initial machine.State
	finals  machine.StateSet
	delta   map[machine.State]map[machine.Symbol]Action
}

var _ machine.Machine = (*DTM)(nil)

// New validates def and builds the machine.
func New(def Definition) (*DTM, error) {
	delta := make(map[machine.State]map[machine.Symbol]Action, len(def.Transitions))
	for from, row := range def.Transitions {
		copied := make(map[machine.Symbol]Action, len(row))
		for sym, act := range row {
			copied[sym] = act
		}
		delta[from] = copied
	}

	m := &DTM{
		states:  machine.NewStateSet(def.States),
		input:   machine.NewAlphabet(def.InputAlphabet),
		tape:    machine.NewAlphabet(def.TapeAlphabet),
		blank:   def.Blank,
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

	for _, sym := range m.input.Symbols() {
		if !m.tape.Contains(sym) {
			return nil, &machine.AlphabetError{Reason: fmt.Sprintf("input symbol %q is not in the tape alphabet", sym)}
		}
	}
	if !m.tape.Contains(m.blank) {
		return nil, &machine.AlphabetError{Reason: fmt.Sprintf("blank symbol %q is not in the tape alphabet", m.blank)}
	}
	if m.input.Contains(m.blank) {
		return nil, &machine.AlphabetError{Reason: fmt.Sprintf("blank symbol %q must not be in the input alphabet", m.blank)}
	}

	for _, from := range machine.SortedKeys(m.delta) {
		if !m.states.Contains(from) {
			return nil, &machine.UnknownStateError{State: from, Field: "transitions"}
		}
		row := m.delta[from]
		for _, sym := range machine.SortedKeys(row) {
			if !m.tape.Contains(sym) {
				return nil, &machine.UnknownSymbolError{Symbol: sym, Alphabet: "tape"}
			}
			act := row[sym]
			if !m.states.Contains(act.Next) {
				return nil, &machine.UnknownStateError{State: act.Next, Field: "transitions"}
			}
			if !m.tape.Contains(act.Write) {
				return nil, &machine.UnknownSymbolError{Symbol: act.Write, Alphabet: "tape"}
			}
			if act.Move != Left && act.Move != Right {
				return nil, fmt.Errorf("state %q, symbol %q: unknown head direction %q (want L or R)", from, sym, act.Move)
			}
		}
	}

	return m, nil
}

// Kind reports machine.KindDTM.
func (m *DTM) Kind() machine.Kind {
	return machine.KindDTM
}

// Run lays the input on the tape starting at cell zero and steps until
// the machine reaches a configuration with no action or burns its step
// budget. Acceptance is by the halting state.
func (m *DTM) Run(input string, opts ...machine.RunOption) (machine.Result, error) {
	cfg := machine.NewRunConfig(opts...)

	symbols, err := machine.ScanInput(input, m.input)
	if err != nil {
		return machine.Result{}, err
	}

	// Sparse tape: unwritten cells read as the blank symbol, so the head
	// may roam both directions without bounds.
	tape := make(map[int]machine.Symbol, len(symbols))
	for i, sym := range symbols {
		tape[i] = sym
	}

	cur := m.initial
	head := 0
	steps := 0

	for {
		sym, ok := tape[head]
		if !ok {
			sym = m.blank
		}
		act, ok := m.delta[cur][sym]
		if !ok {
			break
		}
		if steps >= cfg.StepLimit {
			return machine.Result{Verdict: machine.Rejected, Diagnostic: machine.StepLimitExceeded, State: cur, Steps: steps}, nil
		}

		tape[head] = act.Write
		if act.Move == Left {
			head--
		} else {
			head++
		}
		cur = act.Next
		steps++
	}

	verdict := machine.Rejected
	if m.finals.Contains(cur) {
		verdict = machine.Accepted
	}
	return machine.Result{Verdict: verdict, State: cur, Steps: steps}, nil
}

// States lists the declared states in lexical order.
func (m *DTM) States() []machine.State {
	return m.states.States()
}

// InitialState reports where runs start.
func (m *DTM) InitialState() machine.State {
	return m.initial
}

// FinalStates lists the accepting states in lexical order.
func (m *DTM) FinalStates() []machine.State {
	return m.finals.States()
}

// Edges lists every transition labeled "read → write, direction".
func (m *DTM) Edges() []machine.Edge {
	var edges []machine.Edge
	for _, from := range machine.SortedKeys(m.delta) {
		row := m.delta[from]
		for _, sym := range machine.SortedKeys(row) {
			act := row[sym]
			label := fmt.Sprintf("%s → %s, %s", sym, act.Write, act.Move)
			edges = append(edges, machine.Edge{From: from, Label: label, To: act.Next})
		}
	}
	return edges
}

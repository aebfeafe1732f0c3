package machine

import "fmt"

// UnknownStateError reports a state referenced outside the declared state
// set. Field names the definition field holding the reference.
type UnknownStateError struct {
	State State
	Field string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("%s: state %q is not in the declared state set", e.Field, e.State)
}

// UnknownSymbolError reports a symbol referenced outside the declared
// alphabet. Alphabet names which alphabet was violated (input, stack or
// tape).
type UnknownSymbolError struct {
	Symbol   Symbol
	Alphabet string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("symbol %q is not in the declared %s alphabet", e.Symbol, e.Alphabet)
}

// MissingTransitionError reports a hole in a transition function that must
// be total.
type MissingTransitionError struct {
	State  State
	Symbol Symbol
}

func (e *MissingTransitionError) Error() string {
	return fmt.Sprintf("state %q has no transition for symbol %q", e.State, e.Symbol)
}

// NondeterministicTransitionError reports a pushdown configuration that
// could fire both an epsilon move and a symbol move.
type NondeterministicTransitionError struct {
	State    State
	StackTop Symbol
	Symbol   Symbol
}

func (e *NondeterministicTransitionError) Error() string {
	return fmt.Sprintf("state %q, stack top %q: epsilon move conflicts with move on %q", e.State, e.StackTop, e.Symbol)
}

// AlphabetError reports an ill-formed alphabet declaration, such as a tape
// alphabet missing an input symbol or a blank symbol placed in the input
// alphabet.
type AlphabetError struct {
	Reason string
}

func (e *AlphabetError) Error() string {
	return "alphabet violation: " + e.Reason
}

// EpsilonCycleError reports a chain of epsilon moves that revisits a
// (state, stack top) pair and therefore can never stop firing.
type EpsilonCycleError struct {
	State    State
	StackTop Symbol
}

func (e *EpsilonCycleError) Error() string {
	return fmt.Sprintf("epsilon moves cycle back to state %q with stack top %q", e.State, e.StackTop)
}

// InputError reports an input symbol outside the machine's input alphabet.
// Position counts symbols from zero.
type InputError struct {
	Symbol   Symbol
	Position int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input symbol %q at position %d is not in the input alphabet", e.Symbol, e.Position)
}

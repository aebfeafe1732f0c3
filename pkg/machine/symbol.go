package machine

import "slices"

// Symbol is a single input, stack or tape symbol. The engines treat each
// Unicode code point of an input string as one symbol; declared symbols may
// still be longer strings when descriptions use them for stack or tape
// markers.
type Symbol string

// Epsilon is the empty symbol. A pushdown transition keyed on Epsilon
// consumes no input.
const Epsilon Symbol = ""

// State names one automaton state.
type State string

// Alphabet is a membership set over symbols.
type Alphabet map[Symbol]struct{}

// NewAlphabet builds an alphabet from the declared symbols. Duplicates
// collapse.
func NewAlphabet(symbols []Symbol) Alphabet {
	a := make(Alphabet, len(symbols))
	for _, s := range symbols {
		a[s] = struct{}{}
	}
	return a
}

// Contains reports whether s is in the alphabet.
func (a Alphabet) Contains(s Symbol) bool {
	_, ok := a[s]
	return ok
}

// Symbols returns the alphabet in lexical order.
func (a Alphabet) Symbols() []Symbol {
	return SortedKeys(a)
}

// StateSet is a membership set over states.
type StateSet map[State]struct{}

// NewStateSet builds a state set from the declared states. Duplicates
// collapse.
func NewStateSet(states []State) StateSet {
	set := make(StateSet, len(states))
	for _, s := range states {
		set[s] = struct{}{}
	}
	return set
}

// Contains reports whether s is in the set.
func (s StateSet) Contains(st State) bool {
	_, ok := s[st]
	return ok
}

// States returns the set in lexical order.
func (s StateSet) States() []State {
	return SortedKeys(s)
}

// SortedKeys returns the keys of m in lexical order. Validation and
// introspection iterate maps through it so errors and edge listings come
// out deterministic.
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ScanInput splits input into symbols and checks each one against the
// alphabet. Positions count symbols, not bytes.
func ScanInput(input string, alphabet Alphabet) ([]Symbol, error) {
	symbols := make([]Symbol, 0, len(input))
	pos := 0
	for _, r := range input {
		sym := Symbol(r)
		if !alphabet.Contains(sym) {
			return nil, &InputError{Symbol: sym, Position: pos}
		}
		symbols = append(symbols, sym)
		pos++
	}
	return symbols, nil
}

// Package machine defines the primitives shared by the automaton engines:
// symbols, states, alphabets, run results and the error taxonomy.
//
// The three engine packages (dfa, dpda, dtm) build on these types and
// implement the Machine interface, which is the read-only surface consumed
// by the registry, the diagram exporters and the transport adapters.
//
// A Machine value is immutable once built. Every Run call allocates its own
// execution state (cursor, stack, tape, head), so concurrent runs over a
// shared Machine need no coordination:
//
//	m, err := dfa.New(def)
//	if err != nil {
//	    // typed construction error, no machine produced
//	}
//	res, err := m.Run("abba")
//	if res.Accepted() {
//	    // input recognized
//	}
//
// Engines never log and never perform I/O; failures surface as typed errors
// (construction and input faults) or as tagged Rejected results (step budget
// and non-termination guards).
package machine

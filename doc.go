/*
Package automata builds deterministic automata from declarative definitions and runs acceptance tests against them.

Three classical models are supported: finite automata (dfa), pushdown automata (dpda) and Turing machines (dtm). A definition declares states, alphabets and a transition table; construction validates every cross reference, determinism and, where the model demands it, totality, so a machine that builds at all is a machine that runs.

# Concept

The engines are pure: a Machine is immutable once built, a Run allocates its own cursor, stack or tape, and the same input always produces the same verdict. Everything stateful lives around the core. The registry keeps validated machines under generated identifiers, stores persist them in memory or Redis, and the HTTP and MCP adapters expose registration, execution and diagram rendering over the wire.

# Key Features

  - Construction-time validation: unknown states and symbols, holes in a total transition function and ambiguous pushdown moves are all rejected with typed errors before a machine exists.
  - Guarded execution: every run carries a step budget, and pushdown epsilon loops are caught statically where possible and by a runtime guard otherwise. Runs cut short come back Rejected with a diagnostic, never as an error.
  - Uniform surface: all three models implement the same Machine interface, so registries, diagrams and transports never switch on the model.

# Usage

Build a machine from a JSON definition and feed it input:

	package main

	import (
		"fmt"
		"log"

		automata "github.com/GNINE11/ProjAutomata-TC"
		"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	)

	func main() {
		def := []byte(`{
			"states": ["even", "odd"],
			"input_alphabet": ["a"],
			"initial_state": "even",
			"final_states": ["even"],
			"transitions": {
				"even": {"a": "odd"},
				"odd": {"a": "even"}
			}
		}`)

		m, err := automata.FromJSON(machine.KindDFA, def)
		if err != nil {
			log.Fatal(err)
		}

		res, err := m.Run("aaaa")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Verdict) // accepted
	}

YAML descriptions loaded from disk go through FromMap instead, which accepts the generic maps produced by yaml.Unmarshal.
*/
package automata

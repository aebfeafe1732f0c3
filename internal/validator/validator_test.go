package validator

import (
	"testing"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dfa"
)

func TestUnreachable(t *testing.T) {
	// 1. Scenario A: every state reachable
	connected, err := dfa.New(dfa.Definition{
		States:        []machine.State{"q0", "q1"},
		InputAlphabet: []machine.Symbol{"a"},
		InitialState:  "q0",
		FinalStates:   []machine.State{"q1"},
		Transitions: map[machine.State]map[machine.Symbol]machine.State{
			"q0": {"a": "q1"},
			"q1": {"a": "q0"},
		},
	})
	if err != nil {
		t.Fatalf("Scenario A setup failed: %v", err)
	}

	if got := Unreachable(connected); len(got) != 0 {
		t.Errorf("Scenario A (Connected) reported unreachable states: %v", got)
	}

	// 2. Scenario B: an island no transition chain can reach
	island, err := dfa.New(dfa.Definition{
		States:        []machine.State{"q0", "q1", "island"},
		InputAlphabet: []machine.Symbol{"a"},
		InitialState:  "q0",
		FinalStates:   []machine.State{"q1"},
		Transitions: map[machine.State]map[machine.Symbol]machine.State{
			"q0":     {"a": "q1"},
			"q1":     {"a": "q0"},
			"island": {"a": "island"},
		},
	})
	if err != nil {
		t.Fatalf("Scenario B setup failed: %v", err)
	}

	got := Unreachable(island)
	if len(got) != 1 || got[0] != "island" {
		t.Errorf("Scenario B (Island) expected [island], got: %v", got)
	}
}

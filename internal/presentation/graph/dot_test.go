package graph_test

import (
	"strings"
	"testing"

	"github.com/GNINE11/ProjAutomata-TC/internal/presentation/graph"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dfa"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dpda"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dtm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDFA(t *testing.T) machine.Machine {
	t.Helper()
	m, err := dfa.New(dfa.Definition{
		States:        []machine.State{"q0", "q1"},
		InputAlphabet: []machine.Symbol{"a", "b"},
		InitialState:  "q0",
		FinalStates:   []machine.State{"q1"},
		Transitions: map[machine.State]map[machine.Symbol]machine.State{
			"q0": {"a": "q1", "b": "q0"},
			"q1": {"a": "q1", "b": "q0"},
		},
	})
	require.NoError(t, err)
	return m
}

func newTestDPDA(t *testing.T) machine.Machine {
	t.Helper()
	m, err := dpda.New(dpda.Definition{
		States:             []machine.State{"q0", "q1"},
		InputAlphabet:      []machine.Symbol{"a"},
		StackAlphabet:      []machine.Symbol{"Z", "A"},
		InitialState:       "q0",
		InitialStackSymbol: "Z",
		FinalStates:        []machine.State{"q1"},
		Transitions: map[machine.State]map[machine.Symbol]map[machine.Symbol]dpda.Move{
			"q0": {
				"a": {"Z": {Next: "q0", Push: []machine.Symbol{"Z", "A"}}},
				machine.Epsilon: {"A": {Next: "q1", Push: nil}},
			},
		},
	})
	require.NoError(t, err)
	return m
}

func newTestDTM(t *testing.T) machine.Machine {
	t.Helper()
	m, err := dtm.New(dtm.Definition{
		States:        []machine.State{"q0", "qf"},
		InputAlphabet: []machine.Symbol{"a"},
		TapeAlphabet:  []machine.Symbol{"a", "_"},
		Blank:         "_",
		InitialState:  "q0",
		FinalStates:   []machine.State{"qf"},
		Transitions: map[machine.State]map[machine.Symbol]dtm.Action{
			"q0": {
				"a": {Next: "q0", Write: "a", Move: dtm.Right},
				"_": {Next: "qf", Write: "_", Move: dtm.Right},
			},
		},
	})
	require.NoError(t, err)
	return m
}

func TestGenerateDOT(t *testing.T) {
	tests := []struct {
		name     string
		machine  machine.Machine
		contains []string
	}{
		{
			name:    "dfa",
			machine: nil, // filled below
			contains: []string{
				"digraph {",
				"rankdir=LR;",
				`"" [shape=point];`,
				`"" -> "q0";`,
				`"q1" [shape=doublecircle];`,
				`"q0" -> "q1" [label="a"];`,
				`"q0" -> "q0" [label="b"];`,
			},
		},
		{
			name:    "dpda",
			machine: nil,
			contains: []string{
				`"q0" -> "q0" [label="a,Z/Z,A"];`,
				`"q0" -> "q1" [label="ε,A/ε"];`,
			},
		},
		{
			name:    "dtm",
			machine: nil,
			contains: []string{
				`"q0" -> "qf" [label="_ → _, R"];`,
				`"qf" [shape=doublecircle];`,
			},
		},
	}

	tests[0].machine = newTestDFA(t)
	tests[1].machine = newTestDPDA(t)
	tests[2].machine = newTestDTM(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := graph.GenerateDOT(tc.machine)
			for _, want := range tc.contains {
				assert.Contains(t, out, want)
			}
			assert.True(t, strings.HasSuffix(out, "}\n"))
		})
	}
}

func TestGenerateDOTListsEveryState(t *testing.T) {
	out := graph.GenerateDOT(newTestDFA(t))
	assert.Contains(t, out, `"q0";`)
	assert.Contains(t, out, `"q1" [shape=doublecircle];`)
}

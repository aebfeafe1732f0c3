package automata_test

import (
	"errors"
	"strings"
	"testing"

	automata "github.com/GNINE11/ProjAutomata-TC"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFromJSONBuildsEachKind(t *testing.T) {
	tests := []struct {
		kind       machine.Kind
		definition string
		input      string
		accepted   bool
	}{
		{
			kind: machine.KindDFA,
			definition: `{
				"states": ["even", "odd"],
				"input_alphabet": ["a"],
				"initial_state": "even",
				"final_states": ["even"],
				"transitions": {
					"even": {"a": "odd"},
					"odd": {"a": "even"}
				}
			}`,
			input:    "aa",
			accepted: true,
		},
		{
			kind: machine.KindDPDA,
			definition: `{
				"states": ["q0", "q1", "q2"],
				"input_alphabet": ["a", "b"],
				"stack_alphabet": ["Z", "A"],
				"initial_state": "q0",
				"initial_stack_symbol": "Z",
				"final_states": ["q2"],
				"transitions": {
					"q0": {
						"a": {
							"Z": ["q0", ["Z", "A"]],
							"A": ["q0", ["A", "A"]]
						},
						"b": {"A": ["q1", []]}
					},
					"q1": {
						"b": {"A": ["q1", []]},
						"": {"Z": ["q2", ["Z"]]}
					}
				}
			}`,
			input:    "aabb",
			accepted: true,
		},
		{
			kind: machine.KindDTM,
			definition: `{
				"states": ["q0", "q1", "qf"],
				"input_alphabet": ["a"],
				"tape_alphabet": ["a", "_"],
				"blank": "_",
				"initial_state": "q0",
				"final_states": ["qf"],
				"transitions": {
					"q0": {
						"a": ["q1", "a", "R"],
						"_": ["qf", "_", "R"]
					},
					"q1": {
						"a": ["q0", "a", "R"]
					}
				}
			}`,
			input:    "aaaa",
			accepted: true,
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			m, err := automata.FromJSON(tc.kind, []byte(tc.definition))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, m.Kind())

			res, err := m.Run(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.accepted, res.Accepted())
		})
	}
}

func TestFromJSONRejectsUnknownKind(t *testing.T) {
	_, err := automata.FromJSON("nfa", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown machine kind")
}

func TestFromJSONRejectsMalformedPayload(t *testing.T) {
	_, err := automata.FromJSON(machine.KindDFA, []byte(`{"states": 7}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed dfa definition")
}

func TestFromJSONKeepsTypedValidationErrors(t *testing.T) {
	def := `{
		"states": ["q0"],
		"input_alphabet": ["a"],
		"initial_state": "q0",
		"final_states": [],
		"transitions": {}
	}`

	_, err := automata.FromJSON(machine.KindDFA, []byte(def))
	var missing *machine.MissingTransitionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, machine.State("q0"), missing.State)
	assert.Equal(t, machine.Symbol("a"), missing.Symbol)
}

func TestFromMapDecodesYAMLShapes(t *testing.T) {
	raw := `
states: [q0, q1, q2]
input_alphabet: [a, b]
stack_alphabet: [Z, A]
initial_state: q0
initial_stack_symbol: Z
final_states: [q2]
transitions:
  q0:
    a:
      Z: [q0, [Z, A]]
      A: [q0, [A, A]]
    b:
      A: [q1, []]
  q1:
    b:
      A: [q1, []]
    "":
      Z: [q2, [Z]]
`
	var def map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(raw), &def))

	m, err := automata.FromMap(machine.KindDPDA, def)
	require.NoError(t, err)

	res, err := m.Run("aaabbb")
	require.NoError(t, err)
	assert.True(t, res.Accepted())

	res, err = m.Run("aab")
	require.NoError(t, err)
	assert.False(t, res.Accepted())
}

func TestFromMapDecodesActionTuples(t *testing.T) {
	raw := `
states: [q0, qf]
input_alphabet: [a]
tape_alphabet: [a, x, _]
blank: _
initial_state: q0
final_states: [qf]
transitions:
  q0:
    a: [q0, x, R]
    _: [qf, _, L]
`
	var def map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(raw), &def))

	m, err := automata.FromMap(machine.KindDTM, def)
	require.NoError(t, err)

	res, err := m.Run("aaa")
	require.NoError(t, err)
	assert.True(t, res.Accepted())
	assert.Equal(t, 4, res.Steps)
}

func TestFromMapRejectsBadTuples(t *testing.T) {
	var def map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(`
states: [q0]
input_alphabet: [a]
stack_alphabet: [Z]
initial_state: q0
initial_stack_symbol: Z
final_states: []
transitions:
  q0:
    a:
      Z: [q0]
`), &def))

	_, err := automata.FromMap(machine.KindDPDA, def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pair")
}

func TestVersionIsEmbedded(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(automata.Version))
}

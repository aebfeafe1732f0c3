package automata

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dfa"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dpda"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine/dtm"
	"github.com/mitchellh/mapstructure"
)

// FromJSON builds a validated machine of the given kind from a JSON
// definition. Malformed JSON and validation failures both come back as
// errors; no machine is produced unless every check passes.
func FromJSON(kind machine.Kind, data []byte) (machine.Machine, error) {
	switch kind {
	case machine.KindDFA:
		var def dfa.Definition
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("malformed dfa definition: %w", err)
		}
		return dfa.New(def)
	case machine.KindDPDA:
		var def dpda.Definition
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("malformed dpda definition: %w", err)
		}
		return dpda.New(def)
	case machine.KindDTM:
		var def dtm.Definition
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("malformed dtm definition: %w", err)
		}
		return dtm.New(def)
	default:
		return nil, fmt.Errorf("unknown machine kind: %q (want dfa, dpda or dtm)", kind)
	}
}

// FromMap builds a validated machine of the given kind from a generic map,
// the shape produced by yaml.Unmarshal or a decoded tool argument. Moves
// and actions use the same tuple forms as the JSON wire format.
func FromMap(kind machine.Kind, def map[string]any) (machine.Machine, error) {
	switch kind {
	case machine.KindDFA:
		var d dfa.Definition
		if err := decode(def, &d); err != nil {
			return nil, fmt.Errorf("malformed dfa definition: %w", err)
		}
		return dfa.New(d)
	case machine.KindDPDA:
		var d dpda.Definition
		if err := decode(def, &d); err != nil {
			return nil, fmt.Errorf("malformed dpda definition: %w", err)
		}
		return dpda.New(d)
	case machine.KindDTM:
		var d dtm.Definition
		if err := decode(def, &d); err != nil {
			return nil, fmt.Errorf("malformed dtm definition: %w", err)
		}
		return dtm.New(d)
	default:
		return nil, fmt.Errorf("unknown machine kind: %q (want dfa, dpda or dtm)", kind)
	}
}

func decode(src map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     dst,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(decodeMoveTuple, decodeActionTuple),
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

// decodeMoveTuple converts the [next, [push...]] tuple form into a
// pushdown move.
func decodeMoveTuple(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(dpda.Move{}) || from.Kind() != reflect.Slice {
		return data, nil
	}
	tuple, ok := data.([]any)
	if !ok || len(tuple) != 2 {
		return nil, fmt.Errorf("move must be a [state, push] pair")
	}
	next, ok := tuple[0].(string)
	if !ok {
		return nil, fmt.Errorf("move state must be a string")
	}
	mv := dpda.Move{Next: machine.State(next)}
	if tuple[1] == nil {
		return mv, nil
	}
	rawPush, ok := tuple[1].([]any)
	if !ok {
		return nil, fmt.Errorf("move push sequence must be a list")
	}
	for _, v := range rawPush {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("push symbol must be a string")
		}
		mv.Push = append(mv.Push, machine.Symbol(s))
	}
	return mv, nil
}

// decodeActionTuple converts the [next, write, direction] tuple form into
// a Turing action.
func decodeActionTuple(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(dtm.Action{}) || from.Kind() != reflect.Slice {
		return data, nil
	}
	tuple, ok := data.([]any)
	if !ok || len(tuple) != 3 {
		return nil, fmt.Errorf("action must be a [state, write, direction] triple")
	}
	parts := make([]string, 3)
	for i, v := range tuple {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("action element %d must be a string", i)
		}
		parts[i] = s
	}
	return dtm.Action{
		Next:  machine.State(parts[0]),
		Write: machine.Symbol(parts[1]),
		Move:  dtm.Direction(parts[2]),
	}, nil
}

package dpda

import (
	"encoding/json"
	"fmt"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
)

// Move is the effect of one pushdown transition: the state to enter and
// the symbols pushed in place of the consumed stack top. Pushing happens
// in list order, so the last listed symbol ends up on top. An empty list
// pops without replacement.
type Move struct {
	Next machine.State
	Push []machine.Symbol
}

// UnmarshalJSON accepts the wire tuple form [next, [push...]].
func (mv *Move) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("move must be a [state, push] pair: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("move must be a [state, push] pair, got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &mv.Next); err != nil {
		return fmt.Errorf("move state: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &mv.Push); err != nil {
		return fmt.Errorf("move push sequence: %w", err)
	}
	return nil
}

// MarshalJSON emits the wire tuple form [next, [push...]].
func (mv Move) MarshalJSON() ([]byte, error) {
	push := mv.Push
	if push == nil {
		push = []machine.Symbol{}
	}
	return json.Marshal([2]any{mv.Next, push})
}

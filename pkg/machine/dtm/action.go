package dtm

import (
	"encoding/json"
	"fmt"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
)

// Direction is a head movement.
type Direction string

const (
	// Left moves the head one cell toward lower positions.
	Left Direction = "L"
	// Right moves the head one cell toward higher positions.
	Right Direction = "R"
)

// Action is the effect of one Turing transition: enter Next, write Write
// over the cell under the head, then move the head one cell.
type Action struct {
	Next  machine.State
	Write machine.Symbol
	Move  Direction
}

// UnmarshalJSON accepts the wire tuple form [next, write, direction].
func (a *Action) UnmarshalJSON(data []byte) error {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("action must be a [state, write, direction] triple: %w", err)
	}
	if len(tuple) != 3 {
		return fmt.Errorf("action must be a [state, write, direction] triple, got %d elements", len(tuple))
	}
	a.Next = machine.State(tuple[0])
	a.Write = machine.Symbol(tuple[1])
	a.Move = Direction(tuple[2])
	return nil
}

// MarshalJSON emits the wire tuple form [next, write, direction].
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{string(a.Next), string(a.Write), string(a.Move)})
}

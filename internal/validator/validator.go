// Package validator lints built machines for structural problems that are
// legal to construct but almost always definition mistakes.
package validator

import (
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
)

// Unreachable reports every declared state that no chain of transitions can
// reach from the initial state. A machine with unreachable states still
// runs, the states are just dead weight in the definition.
func Unreachable(m machine.Machine) []machine.State {
	next := make(map[machine.State][]machine.State)
	for _, e := range m.Edges() {
		next[e.From] = append(next[e.From], e.To)
	}

	visited := make(map[machine.State]bool)
	queue := []machine.State{m.InitialState()}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range next[current] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	// States() is already in lexical order, so the report is too.
	var unreachable []machine.State
	for _, st := range m.States() {
		if !visited[st] {
			unreachable = append(unreachable, st)
		}
	}
	return unreachable
}

/*
Package dsl provides a fluent builder for constructing machine definitions
programmatically.

It allows developers to assemble finite, pushdown and Turing machines using
a type-safe builder pattern instead of external YAML or JSON files. This is
particularly useful for generated machines, unit test fixtures, and
leveraging IDE autocompletion/type-checking. Input and stack alphabets are
inferred from the declared transitions.

Example usage:

	package main

	import (
		"github.com/GNINE11/ProjAutomata-TC/pkg/dsl"
	)

	func main() {
		b := dsl.DFA()

		b.State("even").Initial().Final().
			On("a", "odd")

		b.State("odd").
			On("a", "even")

		// Build validates like any other construction path.
		m, err := b.Build()
		if err != nil {
			panic(err)
		}
		// ... feed inputs to m.Run(...)
	}
*/
package dsl

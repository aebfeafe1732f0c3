package automata

import _ "embed"

// Version is the release version, embedded from the VERSION file. Callers
// should trim surrounding whitespace before display.
//
//go:embed VERSION
var Version string

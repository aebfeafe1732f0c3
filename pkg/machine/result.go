package machine

// Verdict is the outcome of a run.
type Verdict string

const (
	// Accepted means the machine halted in an accepting configuration.
	Accepted Verdict = "accepted"
	// Rejected means it did not. The Diagnostic field tells whether the
	// run finished normally or was cut short.
	Rejected Verdict = "rejected"
)

// Diagnostic qualifies a Rejected verdict whose run was cut short.
type Diagnostic string

const (
	// StepLimitExceeded means the run burned its whole step budget.
	StepLimitExceeded Diagnostic = "step_limit_exceeded"
	// NonTerminating means the loop guard proved the machine was cycling
	// through epsilon moves without progress.
	NonTerminating Diagnostic = "non_terminating"
	// EmptyStack means a pushdown machine drained its stack with input
	// left to read.
	EmptyStack Diagnostic = "empty_stack"
)

// Result reports how a run ended: the verdict, the state the machine
// halted in and the number of executed steps. Diagnostic is empty for runs
// that halted on their own.
type Result struct {
	Verdict    Verdict    `json:"verdict"`
	Diagnostic Diagnostic `json:"diagnostic,omitempty"`
	State      State      `json:"state"`
	Steps      int        `json:"steps"`
}

// Accepted reports whether the verdict is Accepted.
func (r Result) Accepted() bool {
	return r.Verdict == Accepted
}

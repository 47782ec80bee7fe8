package po

import "fmt"

// State is a step of a render.
type State int

const (
	StateReset State = iota
	StateLeadingRendered
	StateBudgetEstimated
	StateTableRendered
	StateTrailingRendered
	StateFinalized
	StateFailed
)

var stateNames = [...]string{
	StateReset:            "reset",
	StateLeadingRendered:  "leading-rendered",
	StateBudgetEstimated:  "budget-estimated",
	StateTableRendered:    "table-rendered",
	StateTrailingRendered: "trailing-rendered",
	StateFinalized:        "finalized",
	StateFailed:           "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == StateFinalized || s == StateFailed }

package agent

// State is one node of the loop controller's state machine.
type State int

const (
	StateInit State = iota
	StateAwaitModel
	StateParse
	StateDispatchTool
	StateApplyResult
	StateDone
	StateAborted
)

var stateNames = map[State]string{
	StateInit:         "INIT",
	StateAwaitModel:   "AWAIT_MODEL",
	StateParse:        "PARSE",
	StateDispatchTool: "DISPATCH_TOOL",
	StateApplyResult:  "APPLY_RESULT",
	StateDone:         "DONE",
	StateAborted:      "ABORTED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Terminal reports whether the state machine halts in this state.
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted
}

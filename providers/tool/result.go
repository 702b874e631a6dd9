package tool

import "github.com/leofalp/reagent/internal/utils"

// Result is the outcome of one tool dispatch, handed back to the model as an
// observation. A failed execution sets Error and leaves Output empty; the two
// are never both populated.
type Result struct {
	Tool        string `json:"tool"`
	Output      string `json:"output,omitempty"`
	Error       string `json:"error,omitempty"`
	SideEffects string `json:"side_effects,omitempty"`
}

// Failed reports whether the execution produced an error.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Observation returns the JSON form of the result, the shape embedded in the
// tool-role message appended to the conversation.
func (r Result) Observation() string {
	return utils.JSONToString(r)
}

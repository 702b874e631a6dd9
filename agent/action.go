package agent

// Action is the parsed intent of one model reply. Exactly one of the three
// variants is produced per reply: a tool invocation, a final answer, or a
// parse error carrying the raw text for corrective feedback.
type Action interface {
	isAction()
}

// ToolCall asks for one tool execution. Arguments is the canonical JSON
// object the catalog dispatches with.
type ToolCall struct {
	Name      string
	Arguments string
}

// FinalAnswer ends the run with the model's answer text.
type FinalAnswer struct {
	Text string
}

// ParseError marks a reply that fits neither shape. It is data, not a Go
// error: the loop feeds Reason back to the model and keeps going.
type ParseError struct {
	Raw    string
	Reason string
}

func (ToolCall) isAction()    {}
func (FinalAnswer) isAction() {}
func (ParseError) isAction()  {}

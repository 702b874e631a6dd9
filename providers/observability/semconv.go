package observability

// Semantic attribute and event names shared by the agent loop, the model
// transports, and the tool registry. Keeping them here means a trace reader
// sees one consistent vocabulary regardless of which component emitted the
// signal.

// --- Model Transport Attributes ---

const (
	// AttrTransportMode is the transport variant in use ("manual", "automatic")
	AttrTransportMode = "transport.mode"

	// AttrModel is the model identifier (e.g. "deepseek/deepseek-chat-v3.1")
	AttrModel = "llm.model"

	// AttrEndpoint is the API endpoint URL
	AttrEndpoint = "llm.endpoint"

	// AttrReplyLength is the length of the raw model reply in bytes
	AttrReplyLength = "llm.reply.length"
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPURL              = "http.url"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- Tool Execution Attributes ---

const (
	// AttrToolName is the name of the tool being executed
	AttrToolName = "tool.name"

	// AttrToolInput is the tool input (serialized)
	AttrToolInput = "tool.input"

	// AttrToolOutput is the tool output (serialized)
	AttrToolOutput = "tool.output"

	// AttrToolDuration is the execution duration
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed
	AttrToolError = "tool.error"
)

// --- Conversation Attributes ---

const (
	// AttrMessageRole is the role of an appended conversation message
	AttrMessageRole = "conversation.message.role"

	// AttrMessageLength is the content length of an appended message
	AttrMessageLength = "conversation.message.length"

	// AttrTotalMessages is the running message count of the conversation
	AttrTotalMessages = "conversation.total_messages"
)

// --- Loop Attributes ---

const (
	// AttrLoopState is the controller state when the event was emitted
	AttrLoopState = "loop.state"

	// AttrLoopIteration is the current iteration count
	AttrLoopIteration = "loop.iteration"
)

// --- Events ---

const (
	EventToolExecutionStart = "tool.execution.start"
	EventToolExecutionEnd   = "tool.execution.end"
	EventModelSubmit        = "model.submit"
	EventModelReply         = "model.reply"
	EventConversationAppend = "conversation.append"
	EventStateTransition    = "loop.state.transition"
)

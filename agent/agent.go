package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/leofalp/reagent/core/sessionlog"
	"github.com/leofalp/reagent/internal/utils"
	"github.com/leofalp/reagent/providers/ai"
	"github.com/leofalp/reagent/providers/memory"
	"github.com/leofalp/reagent/providers/memory/inmemory"
	"github.com/leofalp/reagent/providers/observability"
	"github.com/leofalp/reagent/providers/tool"
)

// DefaultMaxIterations bounds a run that never produces a final answer.
const DefaultMaxIterations = 50

// ErrMaxIterations is returned by [Agent.Run] when the iteration budget is
// spent before the model emits a final answer.
var ErrMaxIterations = errors.New("reached maximum iterations without a final answer")

// Agent owns one conversation and drives it to completion. Configure with
// the chainable With* methods before calling Run; an Agent is not safe for
// concurrent runs.
type Agent struct {
	transport     ai.Transport
	catalog       *tool.Catalog
	parser        *Parser
	memory        memory.Provider
	observer      observability.Provider
	transcript    *sessionlog.Logger
	projectDir    string
	model         string
	maxIterations int
	onThought     func(thought string)
}

// New creates an agent over the given transport and tool catalog, sandboxed
// to projectDir. Conversation state defaults to an in-memory store and the
// iteration limit to [DefaultMaxIterations].
func New(transport ai.Transport, catalog *tool.Catalog, projectDir string) *Agent {
	return &Agent{
		transport:     transport,
		catalog:       catalog,
		parser:        NewParser(catalog),
		memory:        inmemory.New(),
		projectDir:    projectDir,
		maxIterations: DefaultMaxIterations,
	}
}

// WithMemory replaces the conversation store.
func (a *Agent) WithMemory(provider memory.Provider) *Agent {
	a.memory = provider
	return a
}

// WithModel sets the model identifier stamped on every request.
func (a *Agent) WithModel(model string) *Agent {
	a.model = model
	return a
}

// WithMaxIterations bounds the number of loop iterations.
func (a *Agent) WithMaxIterations(max int) *Agent {
	if max > 0 {
		a.maxIterations = max
	}
	return a
}

// WithSessionLog attaches a transcript logger. A nil logger disables the
// transcript.
func (a *Agent) WithSessionLog(transcript *sessionlog.Logger) *Agent {
	a.transcript = transcript
	return a
}

// WithObservability attaches a span provider for the run.
func (a *Agent) WithObservability(observer observability.Provider) *Agent {
	a.observer = observer
	return a
}

// WithThoughtHandler registers a callback invoked with the model's thought
// text on every reply that carries one. Used for console echo.
func (a *Agent) WithThoughtHandler(handler func(thought string)) *Agent {
	a.onThought = handler
	return a
}

// Run drives the loop for one task until the model produces a final answer,
// the transport fails, or the iteration budget is spent. The returned string
// is the final answer text; on failure it is empty and the error is either a
// [*ai.TransportError] or [ErrMaxIterations].
func (a *Agent) Run(ctx context.Context, task string) (string, error) {
	var span observability.Span
	if a.observer != nil {
		ctx, span = a.observer.StartSpan(ctx, "agent.run",
			observability.String(observability.AttrTransportMode, a.transport.Mode()),
			observability.String(observability.AttrModel, a.model),
		)
		defer span.End()
	}

	session := &Session{
		ProjectDirectory: a.projectDir,
		TransportMode:    a.transport.Mode(),
		MaxIterations:    a.maxIterations,
	}

	state := StateInit
	a.transcript.Event("run started (transport=%s, max_iterations=%d)", session.TransportMode, session.MaxIterations)

	a.memory.AppendMessage(ctx, &ai.Message{
		Role:    ai.RoleSystem,
		Content: SystemPrompt(a.catalog.Schemas(), a.projectDir),
	})
	a.memory.AppendMessage(ctx, &ai.Message{
		Role:    ai.RoleUser,
		Content: fmt.Sprintf("<question>%s</question>", task),
	})

	var (
		reply   string
		pending ToolCall
		result  tool.Result
	)
	state = a.transition(session, span, state, StateAwaitModel)

	for !state.Terminal() {
		switch state {
		case StateAwaitModel:
			request := ai.Request{
				Model:    a.model,
				Messages: a.memory.AllMessages(ctx),
				Tools:    a.catalog.Schemas(),
			}
			a.transcript.Request(utils.JSONToString(request))
			if span != nil {
				span.AddEvent(observability.EventModelSubmit,
					observability.Int(observability.AttrTotalMessages, len(request.Messages)),
					observability.Int(observability.AttrLoopIteration, session.IterationCount),
				)
			}

			var err error
			reply, err = a.transport.Submit(ctx, request)
			if err != nil {
				a.transcript.Event("transport failure: %v", err)
				if span != nil {
					span.RecordError(err)
					span.SetStatus(observability.StatusError, "transport failure")
				}
				a.transition(session, span, state, StateAborted)
				return "", err
			}
			a.transcript.Reply(reply)
			if span != nil {
				span.AddEvent(observability.EventModelReply,
					observability.Int(observability.AttrReplyLength, len(reply)),
				)
			}

			a.memory.AppendMessage(ctx, &ai.Message{Role: ai.RoleAssistant, Content: reply})
			if thought := Thought(reply); thought != "" && a.onThought != nil {
				a.onThought(thought)
			}
			state = a.transition(session, span, state, StateParse)

		case StateParse:
			switch action := a.parser.Parse(reply).(type) {
			case FinalAnswer:
				a.transcript.Event("final answer after %d iterations", session.IterationCount)
				if span != nil {
					span.SetStatus(observability.StatusOK, "final answer")
				}
				a.transition(session, span, state, StateDone)
				return action.Text, nil

			case ParseError:
				a.transcript.Event("parse error: %s", action.Reason)
				a.memory.AppendMessage(ctx, &ai.Message{
					Role:    ai.RoleUser,
					Content: correctiveMessage(action),
				})
				session.IterationCount++
				if session.Exhausted() {
					a.transcript.Event("aborted: %v", ErrMaxIterations)
					a.transition(session, span, state, StateAborted)
					return "", ErrMaxIterations
				}
				state = a.transition(session, span, state, StateAwaitModel)

			case ToolCall:
				pending = action
				state = a.transition(session, span, state, StateDispatchTool)
			}

		case StateDispatchTool:
			result = a.catalog.Dispatch(ctx, pending.Name, pending.Arguments)
			state = a.transition(session, span, state, StateApplyResult)

		case StateApplyResult:
			observation := result.Observation()
			a.transcript.ToolResult(observation)
			a.memory.AppendMessage(ctx, &ai.Message{
				Role:    ai.RoleTool,
				Name:    result.Tool,
				Content: fmt.Sprintf("<observation>%s</observation>", observation),
			})
			session.IterationCount++
			if session.Exhausted() {
				a.transcript.Event("aborted: %v", ErrMaxIterations)
				if span != nil {
					span.SetStatus(observability.StatusError, "iteration limit")
				}
				a.transition(session, span, state, StateAborted)
				return "", ErrMaxIterations
			}
			state = a.transition(session, span, state, StateAwaitModel)
		}
	}

	return "", ErrMaxIterations
}

// transition records a state change in the transcript and the span and
// returns the next state.
func (a *Agent) transition(session *Session, span observability.Span, from, to State) State {
	a.transcript.Event("state %s -> %s", from, to)
	if span != nil {
		span.AddEvent(observability.EventStateTransition,
			observability.String(observability.AttrLoopState, to.String()),
			observability.Int(observability.AttrLoopIteration, session.IterationCount),
		)
	}
	return to
}

// correctiveMessage phrases a parse failure as feedback the model can act
// on next turn.
func correctiveMessage(parseErr ParseError) string {
	return fmt.Sprintf(
		"Your previous reply could not be processed: %s. Reply with a <thought> followed by exactly one <action> containing tool_name({...json arguments...}), or a <final_answer>.",
		parseErr.Reason,
	)
}

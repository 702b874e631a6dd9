package agent

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/leofalp/reagent/core/parse"
	"github.com/leofalp/reagent/providers/tool"
)

// Reply tag markers. The model is instructed to wrap each part of its reply
// in these tags; the parser extracts them positionally.
const (
	tagThought     = "thought"
	tagAction      = "action"
	tagFinalAnswer = "final_answer"
)

// actionCallPattern matches the call syntax inside an <action> tag:
// tool_name({"arg": "value"}).
var actionCallPattern = regexp.MustCompile(`(?s)\A\s*(\w+)\s*\((.*)\)\s*\z`)

// Parser turns raw model replies into [Action] values. It validates tool
// names and required arguments against the catalog so a bad invocation is
// caught before dispatch and reported back to the model as corrective text.
type Parser struct {
	catalog *tool.Catalog
}

// NewParser creates a parser bound to the given tool catalog.
func NewParser(catalog *tool.Catalog) *Parser {
	return &Parser{catalog: catalog}
}

// Parse converts one raw reply into exactly one [Action]. It never returns a
// Go error: malformed replies come back as the [ParseError] variant.
//
// A <final_answer> tag wins over everything else in the reply, so a model
// that emits both an action and an answer terminates cleanly instead of
// running one more tool.
func (p *Parser) Parse(raw string) Action {
	if answer, ok := extractTag(raw, tagFinalAnswer); ok {
		return FinalAnswer{Text: strings.TrimSpace(answer)}
	}

	body, ok := extractTag(raw, tagAction)
	if !ok {
		return ParseError{
			Raw:    raw,
			Reason: "reply contains neither an <action> nor a <final_answer> tag",
		}
	}

	return p.parseCall(raw, strings.TrimSpace(body))
}

// Thought extracts the model's reasoning text from a reply, or "" when the
// reply carries no <thought> tag. Used for console echo and the transcript,
// never for control flow.
func Thought(raw string) string {
	thought, _ := extractTag(raw, tagThought)
	return strings.TrimSpace(thought)
}

// parseCall validates the call syntax inside an <action> tag and produces a
// ToolCall with canonical JSON arguments.
func (p *Parser) parseCall(raw, body string) Action {
	match := actionCallPattern.FindStringSubmatch(body)
	if match == nil {
		return ParseError{
			Raw:    raw,
			Reason: fmt.Sprintf("invalid action syntax %q: expected tool_name({...json arguments...})", body),
		}
	}
	name := match[1]
	argsText := strings.TrimSpace(match[2])

	genericTool, ok := p.catalog.Get(name)
	if !ok {
		return ParseError{
			Raw:    raw,
			Reason: fmt.Sprintf("unknown tool %q (available: %s)", name, strings.Join(p.toolNames(), ", ")),
		}
	}

	arguments := map[string]any{}
	if argsText != "" {
		parsed, err := parse.StringAs[map[string]any](argsText)
		if err != nil {
			return ParseError{
				Raw:    raw,
				Reason: fmt.Sprintf("arguments for %s are not a valid JSON object: %v", name, err),
			}
		}
		arguments = parsed
	}

	if schema := genericTool.Schema().Parameters; schema != nil {
		for _, required := range schema.Required {
			if _, present := arguments[required]; !present {
				return ParseError{
					Raw:    raw,
					Reason: fmt.Sprintf("missing required argument %q for %s", required, name),
				}
			}
		}
	}

	canonical, err := json.Marshal(arguments)
	if err != nil {
		return ParseError{
			Raw:    raw,
			Reason: fmt.Sprintf("encoding arguments for %s: %v", name, err),
		}
	}

	return ToolCall{Name: name, Arguments: string(canonical)}
}

func (p *Parser) toolNames() []string {
	schemas := p.catalog.Schemas()
	names := make([]string, len(schemas))
	for i, schema := range schemas {
		names[i] = schema.Name
	}
	return names
}

// extractTag returns the content between <tag> and </tag>. When the opening
// tag is present but the closing tag is missing (a model that stopped
// mid-emission) the remainder of the text is taken.
func extractTag(text, tag string) (string, bool) {
	open := "<" + tag + ">"
	start := strings.Index(text, open)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(open):]

	if end := strings.Index(rest, "</"+tag+">"); end >= 0 {
		return rest[:end], true
	}
	return rest, true
}

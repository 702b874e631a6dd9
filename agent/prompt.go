package agent

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/leofalp/reagent/providers/ai"
)

// maxFilesInPrompt caps the directory listing embedded in the system prompt
// so a large project does not blow up the context.
const maxFilesInPrompt = 50

// systemPromptTemplate instructs the model on the reply protocol. Variables
// are expanded with os.Expand: ${tool_list}, ${operating_system},
// ${file_list}.
const systemPromptTemplate = `You need to solve a problem. To do this, you need to break the problem down into multiple steps. For each step, first use <thought> to think about what to do, then use one of the available tools to decide on an <action>. Next, you will receive an <observation> from the environment/tools based on your action. Continue this process of thinking and acting until you have enough information to provide a <final_answer>.

Please strictly use the following XML tag format for all steps:
- <question> User's question
- <thought> Your thinking process
- <action> Tool operation to take
- <observation> Result returned by tool or environment
- <final_answer> Final answer

Example:

<question>Create a file greeting.txt containing the word hello.</question>
<thought>I need to create the file with the requested content. I can use the write_to_file tool.</thought>
<action>write_to_file({"path": "greeting.txt", "content": "hello"})</action>
<observation>{"tool":"write_to_file","output":"{\"path\":\"greeting.txt\",\"bytes_written\":5}"}</observation>
<thought>The file was written. I can answer now.</thought>
<final_answer>Created greeting.txt containing "hello".</final_answer>

CRITICAL RULES - MUST FOLLOW EXACTLY:
- Each response MUST contain exactly TWO tags: <thought> followed by EITHER <action> OR <final_answer>
- An <action> invokes exactly one tool as tool_name({...}) where {...} is a JSON object with the tool's arguments
- IMMEDIATELY STOP after outputting <action>. DO NOT continue generating text.
- NEVER generate <observation> tags yourself - only the system provides observations
- NEVER include multiple <action> tags in one response
- NEVER jump directly to <final_answer> without using available tools first
- Use relative paths for files: write_to_file({"path": "test.txt", "content": "..."}) NOT "/tmp/test.txt"

Available tools for this task:
${tool_list}

Environment information:

Operating system: ${operating_system}
Files in current directory: ${file_list}`

// SystemPrompt renders the system message for a run: the reply protocol,
// the advertised tool list, and a snapshot of the project directory.
func SystemPrompt(schemas []ai.ToolSchema, projectDir string) string {
	values := map[string]string{
		"tool_list":        renderToolList(schemas),
		"operating_system": operatingSystemName(),
		"file_list":        renderFileList(projectDir),
	}
	return os.Expand(systemPromptTemplate, func(key string) string {
		return values[key]
	})
}

// renderToolList formats one line per tool: its call shape and description.
func renderToolList(schemas []ai.ToolSchema) string {
	lines := make([]string, 0, len(schemas))
	for _, schema := range schemas {
		lines = append(lines, fmt.Sprintf("- %s(%s): %s", schema.Name, renderArguments(schema), schema.Description))
	}
	return strings.Join(lines, "\n")
}

// renderArguments summarizes a tool's argument object as
// {"name": type, "optional_name": type?}. Required arguments come first.
func renderArguments(schema ai.ToolSchema) string {
	params := schema.Parameters
	if params == nil || len(params.Properties) == 0 {
		return "{}"
	}

	required := make(map[string]bool, len(params.Required))
	for _, name := range params.Required {
		required[name] = true
	}

	names := make([]string, 0, len(params.Properties))
	for name := range params.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		suffix := "?"
		if required[name] {
			suffix = ""
		}
		parts = append(parts, fmt.Sprintf("%q: %s%s", name, params.Properties[name].Type, suffix))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// renderFileList lists the project directory entries, sorted, capped at
// maxFilesInPrompt with an overflow note. An unreadable directory renders
// as empty rather than failing prompt construction.
func renderFileList(projectDir string) string {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return ""
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	overflow := 0
	if len(names) > maxFilesInPrompt {
		overflow = len(names) - maxFilesInPrompt
		names = names[:maxFilesInPrompt]
	}

	list := strings.Join(names, ", ")
	if overflow > 0 {
		list += fmt.Sprintf(" (+%d more)", overflow)
	}
	return list
}

func operatingSystemName() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	default:
		return "Unknown"
	}
}

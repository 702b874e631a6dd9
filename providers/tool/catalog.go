package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leofalp/reagent/providers/ai"
)

// Catalog manages the fixed set of tools available to one agent run and is
// the single dispatch point for executing them. Lookup is by name,
// case-insensitive.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// NewCatalog creates a new empty tool catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		tools: make(map[string]GenericTool),
	}
}

// NewCatalogWithTools creates a new catalog pre-populated with the given tools.
func NewCatalogWithTools(tools ...GenericTool) *Catalog {
	catalog := NewCatalog()
	catalog.AddTools(tools...)
	return catalog
}

// AddTools adds multiple tools to the catalog. Tool names are taken from each
// tool's Schema().Name and stored in lowercase. A tool with a duplicate name
// replaces the previous one.
func (c *Catalog) AddTools(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[strings.ToLower(t.Schema().Name)] = t
	}
}

// Get retrieves a tool by name (case-insensitive).
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, exists := c.tools[strings.ToLower(name)]
	return t, exists
}

// Has checks if a tool with the given name exists (case-insensitive).
func (c *Catalog) Has(name string) bool {
	_, exists := c.Get(name)
	return exists
}

// Size returns the number of tools in the catalog.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Schemas returns the advertised schema of every tool, sorted by name so the
// payload sent to the model is deterministic.
func (c *Catalog) Schemas() []ai.ToolSchema {
	c.mu.RLock()
	defer c.mu.RUnlock()

	schemas := make([]ai.ToolSchema, 0, len(c.tools))
	for _, t := range c.tools {
		schemas = append(schemas, t.Schema())
	}
	sort.Slice(schemas, func(i, j int) bool { return schemas[i].Name < schemas[j].Name })
	return schemas
}

// Dispatch looks up the named tool, validates and executes it, and returns
// the outcome as a [Result]. Errors never cross this boundary: unknown tool
// names, invalid arguments, sandbox violations, and execution failures all
// come back as Result.Error so the model can reason about and recover from
// them.
func (c *Catalog) Dispatch(ctx context.Context, name string, argumentsJSON string) Result {
	t, ok := c.Get(name)
	if !ok {
		return Result{
			Tool:  name,
			Error: fmt.Sprintf("unknown tool %q (available: %s)", name, strings.Join(c.names(), ", ")),
		}
	}

	output, err := t.Call(ctx, argumentsJSON)
	if err != nil {
		result := Result{Tool: name, Error: err.Error()}
		if errors.Is(err, ErrSandboxViolation) {
			result.Error = "sandbox violation: " + err.Error()
		}
		return result
	}

	return Result{
		Tool:        name,
		Output:      output,
		SideEffects: t.Describe(argumentsJSON),
	}
}

// names returns the sorted lowercase tool names.
func (c *Catalog) names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

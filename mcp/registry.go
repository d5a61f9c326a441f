package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/raworc/raworc-mcp/schema"
)

// Handler executes a tool against validated arguments and returns the text
// payload for the result's content block. A returned error is a domain-level
// failure (typically a backend call that came back non-2xx) and is surfaced
// as an error-flagged result, not as a JSON-RPC error.
type Handler func(ctx context.Context, args Arguments) (string, error)

// Param declares one named tool parameter. The set of Params is both the
// validation contract and the source of the inputSchema advertised by
// tools/list, so MCP clients generate calls that match exactly what the
// validator accepts.
type Param struct {
	Name        string
	Type        schema.Type
	Description string
	Required    bool
	// Default is substituted for an absent optional parameter. Nil means no
	// default; the handler sees the key as absent.
	Default any
	// Enum restricts string parameters to a fixed value set (schema only;
	// the backend enforces the actual state machine).
	Enum []string
	// Items is the element type for array parameters.
	Items schema.Type
}

// Tool is one entry in the declarative catalog: a unique name, the parameter
// contract, and the handler invoked with validated arguments.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Arguments holds a tool call's arguments after validation. Accessors do not
// re-check types: the validator guarantees every present value matches its
// declared parameter type before a handler runs.
type Arguments map[string]any

// Str returns a required string parameter.
func (a Arguments) Str(name string) string {
	v, _ := a[name].(string)
	return v
}

// OptStr returns an optional string parameter and whether it was supplied.
func (a Arguments) OptStr(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

// Int returns an integer parameter and whether it was supplied. JSON numbers
// decode as float64; validation guarantees a zero fractional part.
func (a Arguments) Int(name string) (int64, bool) {
	v, ok := a[name].(float64)
	return int64(v), ok
}

// Num returns a numeric parameter and whether it was supplied.
func (a Arguments) Num(name string) (float64, bool) {
	v, ok := a[name].(float64)
	return v, ok
}

// Bool returns a boolean parameter and whether it was supplied.
func (a Arguments) Bool(name string) (bool, bool) {
	v, ok := a[name].(bool)
	return v, ok
}

// Object returns an object parameter, or nil if absent.
func (a Arguments) Object(name string) map[string]any {
	v, _ := a[name].(map[string]any)
	return v
}

// StrSlice returns a string-array parameter, or nil if absent.
func (a Arguments) StrSlice(name string) []string {
	raw, ok := a[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, _ := item.(string)
		out = append(out, s)
	}
	return out
}

// Registry holds the fixed mapping from tool name to definition. It is built
// once at startup and read-only afterwards, so concurrent dispatch shares it
// without locking.
type Registry struct {
	tools map[string]*Tool
	defs  []ToolDefinition
}

// NewRegistry builds a registry from a declarative tool table. Names must be
// unique; the tools/list order is the table order.
func NewRegistry(tools ...*Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]*Tool, len(tools)),
		defs:  make([]ToolDefinition, 0, len(tools)),
	}

	for _, tool := range tools {
		if tool == nil {
			return nil, fmt.Errorf("register tool: nil tool")
		}
		if tool.Name == "" {
			return nil, fmt.Errorf("register tool: missing tool name")
		}
		if tool.Handler == nil {
			return nil, fmt.Errorf("register tool %q: missing handler", tool.Name)
		}
		if _, exists := r.tools[tool.Name]; exists {
			return nil, fmt.Errorf("register tool %q: duplicate name", tool.Name)
		}

		def, err := toolDefinition(tool)
		if err != nil {
			return nil, fmt.Errorf("register tool %q: %w", tool.Name, err)
		}

		r.tools[tool.Name] = tool
		r.defs = append(r.defs, def)
	}

	return r, nil
}

// Get retrieves a tool by exact, case-sensitive name. Returns the tool and
// true if found, or nil and false if no tool with that name is registered.
func (r *Registry) Get(name string) (*Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Definitions returns the tool definitions in registration order.
// This is what tools/list serializes; handlers are never exposed.
func (r *Registry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, len(r.defs))
	copy(defs, r.defs)
	return defs
}

func toolDefinition(tool *Tool) (ToolDefinition, error) {
	input, err := json.Marshal(inputSchema(tool.Params))
	if err != nil {
		return ToolDefinition{}, fmt.Errorf("render input schema: %w", err)
	}

	return ToolDefinition{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: input,
	}, nil
}

func inputSchema(params []Param) *schema.JSON {
	js := &schema.JSON{
		Type:       schema.Object,
		Properties: map[string]*schema.JSON{},
	}
	for _, p := range params {
		prop := &schema.JSON{
			Type:        p.Type,
			Description: p.Description,
			Enum:        p.Enum,
			Default:     p.Default,
		}
		if p.Type == schema.Array {
			items := p.Items
			if items == "" {
				items = schema.String
			}
			prop.Items = &schema.JSON{Type: items}
		}
		js.Properties[p.Name] = prop
		if p.Required {
			js.Required = append(js.Required, p.Name)
		}
	}
	return js
}

// Package tools provides the tool framework and implementations for
// the assistant.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotina/rotina/internal/provider"
)

// Tool is the interface that all assistant tools must implement.
type Tool interface {
	// Name returns the tool identifier used in function calls.
	Name() string
	// Description returns a human-readable description for the LLM.
	Description() string
	// Parameters returns the JSON Schema for tool parameters.
	Parameters() map[string]any
	// Execute runs the tool with the given parameters. Failures are
	// reported inside the result payload with a nil error so the
	// conversation can continue; a non-nil error is reserved for
	// infrastructure problems.
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// TieredTool is an optional interface for tools that declare a risk tier.
type TieredTool interface {
	Tool
	Tier() int
}

// Risk tier constants.
const (
	TierReadOnly = 0 // read-only internal tools
	TierWrite    = 1 // controlled write/internal effects
	TierExternal = 2 // calls an external service
)

// ToolTier returns the risk tier for a tool, defaulting unclassified
// tools to read-only.
func ToolTier(t Tool) int {
	if tt, ok := t.(TieredTool); ok {
		return tt.Tier()
	}
	return TierReadOnly
}

// Registry manages tool registration and execution.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools in registration order.
func (r *Registry) List() []Tool {
	result := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

// Definitions returns tool definitions in the provider wire format.
func (r *Registry) Definitions() []provider.ToolDefinition {
	result := make([]provider.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		result = append(result, provider.ToolDefinition{
			Type: "function",
			Function: provider.FunctionDef{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		})
	}
	return result
}

// Execute runs a tool by name with the given parameters.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (string, error) {
	tool, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}
	return tool.Execute(ctx, params)
}

// GetString extracts a string parameter with a default value.
func GetString(params map[string]any, key string, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}

// GetInt extracts an int parameter with a default value.
func GetInt(params map[string]any, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return defaultVal
}

// statusPayload serializes a structured tool result. Every tool answers
// with one JSON object carrying a status field; callers never see bare
// prose results.
func statusPayload(fields map[string]any) string {
	data, err := json.Marshal(fields)
	if err != nil {
		return `{"status":"error","message":"internal serialization failure"}`
	}
	return string(data)
}

func errorPayload(msg string) string {
	return statusPayload(map[string]any{"status": "error", "message": msg})
}

func missingArg(name string) string {
	return errorPayload(fmt.Sprintf("missing required argument: %s", name))
}

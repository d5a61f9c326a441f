package mcp

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/raworc/raworc-mcp/schema"
)

// ValidationError reports a single argument that failed the tool's declared
// parameter contract. It always precedes dispatch: a handler never runs, and
// the backend is never called, for arguments that fail validation.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingParam(name string) *ValidationError {
	return &ValidationError{
		Param:   name,
		Message: fmt.Sprintf("missing required parameter: %s", name),
	}
}

func wrongType(name string, want schema.Type) *ValidationError {
	return &ValidationError{
		Param:   name,
		Message: fmt.Sprintf("invalid type for parameter %s: expected %s", name, want),
	}
}

// validateArguments checks raw tool-call arguments against the declared
// parameters. Unknown extra keys are ignored for forward compatibility;
// absent optional parameters take their declared default. The returned
// Arguments are what the handler sees. Validation is pure: it never partially
// invokes the handler.
func validateArguments(params []Param, raw json.RawMessage) (Arguments, *ValidationError) {
	args := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("arguments must be a JSON object: %v", err)}
		}
	}

	validated := make(Arguments, len(params))
	for _, p := range params {
		value, present := args[p.Name]
		if !present || value == nil {
			if p.Required {
				return nil, missingParam(p.Name)
			}
			if p.Default != nil {
				validated[p.Name] = p.Default
			}
			continue
		}
		if !matchesType(value, p.Type, p.Items) {
			return nil, wrongType(p.Name, p.Type)
		}
		validated[p.Name] = value
	}

	return validated, nil
}

func matchesType(value any, t, items schema.Type) bool {
	switch t {
	case schema.String:
		_, ok := value.(string)
		return ok
	case schema.Boolean:
		_, ok := value.(bool)
		return ok
	case schema.Number:
		_, ok := value.(float64)
		return ok
	case schema.Integer:
		f, ok := value.(float64)
		return ok && f == math.Trunc(f)
	case schema.Object:
		_, ok := value.(map[string]any)
		return ok
	case schema.Array:
		list, ok := value.([]any)
		if !ok {
			return false
		}
		if items == "" {
			items = schema.String
		}
		for _, item := range list {
			if !matchesType(item, items, "") {
				return false
			}
		}
		return true
	default:
		return false
	}
}

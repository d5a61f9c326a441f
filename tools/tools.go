// Package tools defines the fixed catalog of Raworc platform tools exposed
// over MCP. Each tool is one declarative entry: a name, a parameter contract,
// and a handler that makes exactly one backend call through the api client.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
	"github.com/raworc/raworc-mcp/schema"
)

// All returns the full tool catalog bound to client, in tools/list order.
// MCP clients generate calls from these schemas, so parameter names and types
// are part of the external contract.
func All(client *api.Client) []*mcp.Tool {
	var catalog []*mcp.Tool
	catalog = append(catalog, systemTools(client)...)
	catalog = append(catalog, serviceAccountTools(client)...)
	catalog = append(catalog, rbacTools(client)...)
	catalog = append(catalog, spaceTools(client)...)
	catalog = append(catalog, sessionTools(client)...)
	catalog = append(catalog, messageTools(client)...)
	catalog = append(catalog, agentTools(client)...)
	catalog = append(catalog, secretTools(client)...)
	catalog = append(catalog, buildTools(client)...)
	return catalog
}

// pretty renders a backend payload as indented JSON for the result's text
// content block.
func pretty(v any) (string, error) {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(text), nil
}

// reencode converts a validated loosely-typed value (e.g. an array of
// objects) into a typed request structure.
func reencode(v, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding arguments: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding arguments: %w", err)
	}
	return nil
}

// optPtr returns a pointer to an optional string argument, or nil when it
// was not supplied.
func optPtr(args mcp.Arguments, name string) *string {
	if v, ok := args.OptStr(name); ok {
		return &v
	}
	return nil
}

func reqStr(name, description string) mcp.Param {
	return mcp.Param{Name: name, Type: schema.String, Description: description, Required: true}
}

func optStr(name, description string) mcp.Param {
	return mcp.Param{Name: name, Type: schema.String, Description: description}
}

func optObj(name, description string) mcp.Param {
	return mcp.Param{Name: name, Type: schema.Object, Description: description}
}

// spaceOpt is the optional space parameter shared by the space-scoped tools;
// the api client substitutes the configured default when it is absent.
func spaceOpt() mcp.Param {
	return optStr("space", "Space name (optional, uses default if not provided)")
}

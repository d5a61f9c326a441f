package mcp

import "encoding/json"

// JSON-RPC error codes. The -32700..-32603 range follows the JSON-RPC 2.0
// specification; errBackend starts the application-defined range reserved
// for backend-originated failures, whose responses carry the backend HTTP
// status in the error's data field.
const (
	errParse          = -32700
	errInvalidRequest = -32600
	errMethodNotFound = -32601
	errInvalidParams  = -32602
	errInternal       = -32603
	errBackend        = -32000
)

func resultResponse(id json.RawMessage, result any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

func errorResponse(id json.RawMessage, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// toolFailureResponse wraps a handler error as a protocol-level success with
// an error-flagged content block. Backend failures are domain-level by MCP
// convention: the invocation was well-formed, only the remote operation
// failed, and callers branch on isError rather than on a JSON-RPC error.
func toolFailureResponse(id json.RawMessage, err error) *Response {
	return resultResponse(id, CallToolResult{
		Content: []ContentBlock{{Type: "text", Text: err.Error()}},
		IsError: true,
	})
}

func requestID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

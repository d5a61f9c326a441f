package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/raworc/raworc-mcp/internal/logging"
)

// maxLineBytes bounds a single request line. Tool arguments are small JSON
// objects; anything beyond this is a misbehaving client.
const maxLineBytes = 4 * 1024 * 1024

type Option func(*Server)

type Server struct {
	registry        *Registry
	info            Implementation
	protocolVersion string
	instructions    string
	log             *slog.Logger
}

func NewServer(registry *Registry, info Implementation, opts ...Option) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("new server: registry is required")
	}
	if info.Name == "" {
		return nil, fmt.Errorf("new server: server name is required")
	}
	if info.Version == "" {
		return nil, fmt.Errorf("new server: server version is required")
	}

	server := &Server{
		registry:        registry,
		info:            info,
		protocolVersion: ProtocolVersion,
		log:             logging.Logger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(server)
		}
	}

	if server.protocolVersion == "" {
		return nil, fmt.Errorf("new server: protocol version is required")
	}

	return server, nil
}

func WithInstructions(instructions string) Option {
	return func(server *Server) {
		server.instructions = instructions
	}
}

func WithProtocolVersion(version string) Option {
	return func(server *Server) {
		server.protocolVersion = version
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(server *Server) {
		if log != nil {
			server.log = log
		}
	}
}

// inputLine is one request line from the reader goroutine. A line that blew
// past maxLineBytes carries no text, only the tooLong flag.
type inputLine struct {
	text    string
	tooLong bool
}

// Serve runs the message loop: one JSON-RPC request per input line, at most
// one response line each, in request order. It returns nil when the input
// stream closes. A malformed or oversized line yields a parse error response
// and the loop continues; only an input read failure, a write failure, or
// context cancellation stops the server.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s == nil {
		return fmt.Errorf("serve: server is nil")
	}
	if in == nil {
		return fmt.Errorf("serve: input reader is nil")
	}
	if out == nil {
		return fmt.Errorf("serve: output writer is nil")
	}

	// Lines are read on a separate goroutine so the loop stays responsive to
	// cancellation while blocked on input. Closing done releases a reader
	// stuck on the send when Serve returns early.
	lines := make(chan inputLine)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		reader := bufio.NewReaderSize(in, 64*1024)
		for {
			text, tooLong, err := readLine(reader)
			if tooLong || text != "" || err == nil {
				select {
				case lines <- inputLine{text: text, tooLong: tooLong}:
				case <-done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()

	encoder := json.NewEncoder(out)
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("serve: %w", ctx.Err())
		case ln, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("serve: reading input: %w", err)
				default:
					return nil
				}
			}
			if ln.tooLong {
				s.log.Debug("discarding oversized request line")
				resp := errorResponse(json.RawMessage("null"), errParse, "parse error",
					fmt.Sprintf("request line exceeds %d bytes", maxLineBytes))
				if err := encoder.Encode(resp); err != nil {
					return fmt.Errorf("serve: writing response: %w", err)
				}
				continue
			}
			if strings.TrimSpace(ln.text) == "" {
				continue
			}

			s.log.Debug("received message", "line", ln.text)
			resp := s.handleLine(ctx, ln.text)
			if resp == nil {
				continue
			}
			if ctx.Err() != nil {
				// The request was abandoned mid-flight; never write a
				// response for it.
				return fmt.Errorf("serve: %w", ctx.Err())
			}
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("serve: writing response: %w", err)
			}
		}
	}
}

// readLine reads the next newline-terminated line, capped at maxLineBytes.
// An oversized line is discarded through its trailing newline and reported
// via tooLong instead of stopping the stream.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	for {
		chunk, err := r.ReadSlice('\n')
		if len(buf)+len(chunk) > maxLineBytes {
			for err == bufio.ErrBufferFull {
				_, err = r.ReadSlice('\n')
			}
			return "", true, err
		}
		buf = append(buf, chunk...)
		if err == bufio.ErrBufferFull {
			continue
		}
		return strings.TrimSuffix(string(buf), "\n"), false, err
	}
}

// handleLine parses and dispatches a single request line. It returns nil for
// notifications, which never produce output.
func (s *Server) handleLine(ctx context.Context, line string) *Response {
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return errorResponse(json.RawMessage("null"), errParse, "parse error", err.Error())
	}

	if req.JSONRPC != "2.0" || req.Method == "" {
		return errorResponse(requestID(req.ID), errInvalidRequest, "invalid request", nil)
	}

	if len(req.ID) == 0 {
		s.handleNotification(req)
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return resultResponse(req.ID, struct{}{})
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(ctx, req)
	default:
		return errorResponse(req.ID, errMethodNotFound, "method not found", req.Method)
	}
}

func (s *Server) handleNotification(req Request) {
	switch req.Method {
	case "notifications/initialized":
		s.log.Debug("client initialized")
	default:
		s.log.Debug("ignoring notification", "method", req.Method)
	}
}

func (s *Server) handleInitialize(req Request) *Response {
	if len(req.Params) > 0 {
		var params struct {
			ProtocolVersion string          `json:"protocolVersion"`
			ClientInfo      Implementation  `json:"clientInfo"`
			Capabilities    json.RawMessage `json:"capabilities"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, errInvalidParams, "invalid params", err.Error())
		}
		s.log.Debug("initialize",
			"client", params.ClientInfo.Name,
			"clientVersion", params.ClientInfo.Version,
			"protocolVersion", params.ProtocolVersion)
	}

	result := InitializeResult{
		ProtocolVersion: s.protocolVersion,
		ServerInfo:      s.info,
		Capabilities: ServerCapabilities{
			Tools: &ToolCapabilities{},
		},
	}
	if s.instructions != "" {
		result.Instructions = s.instructions
	}

	return resultResponse(req.ID, result)
}

func (s *Server) handleListTools(req Request) *Response {
	if len(req.Params) > 0 {
		var params struct {
			Cursor json.RawMessage `json:"cursor"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, errInvalidParams, "invalid params", err.Error())
		}
		// Pagination is not implemented; cursor is parsed but ignored.
	}

	return resultResponse(req.ID, ListToolsResult{
		Tools: s.registry.Definitions(),
	})
}

// handleCallTool is the dispatch path for one tool invocation. Three outcomes
// shape the response: a handler success becomes a normal result, a handler
// error becomes an error-flagged result (still a JSON-RPC success), and any
// failure before the handler runs becomes a JSON-RPC error envelope.
func (s *Server) handleCallTool(ctx context.Context, req Request) (resp *Response) {
	if len(req.Params) == 0 {
		return errorResponse(req.ID, errInvalidParams, "missing params", nil)
	}

	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, errInvalidParams, "invalid params", err.Error())
	}
	if params.Name == "" {
		return errorResponse(req.ID, errInvalidParams, "invalid params", "tool name is required")
	}

	tool, ok := s.registry.Get(params.Name)
	if !ok {
		return errorResponse(req.ID, errMethodNotFound, "tool not found", params.Name)
	}

	args, verr := validateArguments(tool.Params, normalizeArguments(params.Arguments))
	if verr != nil {
		return errorResponse(req.ID, errInvalidParams, verr.Error(), verr.Param)
	}

	// Recover from panics in tool execution to prevent server crash
	defer func() {
		if r := recover(); r != nil {
			resp = errorResponse(req.ID, errInternal, "tool panic", fmt.Sprintf("%v", r))
		}
	}()

	s.log.Debug("calling tool", "tool", tool.Name)
	text, err := tool.Handler(ctx, args)
	if err != nil {
		s.log.Debug("tool failed", "tool", tool.Name, "error", err)
		return toolFailureResponse(req.ID, err)
	}

	return resultResponse(req.ID, CallToolResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	})
}

func normalizeArguments(raw json.RawMessage) json.RawMessage {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return json.RawMessage("{}")
	}
	return json.RawMessage(trimmed)
}

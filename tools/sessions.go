package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
	"github.com/raworc/raworc-mcp/schema"
)

func sessionTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "list_sessions",
			Description: "List all sessions in a space",
			Params:      []mcp.Param{spaceOpt()},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				sessions, err := client.ListSessions(ctx, args.Str("space"))
				if err != nil {
					return "", err
				}
				return pretty(sessions)
			},
		},
		{
			Name:        "create_session",
			Description: "Create a new session",
			Params: []mcp.Param{
				spaceOpt(),
				optObj("metadata", "Additional metadata for the session"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				session, err := client.CreateSession(ctx, args.Str("space"), args.Object("metadata"))
				if err != nil {
					return "", err
				}
				return pretty(session)
			},
		},
		{
			Name:        "get_session",
			Description: "Get session details",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				session, err := client.GetSession(ctx, args.Str("space"), args.Str("session_id"))
				if err != nil {
					return "", err
				}
				return pretty(session)
			},
		},
		{
			Name:        "update_session",
			Description: "Update session details",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				optStr("space", "Space name (optional)"),
				optObj("metadata", "Session metadata"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				session, err := client.UpdateSession(ctx, args.Str("space"), args.Str("session_id"),
					&api.UpdateSessionRequest{Metadata: args.Object("metadata")})
				if err != nil {
					return "", err
				}
				return pretty(session)
			},
		},
		{
			Name:        "update_session_state",
			Description: "Update session state",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				optStr("space", "Space name (optional)"),
				{
					Name:        "state",
					Type:        schema.String,
					Description: "New session state",
					Required:    true,
					Enum:        []string{"INIT", "RUNNING", "PAUSED", "SUSPENDED", "TERMINATED", "IDLE", "CLOSED"},
				},
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				state := api.SessionState(args.Str("state"))
				err := client.UpdateSessionState(ctx, args.Str("space"), args.Str("session_id"), state)
				if err != nil {
					return "", err
				}
				return "Session state updated successfully", nil
			},
		},
		{
			Name:        "close_session",
			Description: "Close a session",
			Params:      []mcp.Param{reqStr("session_id", "Session ID")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.CloseSession(ctx, args.Str("session_id")); err != nil {
					return "", err
				}
				return "Session closed successfully", nil
			},
		},
		{
			Name:        "restore_session",
			Description: "Restore a closed session",
			Params:      []mcp.Param{reqStr("session_id", "Session ID")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.RestoreSession(ctx, args.Str("session_id")); err != nil {
					return "", err
				}
				return "Session restored successfully", nil
			},
		},
		{
			Name:        "remix_session",
			Description: "Fork a session",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID to fork"),
				optStr("space", "Target space for the new session"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				session, err := client.RemixSession(ctx, args.Str("session_id"),
					&api.CreateSessionRequest{Space: optPtr(args, "space")})
				if err != nil {
					return "", err
				}
				return pretty(session)
			},
		},
		{
			Name:        "pause_session",
			Description: "Pause a session",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.PauseSession(ctx, args.Str("space"), args.Str("session_id")); err != nil {
					return "", err
				}
				return "Session paused successfully", nil
			},
		},
		{
			Name:        "resume_session",
			Description: "Resume a session",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.ResumeSession(ctx, args.Str("space"), args.Str("session_id")); err != nil {
					return "", err
				}
				return "Session resumed successfully", nil
			},
		},
		{
			Name:        "terminate_session",
			Description: "Terminate a session",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.TerminateSession(ctx, args.Str("space"), args.Str("session_id")); err != nil {
					return "", err
				}
				return "Session terminated successfully", nil
			},
		},
	}
}

package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
	"github.com/raworc/raworc-mcp/schema"
)

func messageTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "send_message",
			Description: "Send a message to a session",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				reqStr("content", "Message content"),
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				message, err := client.SendMessage(ctx, args.Str("space"), args.Str("session_id"), args.Str("content"))
				if err != nil {
					return "", err
				}
				return pretty(message)
			},
		},
		{
			Name:        "get_messages",
			Description: "Get messages from a session",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				{
					Name:        "limit",
					Type:        schema.Number,
					Description: "Maximum number of messages to return",
				},
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				var limit uint64
				if n, ok := args.Num("limit"); ok && n > 0 {
					limit = uint64(n)
				}
				messages, err := client.GetMessages(ctx, args.Str("space"), args.Str("session_id"), limit)
				if err != nil {
					return "", err
				}
				return pretty(messages)
			},
		},
		{
			Name:        "get_message_count",
			Description: "Get the number of messages in a session",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				count, err := client.GetMessageCount(ctx, args.Str("space"), args.Str("session_id"))
				if err != nil {
					return "", err
				}
				return pretty(count)
			},
		},
		{
			Name:        "clear_messages",
			Description: "Clear all messages in a session",
			Params: []mcp.Param{
				reqStr("session_id", "Session ID"),
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.ClearMessages(ctx, args.Str("space"), args.Str("session_id")); err != nil {
					return "", err
				}
				return "Messages cleared successfully", nil
			},
		},
	}
}

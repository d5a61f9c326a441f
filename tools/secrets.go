package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
)

func secretTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "list_secrets",
			Description: "List all secrets in a space",
			Params:      []mcp.Param{spaceOpt()},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				secrets, err := client.ListSecrets(ctx, args.Str("space"))
				if err != nil {
					return "", err
				}
				return pretty(secrets)
			},
		},
		{
			Name:        "create_secret",
			Description: "Create a new secret in a space",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("key_name", "Secret key name"),
				reqStr("value", "Secret value"),
				optStr("description", "Secret description"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				secret, err := client.CreateSecret(ctx, args.Str("space"), args.Str("key_name"),
					args.Str("value"), optPtr(args, "description"))
				if err != nil {
					return "", err
				}
				return pretty(secret)
			},
		},
		{
			Name:        "get_secret",
			Description: "Get a secret's value",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("key", "Secret key"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				secret, err := client.GetSecret(ctx, args.Str("space"), args.Str("key"))
				if err != nil {
					return "", err
				}
				return pretty(secret)
			},
		},
		{
			Name:        "update_secret",
			Description: "Update a secret",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("key", "Secret key"),
				optStr("value", "New secret value"),
				optStr("description", "New secret description"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				secret, err := client.UpdateSecret(ctx, args.Str("space"), args.Str("key"),
					args.Str("value"), optPtr(args, "description"))
				if err != nil {
					return "", err
				}
				return pretty(secret)
			},
		},
		{
			Name:        "delete_secret",
			Description: "Delete a secret",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("key", "Secret key"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.DeleteSecret(ctx, args.Str("space"), args.Str("key")); err != nil {
					return "", err
				}
				return "Secret deleted successfully", nil
			},
		},
	}
}

package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
)

func spaceTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "list_spaces",
			Description: "List all spaces",
			Handler: func(ctx context.Context, _ mcp.Arguments) (string, error) {
				spaces, err := client.ListSpaces(ctx)
				if err != nil {
					return "", err
				}
				return pretty(spaces)
			},
		},
		{
			Name:        "create_space",
			Description: "Create a new space",
			Params: []mcp.Param{
				reqStr("name", "Space name"),
				optStr("description", "Space description"),
				optObj("settings", "Space settings"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				space, err := client.CreateSpace(ctx, &api.CreateSpaceRequest{
					Name:        args.Str("name"),
					Description: optPtr(args, "description"),
					Settings:    args.Object("settings"),
				})
				if err != nil {
					return "", err
				}
				return pretty(space)
			},
		},
		{
			Name:        "get_space",
			Description: "Get a specific space",
			Params:      []mcp.Param{reqStr("name", "Space name")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				space, err := client.GetSpace(ctx, args.Str("name"))
				if err != nil {
					return "", err
				}
				return pretty(space)
			},
		},
		{
			Name:        "update_space",
			Description: "Update a space",
			Params: []mcp.Param{
				reqStr("name", "Space name"),
				optStr("description", "Space description"),
				optObj("settings", "Space settings"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				space, err := client.UpdateSpace(ctx, args.Str("name"), &api.UpdateSpaceRequest{
					Description: optPtr(args, "description"),
					Settings:    args.Object("settings"),
				})
				if err != nil {
					return "", err
				}
				return pretty(space)
			},
		},
		{
			Name:        "delete_space",
			Description: "Delete a space",
			Params:      []mcp.Param{reqStr("name", "Space name")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.DeleteSpace(ctx, args.Str("name")); err != nil {
					return "", err
				}
				return "Space deleted successfully", nil
			},
		},
	}
}

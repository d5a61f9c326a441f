package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
)

func buildTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "create_build",
			Description: "Start a build for a space",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				optStr("dockerfile", "Dockerfile content"),
				optStr("context", "Build context path"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				build, err := client.CreateBuild(ctx, args.Str("space"), &api.CreateBuildRequest{
					Dockerfile: args.Str("dockerfile"),
					Context:    optPtr(args, "context"),
				})
				if err != nil {
					return "", err
				}
				return pretty(build)
			},
		},
		{
			Name:        "get_latest_build",
			Description: "Get the latest build for a space",
			Params:      []mcp.Param{reqStr("space", "Space name")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				build, err := client.GetLatestBuild(ctx, args.Str("space"))
				if err != nil {
					return "", err
				}
				return pretty(build)
			},
		},
		{
			Name:        "get_build",
			Description: "Get build details",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("build_id", "Build ID"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				build, err := client.GetBuild(ctx, args.Str("space"), args.Str("build_id"))
				if err != nil {
					return "", err
				}
				return pretty(build)
			},
		},
	}
}

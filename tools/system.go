package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
)

func systemTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "health_check",
			Description: "Check Raworc API health",
			Handler: func(ctx context.Context, _ mcp.Arguments) (string, error) {
				return client.HealthCheck(ctx)
			},
		},
		{
			Name:        "get_version",
			Description: "Get API version",
			Handler: func(ctx context.Context, _ mcp.Arguments) (string, error) {
				version, err := client.Version(ctx)
				if err != nil {
					return "", err
				}
				return pretty(version)
			},
		},
	}
}

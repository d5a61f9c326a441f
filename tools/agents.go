package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
	"github.com/raworc/raworc-mcp/schema"
)

func agentTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "list_agents",
			Description: "List all agents in a space",
			Params:      []mcp.Param{spaceOpt()},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				agents, err := client.ListAgents(ctx, args.Str("space"))
				if err != nil {
					return "", err
				}
				return pretty(agents)
			},
		},
		{
			Name:        "create_agent",
			Description: "Create a new agent in a space",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("name", "Agent name"),
				optStr("description", "Agent description"),
				optStr("purpose", "Agent purpose"),
				optStr("source_repo", "Source repository URL"),
				optStr("source_branch", "Source repository branch"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				agent, err := client.CreateAgent(ctx, args.Str("space"), &api.CreateAgentRequest{
					Name:         args.Str("name"),
					Description:  optPtr(args, "description"),
					Purpose:      optPtr(args, "purpose"),
					SourceRepo:   optPtr(args, "source_repo"),
					SourceBranch: optPtr(args, "source_branch"),
				})
				if err != nil {
					return "", err
				}
				return pretty(agent)
			},
		},
		{
			Name:        "get_agent",
			Description: "Get agent details",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("agent_name", "Agent name"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				agent, err := client.GetAgent(ctx, args.Str("space"), args.Str("agent_name"))
				if err != nil {
					return "", err
				}
				return pretty(agent)
			},
		},
		{
			Name:        "update_agent",
			Description: "Update an agent",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("agent_name", "Agent name"),
				optStr("description", "Agent description"),
				optStr("purpose", "Agent purpose"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				agent, err := client.UpdateAgent(ctx, args.Str("space"), args.Str("agent_name"), &api.UpdateAgentRequest{
					Description: optPtr(args, "description"),
					Purpose:     optPtr(args, "purpose"),
				})
				if err != nil {
					return "", err
				}
				return pretty(agent)
			},
		},
		{
			Name:        "delete_agent",
			Description: "Delete an agent",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("agent_name", "Agent name"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.DeleteAgent(ctx, args.Str("space"), args.Str("agent_name")); err != nil {
					return "", err
				}
				return "Agent deleted successfully", nil
			},
		},
		{
			Name:        "update_agent_status",
			Description: "Update agent status",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("agent_name", "Agent name"),
				{
					Name:        "status",
					Type:        schema.String,
					Description: "New agent status",
					Required:    true,
					Enum:        []string{"active", "inactive", "running", "stopped", "error"},
				},
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				status := api.AgentStatus(args.Str("status"))
				if err := client.UpdateAgentStatus(ctx, args.Str("space"), args.Str("agent_name"), status); err != nil {
					return "", err
				}
				return "Agent status updated successfully", nil
			},
		},
		{
			Name:        "deploy_agent",
			Description: "Deploy an agent",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("agent_name", "Agent name"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.DeployAgent(ctx, args.Str("space"), args.Str("agent_name")); err != nil {
					return "", err
				}
				return "Agent deployed successfully", nil
			},
		},
		{
			Name:        "stop_agent",
			Description: "Stop a running agent",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("agent_name", "Agent name"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.StopAgent(ctx, args.Str("space"), args.Str("agent_name")); err != nil {
					return "", err
				}
				return "Agent stopped successfully", nil
			},
		},
		{
			Name:        "list_running_agents",
			Description: "List running agents in a space",
			Params:      []mcp.Param{reqStr("space", "Space name")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				agents, err := client.ListRunningAgents(ctx, args.Str("space"))
				if err != nil {
					return "", err
				}
				return pretty(agents)
			},
		},
		{
			Name:        "get_agent_logs",
			Description: "Get logs for an agent",
			Params: []mcp.Param{
				reqStr("space", "Space name"),
				reqStr("agent_name", "Agent name"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				return client.AgentLogs(ctx, args.Str("space"), args.Str("agent_name"))
			},
		},
	}
}

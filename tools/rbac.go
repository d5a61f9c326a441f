package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
	"github.com/raworc/raworc-mcp/schema"
)

func rbacTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "list_roles",
			Description: "List all roles",
			Handler: func(ctx context.Context, _ mcp.Arguments) (string, error) {
				roles, err := client.ListRoles(ctx)
				if err != nil {
					return "", err
				}
				return pretty(roles)
			},
		},
		{
			Name:        "create_role",
			Description: "Create a new role",
			Params: []mcp.Param{
				reqStr("id", "Role ID"),
				optStr("description", "Role description"),
				{Name: "rules", Type: schema.Array, Items: schema.Object, Description: "Role rules", Required: true},
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				var rules []api.RoleRule
				if err := reencode(args["rules"], &rules); err != nil {
					return "", err
				}
				role, err := client.CreateRole(ctx, &api.CreateRoleRequest{
					ID:          args.Str("id"),
					Description: optPtr(args, "description"),
					Rules:       rules,
				})
				if err != nil {
					return "", err
				}
				return pretty(role)
			},
		},
		{
			Name:        "get_role",
			Description: "Get a specific role",
			Params:      []mcp.Param{reqStr("id", "Role ID")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				role, err := client.GetRole(ctx, args.Str("id"))
				if err != nil {
					return "", err
				}
				return pretty(role)
			},
		},
		{
			Name:        "delete_role",
			Description: "Delete a role",
			Params:      []mcp.Param{reqStr("id", "Role ID")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.DeleteRole(ctx, args.Str("id")); err != nil {
					return "", err
				}
				return "Role deleted successfully", nil
			},
		},
		{
			Name:        "list_role_bindings",
			Description: "List all role bindings",
			Handler: func(ctx context.Context, _ mcp.Arguments) (string, error) {
				bindings, err := client.ListRoleBindings(ctx)
				if err != nil {
					return "", err
				}
				return pretty(bindings)
			},
		},
		{
			Name:        "create_role_binding",
			Description: "Create a new role binding",
			Params: []mcp.Param{
				reqStr("subject", "Subject (user/service account)"),
				reqStr("role_ref", "Role reference"),
				optStr("space", "Space name (optional)"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				binding, err := client.CreateRoleBinding(ctx, &api.CreateRoleBindingRequest{
					Subject: args.Str("subject"),
					RoleRef: args.Str("role_ref"),
					Space:   optPtr(args, "space"),
				})
				if err != nil {
					return "", err
				}
				return pretty(binding)
			},
		},
		{
			Name:        "get_role_binding",
			Description: "Get a specific role binding",
			Params:      []mcp.Param{reqStr("id", "Role binding ID")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				binding, err := client.GetRoleBinding(ctx, args.Str("id"))
				if err != nil {
					return "", err
				}
				return pretty(binding)
			},
		},
		{
			Name:        "delete_role_binding",
			Description: "Delete a role binding",
			Params:      []mcp.Param{reqStr("id", "Role binding ID")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.DeleteRoleBinding(ctx, args.Str("id")); err != nil {
					return "", err
				}
				return "Role binding deleted successfully", nil
			},
		},
	}
}

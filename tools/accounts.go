package tools

import (
	"context"

	"github.com/raworc/raworc-mcp/api"
	"github.com/raworc/raworc-mcp/mcp"
	"github.com/raworc/raworc-mcp/schema"
)

func serviceAccountTools(client *api.Client) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "list_service_accounts",
			Description: "List all service accounts",
			Handler: func(ctx context.Context, _ mcp.Arguments) (string, error) {
				accounts, err := client.ListServiceAccounts(ctx)
				if err != nil {
					return "", err
				}
				return pretty(accounts)
			},
		},
		{
			Name:        "create_service_account",
			Description: "Create a new service account",
			Params: []mcp.Param{
				reqStr("user", "Username for the service account"),
				reqStr("pass", "Password for the service account"),
				optStr("space", "Space name (optional)"),
				optStr("description", "Description of the service account"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				account, err := client.CreateServiceAccount(ctx, &api.CreateServiceAccountRequest{
					User:        args.Str("user"),
					Pass:        args.Str("pass"),
					Space:       optPtr(args, "space"),
					Description: optPtr(args, "description"),
				})
				if err != nil {
					return "", err
				}
				return pretty(account)
			},
		},
		{
			Name:        "get_service_account",
			Description: "Get a specific service account",
			Params:      []mcp.Param{reqStr("id", "Service account ID")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				account, err := client.GetServiceAccount(ctx, args.Str("id"))
				if err != nil {
					return "", err
				}
				return pretty(account)
			},
		},
		{
			Name:        "update_service_account",
			Description: "Update a service account",
			Params: []mcp.Param{
				reqStr("id", "Service account ID"),
				optStr("space", "Space name"),
				optStr("description", "Description"),
				{Name: "active", Type: schema.Boolean, Description: "Whether the account is active"},
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				req := api.UpdateServiceAccountRequest{
					Space:       optPtr(args, "space"),
					Description: optPtr(args, "description"),
				}
				if active, ok := args.Bool("active"); ok {
					req.Active = &active
				}
				account, err := client.UpdateServiceAccount(ctx, args.Str("id"), &req)
				if err != nil {
					return "", err
				}
				return pretty(account)
			},
		},
		{
			Name:        "delete_service_account",
			Description: "Delete a service account",
			Params:      []mcp.Param{reqStr("id", "Service account ID")},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				if err := client.DeleteServiceAccount(ctx, args.Str("id")); err != nil {
					return "", err
				}
				return "Service account deleted successfully", nil
			},
		},
		{
			Name:        "update_service_account_password",
			Description: "Update service account password",
			Params: []mcp.Param{
				reqStr("id", "Service account ID"),
				reqStr("current_password", "Current password"),
				reqStr("new_password", "New password"),
			},
			Handler: func(ctx context.Context, args mcp.Arguments) (string, error) {
				err := client.UpdateServiceAccountPassword(ctx,
					args.Str("id"), args.Str("current_password"), args.Str("new_password"))
				if err != nil {
					return "", err
				}
				return "Password updated successfully", nil
			},
		},
	}
}

package snipeit

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

func userDataSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"first_name":            {Type: "string", Description: "First name (required for create)"},
			"last_name":             {Type: "string", Description: "Last name"},
			"username":              {Type: "string", Description: "Username for login (required for create)"},
			"password":              {Type: "string", Description: "Password (required for create)"},
			"password_confirmation": {Type: "string", Description: "Password confirmation (required for create)"},
			"email":                 {Type: "string", Description: "Email address"},
			"permissions":           {Type: "object", Description: "User permissions object"},
			"activated":             {Type: "boolean", Description: "Whether the account is activated"},
			"phone":                 {Type: "string", Description: "Phone number"},
			"jobtitle":              {Type: "string", Description: "Job title"},
			"manager_id":            {Type: "number", Description: "Manager user ID"},
			"employee_num":          {Type: "string", Description: "Employee number"},
			"department_id":         {Type: "number", Description: "Department ID"},
			"company_id":            {Type: "number", Description: "Company ID"},
			"location_id":           {Type: "number", Description: "Location ID"},
			"notes":                 {Type: "string", Description: "Notes"},
			"groups": {
				Type:        "array",
				Description: "List of permission group IDs",
				Items:       &jsonschema.Schema{Type: "number"},
			},
			"ldap_import": {Type: "boolean", Description: "Whether the user was imported from LDAP"},
		},
	}
}

// ManageUsers creates the manage_users tool. Beyond CRUD it supports restore
// for soft-deleted accounts and me for the authenticated user, and list can
// match username or email exactly.
func ManageUsers(t translations.TranslationHelperFunc) toolsets.ServerTool {
	dataSchema := userDataSchema()
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The action to perform on users",
				Enum:        []any{"create", "get", "list", "update", "delete", "restore", "me"},
			},
			"user_id": {Type: "number", Description: "User ID (required for get, update, delete, restore)"},
			"user_data": {
				Type:        "object",
				Description: "User data (required for create, optional for update)",
				Properties:  dataSchema.Properties,
			},
			"username": {Type: "string", Description: "Username for exact match (for list action)"},
			"email":    {Type: "string", Description: "Email for exact match (for list action)"},
		},
		Required: []string{"action"},
	}
	WithListOptions(schema)

	return NewTool(
		ToolsetMetadataUsers,
		mcp.Tool{
			Name:        "manage_users",
			Description: t("TOOL_MANAGE_USERS_DESCRIPTION", "Manage Snipe-IT users with create, get, list, update, delete and restore operations, plus me for the authenticated user."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_MANAGE_USERS", "Manage Users"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}

			switch action {
			case "create":
				data, err := ObjectParam(args, "user_data")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if data == nil {
					return errorResult("user_data is required for create action"), nil, nil
				}
				if missing := missingFields(data, []string{"username", "password", "first_name"}); len(missing) > 0 {
					return errorResult("username, password, and first_name are required to create a user"), nil, nil
				}
				user, err := client.Create(ctx, "users", pickFields(data, dataSchema))
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				firstName, _ := data["first_name"].(string)
				lastName, _ := data["last_name"].(string)
				return successResult("create", map[string]any{
					"user": map[string]any{
						"id":       user["id"],
						"username": data["username"],
						"name":     strings.TrimSpace(firstName + " " + lastName),
					},
				}), nil, nil

			case "get":
				userID, err := RequiredInt(args, "user_id")
				if err != nil {
					return errorResult("user_id is required for get action"), nil, nil
				}
				user, err := client.Get(ctx, "users", userID)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("get", map[string]any{"user": user}), nil, nil

			case "list":
				opts, err := OptionalListOptions(args)
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				for _, filter := range []string{"username", "email"} {
					v, err := OptionalParam[string](args, filter)
					if err != nil {
						return errorResult("%s", err), nil, nil
					}
					if v != "" {
						if opts.Filters == nil {
							opts.Filters = map[string]string{}
						}
						opts.Filters[filter] = v
					}
				}
				resp, err := client.List(ctx, "users", opts)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				users := make([]map[string]any, 0, len(resp.Rows))
				for _, row := range resp.Rows {
					users = append(users, pickRecord(row, "id", "username", "name", "email", "department", "activated"))
				}
				return successResult("list", map[string]any{
					"count": len(users),
					"total": resp.Total,
					"users": users,
				}), nil, nil

			case "update":
				userID, err := RequiredInt(args, "user_id")
				if err != nil {
					return errorResult("user_id is required for update action"), nil, nil
				}
				data, err := ObjectParam(args, "user_data")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if data == nil {
					return errorResult("user_data is required for update action"), nil, nil
				}
				user, err := client.Update(ctx, "users", userID, pickFields(data, dataSchema))
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("update", map[string]any{
					"user_id": userID,
					"user":    pickRecord(user, "id", "username", "name", "email"),
				}), nil, nil

			case "delete":
				userID, err := RequiredInt(args, "user_id")
				if err != nil {
					return errorResult("user_id is required for delete action"), nil, nil
				}
				if _, err := client.Delete(ctx, "users", userID); err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("delete", map[string]any{
					"user_id": userID,
					"message": "User deleted successfully",
				}), nil, nil

			case "restore":
				userID, err := RequiredInt(args, "user_id")
				if err != nil {
					return errorResult("user_id is required for restore action"), nil, nil
				}
				if _, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("users/%d/restore", userID), nil, nil); err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("restore", map[string]any{
					"user_id": userID,
					"message": "User restored successfully",
				}), nil, nil

			case "me":
				user, err := client.Do(ctx, http.MethodGet, "users/me", nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("me", map[string]any{"user": user}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

// UserAssets creates the user_assets tool, returning the items currently
// checked out to a user, optionally restricted to one kind. The eulas kind
// stands alone since pending acceptances are not checkouts.
func UserAssets(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"user_id": {Type: "number", Description: "User ID"},
			"asset_type": {
				Type:        "string",
				Description: "Type of items to retrieve",
				Enum:        []any{"assets", "accessories", "licenses", "consumables", "eulas", "all"},
				Default:     mustJSON("all"),
			},
		},
		Required: []string{"user_id"},
	}

	return NewTool(
		ToolsetMetadataUsers,
		mcp.Tool{
			Name:        "user_assets",
			Description: t("TOOL_USER_ASSETS_DESCRIPTION", "Get the assets, accessories, licenses and consumables checked out to a user, or their pending EULA acceptances."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_USER_ASSETS", "User Assets"),
				ReadOnlyHint: true,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			userID, err := RequiredInt(args, "user_id")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			assetType, err := OptionalParam[string](args, "asset_type")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			if assetType == "" {
				assetType = "all"
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}

			kinds := []string{assetType}
			if assetType == "all" {
				kinds = []string{"assets", "accessories", "licenses", "consumables"}
			}
			fields := map[string]any{"user_id": userID}
			for _, kind := range kinds {
				result, err := client.Do(ctx, http.MethodGet, fmt.Sprintf("users/%d/%s", userID, kind), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				rows, _ := result["rows"].([]any)
				fields[kind] = rows
			}
			return successResult("", fields), nil, nil
		},
	)
}

// UserTwoFactor creates the user_two_factor tool for resetting a user's
// two-factor enrollment.
func UserTwoFactor(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The 2FA action to perform",
				Enum:        []any{"reset"},
			},
			"user_id": {Type: "number", Description: "User ID"},
		},
		Required: []string{"action", "user_id"},
	}

	return NewTool(
		ToolsetMetadataUsers,
		mcp.Tool{
			Name:        "user_two_factor",
			Description: t("TOOL_USER_TWO_FACTOR_DESCRIPTION", "Reset a user's two-factor authentication, forcing re-enrollment."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_USER_TWO_FACTOR", "User Two-Factor"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			if action != "reset" {
				return errorResult("unknown action: %s", action), nil, nil
			}
			userID, err := RequiredInt(args, "user_id")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("users/%d/two_factor_reset", userID), nil, nil)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			return successResult("reset", map[string]any{
				"user_id": userID,
				"message": "Two-factor authentication reset successfully. User will need to re-enroll.",
				"result":  result,
			}), nil, nil
		},
	)
}

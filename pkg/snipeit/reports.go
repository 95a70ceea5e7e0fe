package snipeit

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeitapi"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// itemTypeEndpoints maps the item types accepted by activity_reports to the
// item_type query value the activity report endpoint expects.
var itemTypeEndpoints = map[string]string{
	"asset":      "hardware",
	"hardware":   "hardware",
	"license":    "licenses",
	"accessory":  "accessories",
	"consumable": "consumables",
	"component":  "components",
	"user":       "users",
}

func summarizeActivity(rows []map[string]any) []map[string]any {
	entries := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, pickRecord(row, "id", "action_type", "target_type", "target", "item", "admin", "created_at", "note"))
	}
	return entries
}

// ActivityReports creates the activity_reports tool over the Snipe-IT activity
// log. The item_activity action narrows the log to one record's history.
func ActivityReports(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The report action to perform",
				Enum:        []any{"list", "item_activity"},
			},
			"target_type": {Type: "string", Description: "Filter by target type, e.g. App\\Models\\User (for list action)"},
			"target_id":   {Type: "number", Description: "Filter by target ID (for list action)"},
			"action_type": {Type: "string", Description: "Filter by action type, e.g. checkout, checkin, update (for list action)"},
			"item_type": {
				Type:        "string",
				Description: "Item type (required for item_activity action)",
				Enum:        []any{"asset", "hardware", "license", "accessory", "consumable", "component", "user"},
			},
			"item_id": {Type: "number", Description: "Item ID (required for item_activity action)"},
		},
		Required: []string{"action"},
	}
	WithListOptions(schema)

	return NewTool(
		ToolsetMetadataReports,
		mcp.Tool{
			Name:        "activity_reports",
			Description: t("TOOL_ACTIVITY_REPORTS_DESCRIPTION", "Query the Snipe-IT activity log, either across the installation or for one item's history."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_ACTIVITY_REPORTS", "Activity Reports"),
				ReadOnlyHint: true,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			opts, err := OptionalListOptions(args)
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}

			switch action {
			case "list":
				filters := map[string]string{}
				targetType, err := OptionalParam[string](args, "target_type")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if targetType != "" {
					filters["target_type"] = targetType
				}
				targetID, err := OptionalInt(args, "target_id")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if targetID != 0 {
					filters["target_id"] = strconv.FormatInt(targetID, 10)
				}
				actionType, err := OptionalParam[string](args, "action_type")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if actionType != "" {
					filters["action_type"] = actionType
				}
				if len(filters) > 0 {
					opts.Filters = filters
				}
				resp, err := client.List(ctx, "reports/activity", opts)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				entries := summarizeActivity(resp.Rows)
				return successResult("list", map[string]any{
					"count":      len(entries),
					"total":      resp.Total,
					"activities": entries,
				}), nil, nil

			case "item_activity":
				itemType, err := RequiredParam[string](args, "item_type")
				if err != nil {
					return errorResult("item_type and item_id are required for item_activity action"), nil, nil
				}
				itemID, err := RequiredInt(args, "item_id")
				if err != nil {
					return errorResult("item_type and item_id are required for item_activity action"), nil, nil
				}
				endpointType, ok := itemTypeEndpoints[itemType]
				if !ok {
					return errorResult("Invalid item_type: %s", itemType), nil, nil
				}
				opts.Filters = map[string]string{
					"item_type": endpointType,
					"item_id":   strconv.FormatInt(itemID, 10),
				}
				resp, err := client.List(ctx, "reports/activity", opts)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				entries := summarizeActivity(resp.Rows)
				return successResult("item_activity", map[string]any{
					"item_type":  itemType,
					"item_id":    itemID,
					"count":      len(entries),
					"total":      resp.Total,
					"activities": entries,
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

// StatusSummary creates the status_summary tool, returning asset counts per
// status label.
func StatusSummary(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}

	return NewTool(
		ToolsetMetadataReports,
		mcp.Tool{
			Name:        "status_summary",
			Description: t("TOOL_STATUS_SUMMARY_DESCRIPTION", "Get a summary of asset counts per status label."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_STATUS_SUMMARY", "Status Summary"),
				ReadOnlyHint: true,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, _ map[string]any) (*mcp.CallToolResult, any, error) {
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			summary, err := client.Do(ctx, http.MethodGet, "statuslabels/assets", nil, nil)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			return successResult("", map[string]any{"summary": summary}), nil, nil
		},
	)
}

// AuditTracking creates the audit_tracking tool over the hardware audit
// schedule. The summary action previews both queues with a short page each.
func AuditTracking(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The audit tracking action to perform",
				Enum:        []any{"due", "overdue", "summary"},
			},
		},
		Required: []string{"action"},
	}
	WithListOptions(schema)

	return NewTool(
		ToolsetMetadataReports,
		mcp.Tool{
			Name:        "audit_tracking",
			Description: t("TOOL_AUDIT_TRACKING_DESCRIPTION", "Track assets due or overdue for audit, or get a combined summary of both."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_AUDIT_TRACKING", "Audit Tracking"),
				ReadOnlyHint: true,
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
			case "due", "overdue":
				opts, err := OptionalListOptions(args)
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				resp, err := client.List(ctx, "hardware/audit/"+action, opts)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult(action, map[string]any{
					"count":  len(resp.Rows),
					"total":  resp.Total,
					"assets": resp.Rows,
				}), nil, nil

			case "summary":
				preview := snipeitapi.ListOptions{Limit: 10}
				due, err := client.List(ctx, "hardware/audit/due", preview)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				overdue, err := client.List(ctx, "hardware/audit/overdue", preview)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("summary", map[string]any{
					"due_count":      due.Total,
					"overdue_count":  overdue.Total,
					"due_assets":     due.Rows,
					"overdue_assets": overdue.Rows,
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

package snipeit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// assetListFilters are the query parameters the hardware list endpoint
// accepts beyond pagination.
var assetListFilters = []string{
	"status_id", "model_id", "company_id", "location_id",
	"category_id", "manufacturer_id", "assigned_to",
}

func assetDataSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"status_id":       {Type: "number", Description: "Status label ID (required for create)"},
			"model_id":        {Type: "number", Description: "Model ID (required for create)"},
			"asset_tag":       {Type: "string", Description: "Asset tag. Auto-generated when omitted and auto-increment is enabled"},
			"name":            {Type: "string", Description: "Asset name"},
			"serial":          {Type: "string", Description: "Serial number"},
			"purchase_date":   {Type: "string", Description: "Purchase date (YYYY-MM-DD)"},
			"purchase_cost":   {Type: "number", Description: "Purchase cost"},
			"order_number":    {Type: "string", Description: "Order number"},
			"notes":           {Type: "string", Description: "Notes"},
			"warranty_months": {Type: "number", Description: "Warranty length in months"},
			"location_id":     {Type: "number", Description: "Current location ID"},
			"rtd_location_id": {Type: "number", Description: "Default (ready-to-deploy) location ID"},
			"supplier_id":     {Type: "number", Description: "Supplier ID"},
			"company_id":      {Type: "number", Description: "Company ID"},
			"requestable":     {Type: "boolean", Description: "Whether users may request this asset"},
		},
	}
}

// pickRecord copies the named fields out of a record, keeping nulls so the
// caller can see which attributes the server reported as empty.
func pickRecord(record map[string]any, fields ...string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, name := range fields {
		if v, ok := record[name]; ok {
			out[name] = v
		}
	}
	return out
}

// ManageAssets creates the manage_assets tool. Unlike the descriptor-built
// manage tools, get also resolves asset tags and serial numbers through the
// dedicated bytag/byserial endpoints so barcode scans hit an exact match
// instead of a search.
func ManageAssets(t translations.TranslationHelperFunc) toolsets.ServerTool {
	dataSchema := assetDataSchema()
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The action to perform on assets",
				Enum:        []any{"create", "get", "list", "update", "delete"},
			},
			"asset_id":  {Type: "number", Description: "Asset ID (required for update, delete; one of asset_id, asset_tag, serial for get)"},
			"asset_tag": {Type: "string", Description: "Asset tag (alternative to asset_id for get)"},
			"serial":    {Type: "string", Description: "Serial number (alternative to asset_id for get)"},
			"asset_data": {
				Type:        "object",
				Description: "Asset data (required for create, optional for update)",
				Properties:  dataSchema.Properties,
			},
		},
		Required: []string{"action"},
	}
	WithListOptions(schema)
	for _, filter := range assetListFilters {
		schema.Properties[filter] = &jsonschema.Schema{
			Type:        "number",
			Description: "Filter by " + filter + " (for list action)",
		}
	}
	schema.Properties["sort"].Description = "Field to sort by (for list action). Valid fields: id, name, asset_tag, serial, model, model_number, last_checkout, category, manufacturer, notes, expected_checkin, order_number, companyName, location, image, status_label, assigned_to, created_at, purchase_date, purchase_cost"

	return NewTool(
		ToolsetMetadataAssets,
		mcp.Tool{
			Name:        "manage_assets",
			Description: t("TOOL_MANAGE_ASSETS_DESCRIPTION", "Manage Snipe-IT assets with create, get, list, update and delete operations. Get accepts an asset ID, asset tag or serial number."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_MANAGE_ASSETS", "Manage Assets"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			switch action {
			case "create":
				return assetsCreate(ctx, deps, args, dataSchema), nil, nil
			case "get":
				return assetsGet(ctx, deps, args), nil, nil
			case "list":
				return assetsList(ctx, deps, args), nil, nil
			case "update":
				return assetsUpdate(ctx, deps, args, dataSchema), nil, nil
			case "delete":
				return assetsDelete(ctx, deps, args), nil, nil
			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

func assetsCreate(ctx context.Context, deps ToolDependencies, args map[string]any, dataSchema *jsonschema.Schema) *mcp.CallToolResult {
	data, err := ObjectParam(args, "asset_data")
	if err != nil {
		return errorResult("%s", err)
	}
	if data == nil {
		return errorResult("asset_data is required for create action")
	}
	if missing := missingFields(data, []string{"status_id", "model_id"}); len(missing) > 0 {
		return errorResult("status_id and model_id are required to create an asset")
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	asset, err := client.Create(ctx, "hardware", pickFields(data, dataSchema))
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("create", map[string]any{
		"asset": pickRecord(asset, "id", "asset_tag", "name", "serial"),
	})
}

func assetsGet(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	assetTag, err := OptionalParam[string](args, "asset_tag")
	if err != nil {
		return errorResult("%s", err)
	}
	serial, err := OptionalParam[string](args, "serial")
	if err != nil {
		return errorResult("%s", err)
	}
	assetID, err := OptionalInt(args, "asset_id")
	if err != nil {
		return errorResult("%s", err)
	}

	client, cerr := deps.GetClient(ctx)
	if cerr != nil {
		return apiErrorResult(ctx, deps, cerr)
	}

	switch {
	case assetTag != "":
		asset, err := client.Do(ctx, http.MethodGet, "hardware/bytag/"+assetTag, nil, nil)
		if err != nil {
			return apiErrorResult(ctx, deps, err)
		}
		return successResult("get", map[string]any{"asset": asset})

	case serial != "":
		// byserial answers with a rows array since serials are not unique.
		result, err := client.Do(ctx, http.MethodGet, "hardware/byserial/"+serial, nil, nil)
		if err != nil {
			return apiErrorResult(ctx, deps, err)
		}
		if rawRows, ok := result["rows"]; ok {
			rows, _ := rawRows.([]any)
			if len(rows) == 0 {
				return errorResult("No asset found with serial: %s", serial)
			}
			fields := map[string]any{"count": len(rows)}
			if len(rows) == 1 {
				fields["asset"] = rows[0]
			} else {
				fields["assets"] = rows
			}
			return successResult("get", fields)
		}
		return successResult("get", map[string]any{"asset": result})

	case assetID != 0:
		asset, err := client.Get(ctx, "hardware", assetID)
		if err != nil {
			return apiErrorResult(ctx, deps, err)
		}
		return successResult("get", map[string]any{
			"asset": pickRecord(asset,
				"id", "asset_tag", "name", "serial", "model", "status_label",
				"category", "manufacturer", "supplier", "notes", "location",
				"assigned_to", "purchase_date", "purchase_cost"),
		})

	default:
		return errorResult("One of asset_id, asset_tag, or serial is required for get action")
	}
}

func assetsList(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	opts, err := OptionalListOptions(args)
	if err != nil {
		return errorResult("%s", err)
	}
	for _, filter := range assetListFilters {
		v, err := OptionalInt(args, filter)
		if err != nil {
			return errorResult("%s", err)
		}
		if v != 0 {
			if opts.Filters == nil {
				opts.Filters = map[string]string{}
			}
			opts.Filters[filter] = fmt.Sprintf("%d", v)
		}
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	resp, err := client.List(ctx, "hardware", opts)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}

	assets := make([]map[string]any, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		summary := pickRecord(row, "id", "asset_tag", "name", "serial")
		if model, ok := row["model"].(map[string]any); ok {
			summary["model"] = model["name"]
		} else {
			summary["model"] = nil
		}
		assets = append(assets, summary)
	}
	return successResult("list", map[string]any{
		"count":  len(assets),
		"total":  resp.Total,
		"assets": assets,
	})
}

func assetsUpdate(ctx context.Context, deps ToolDependencies, args map[string]any, dataSchema *jsonschema.Schema) *mcp.CallToolResult {
	assetID, err := RequiredInt(args, "asset_id")
	if err != nil {
		return errorResult("asset_id is required for update action")
	}
	data, err := ObjectParam(args, "asset_data")
	if err != nil {
		return errorResult("%s", err)
	}
	if data == nil {
		return errorResult("asset_data is required for update action")
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	asset, err := client.Update(ctx, "hardware", assetID, pickFields(data, dataSchema))
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("update", map[string]any{
		"asset": pickRecord(asset, "id", "asset_tag", "name"),
	})
}

func assetsDelete(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	assetID, err := RequiredInt(args, "asset_id")
	if err != nil {
		return errorResult("asset_id is required for delete action")
	}
	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	if _, err := client.Delete(ctx, "hardware", assetID); err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("delete", map[string]any{
		"asset_id": assetID,
		"message":  "Asset deleted successfully",
	})
}

// AssetOperations creates the asset_operations tool covering the lifecycle
// transitions: checkout, checkin, audit and restore. Every branch fetches the
// asset first so a bad ID fails with a not-found envelope before any state
// change is attempted.
func AssetOperations(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The operation to perform on the asset",
				Enum:        []any{"checkout", "checkin", "audit", "restore"},
			},
			"asset_id": {Type: "number", Description: "Asset ID"},
			"checkout_data": {
				Type:        "object",
				Description: "Checkout details (required for checkout action)",
				Properties: map[string]*jsonschema.Schema{
					"checkout_to_type": {
						Type:        "string",
						Description: "What the asset is checked out to",
						Enum:        []any{"user", "asset", "location"},
					},
					"assigned_to_id":   {Type: "number", Description: "ID of the user, asset or location receiving the asset"},
					"expected_checkin": {Type: "string", Description: "Expected checkin date (YYYY-MM-DD)"},
					"checkout_at":      {Type: "string", Description: "Checkout date (YYYY-MM-DD)"},
					"note":             {Type: "string", Description: "Checkout note"},
					"name":             {Type: "string", Description: "New asset name on checkout"},
				},
			},
			"checkin_data": {
				Type:        "object",
				Description: "Checkin details (optional for checkin action)",
				Properties: map[string]*jsonschema.Schema{
					"note":        {Type: "string", Description: "Checkin note"},
					"location_id": {Type: "number", Description: "Location to check the asset in to"},
				},
			},
			"audit_data": {
				Type:        "object",
				Description: "Audit details (optional for audit action)",
				Properties: map[string]*jsonschema.Schema{
					"location_id":     {Type: "number", Description: "Location where the asset was audited"},
					"note":            {Type: "string", Description: "Audit note"},
					"next_audit_date": {Type: "string", Description: "Next audit date (YYYY-MM-DD)"},
				},
			},
		},
		Required: []string{"action", "asset_id"},
	}

	return NewTool(
		ToolsetMetadataAssets,
		mcp.Tool{
			Name:        "asset_operations",
			Description: t("TOOL_ASSET_OPERATIONS_DESCRIPTION", "Perform state operations on assets: check out to a user, location or another asset, check in, mark as audited, or restore a soft-deleted asset."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_ASSET_OPERATIONS", "Asset Operations"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			assetID, err := RequiredInt(args, "asset_id")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}

			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			asset, err := client.Get(ctx, "hardware", assetID)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}

			switch action {
			case "checkout":
				return assetCheckout(ctx, deps, args, assetID), nil, nil
			case "checkin":
				return assetCheckin(ctx, deps, args, assetID), nil, nil
			case "audit":
				return assetAudit(ctx, deps, args, assetID, asset), nil, nil
			case "restore":
				restored, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("hardware/%d/restore", assetID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("restore", map[string]any{
					"asset_id": assetID,
					"message":  "Asset restored successfully",
					"asset":    pickRecord(unwrapRecord(restored, asset), "id", "asset_tag"),
				}), nil, nil
			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

func assetCheckout(ctx context.Context, deps ToolDependencies, args map[string]any, assetID int64) *mcp.CallToolResult {
	data, err := ObjectParam(args, "checkout_data")
	if err != nil {
		return errorResult("%s", err)
	}
	if data == nil {
		return errorResult("checkout_data is required for checkout action")
	}
	toType, _ := data["checkout_to_type"].(string)
	if toType == "" {
		toType = "user"
	}
	assignedTo, ok := data["assigned_to_id"].(float64)
	if !ok {
		return errorResult("assigned_to_id is required in checkout_data")
	}

	// The API keys the target by kind rather than taking a generic ID.
	payload := map[string]any{"checkout_to_type": toType}
	switch toType {
	case "user":
		payload["assigned_user"] = int64(assignedTo)
	case "asset":
		payload["assigned_asset"] = int64(assignedTo)
	case "location":
		payload["assigned_location"] = int64(assignedTo)
	default:
		return errorResult("checkout_to_type must be one of user, asset, location")
	}
	for _, field := range []string{"expected_checkin", "checkout_at", "note", "name"} {
		if v, ok := data[field].(string); ok && v != "" {
			payload[field] = v
		}
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("hardware/%d/checkout", assetID), nil, payload)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("checkout", map[string]any{
		"asset_id": assetID,
		"message":  fmt.Sprintf("Asset checked out to %s %d", toType, int64(assignedTo)),
		"asset":    pickRecord(unwrapRecord(result, nil), "id", "asset_tag", "assigned_to"),
	})
}

func assetCheckin(ctx context.Context, deps ToolDependencies, args map[string]any, assetID int64) *mcp.CallToolResult {
	data, err := ObjectParam(args, "checkin_data")
	if err != nil {
		return errorResult("%s", err)
	}
	payload := map[string]any{}
	if data != nil {
		if v, ok := data["note"].(string); ok && v != "" {
			payload["note"] = v
		}
		if v, ok := data["location_id"].(float64); ok && v != 0 {
			payload["location_id"] = int64(v)
		}
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("hardware/%d/checkin", assetID), nil, payload)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("checkin", map[string]any{
		"asset_id": assetID,
		"message":  "Asset checked in successfully",
		"asset":    pickRecord(unwrapRecord(result, nil), "id", "asset_tag"),
	})
}

func assetAudit(ctx context.Context, deps ToolDependencies, args map[string]any, assetID int64, asset map[string]any) *mcp.CallToolResult {
	data, err := ObjectParam(args, "audit_data")
	if err != nil {
		return errorResult("%s", err)
	}
	// The audit endpoint addresses assets by tag, so the tag comes from the
	// record fetched above.
	tag, _ := asset["asset_tag"].(string)
	if tag == "" {
		return errorResult("asset %d has no asset_tag, cannot audit", assetID)
	}
	payload := map[string]any{"asset_tag": tag}
	if data != nil {
		if v, ok := data["location_id"].(float64); ok && v != 0 {
			payload["location_id"] = int64(v)
		}
		if v, ok := data["note"].(string); ok && v != "" {
			payload["note"] = v
		}
		if v, ok := data["next_audit_date"].(string); ok && v != "" {
			payload["next_audit_date"] = v
		}
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	result, err := client.Do(ctx, http.MethodPost, "hardware/audit", nil, payload)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("audit", map[string]any{
		"asset_id": assetID,
		"message":  "Asset audited successfully",
		"asset":    pickRecord(unwrapRecord(result, asset), "id", "asset_tag"),
	})
}

// unwrapRecord returns the payload object of an operation response, falling
// back to the given record when the response carries no payload.
func unwrapRecord(result, fallback map[string]any) map[string]any {
	if payload, ok := result["payload"].(map[string]any); ok {
		return payload
	}
	if len(result) > 0 {
		return result
	}
	return fallback
}

// AssetRequests creates the asset_requests tool for the self-service checkout
// request queue. Approving or denying requests has no API endpoint, so only
// request and cancel are exposed.
func AssetRequests(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The request action to perform",
				Enum:        []any{"request", "cancel"},
			},
			"asset_id": {Type: "number", Description: "Asset ID (must be a requestable asset)"},
			"request_data": {
				Type:        "object",
				Description: "Request details (for request action)",
				Properties: map[string]*jsonschema.Schema{
					"expected_checkout": {Type: "string", Description: "Expected checkout date (YYYY-MM-DD)"},
					"note":              {Type: "string", Description: "Request note"},
				},
			},
		},
		Required: []string{"action", "asset_id"},
	}

	return NewTool(
		ToolsetMetadataAssets,
		mcp.Tool{
			Name:        "asset_requests",
			Description: t("TOOL_ASSET_REQUESTS_DESCRIPTION", "Submit or cancel a checkout request for a requestable asset."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_ASSET_REQUESTS", "Asset Requests"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			assetID, err := RequiredInt(args, "asset_id")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}

			switch action {
			case "request":
				data, err := ObjectParam(args, "request_data")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				payload := map[string]any{}
				if data != nil {
					if v, ok := data["expected_checkout"].(string); ok && v != "" {
						payload["expected_checkout"] = v
					}
					if v, ok := data["note"].(string); ok && v != "" {
						payload["note"] = v
					}
				}
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("hardware/%d/request", assetID), nil, payload)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("request", map[string]any{
					"asset_id": assetID,
					"message":  "Checkout request submitted",
					"result":   result,
				}), nil, nil

			case "cancel":
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("hardware/%d/request/cancel", assetID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("cancel", map[string]any{
					"asset_id": assetID,
					"message":  "Checkout request cancelled",
					"result":   result,
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

// AssetMaintenance creates the asset_maintenance tool. The upstream API only
// supports creating maintenance records, so that is the single action.
func AssetMaintenance(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The maintenance operation to perform",
				Enum:        []any{"create"},
			},
			"asset_id": {Type: "number", Description: "Asset ID"},
			"maintenance_data": {
				Type:        "object",
				Description: "Maintenance record data (required for create action)",
				Properties: map[string]*jsonschema.Schema{
					"asset_improvement": {Type: "string", Description: "Maintenance type, e.g. Maintenance, Repair, Upgrade"},
					"supplier_id":       {Type: "number", Description: "Supplier performing the maintenance"},
					"title":             {Type: "string", Description: "Maintenance title"},
					"cost":              {Type: "number", Description: "Maintenance cost"},
					"start_date":        {Type: "string", Description: "Start date (YYYY-MM-DD)"},
					"completion_date":   {Type: "string", Description: "Completion date (YYYY-MM-DD)"},
					"notes":             {Type: "string", Description: "Notes"},
				},
			},
		},
		Required: []string{"action", "asset_id", "maintenance_data"},
	}

	return NewTool(
		ToolsetMetadataAssets,
		mcp.Tool{
			Name:        "asset_maintenance",
			Description: t("TOOL_ASSET_MAINTENANCE_DESCRIPTION", "Create a maintenance record for an asset."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_ASSET_MAINTENANCE", "Asset Maintenance"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			if action != "create" {
				return errorResult("unknown action: %s", action), nil, nil
			}
			assetID, err := RequiredInt(args, "asset_id")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			data, err := ObjectParam(args, "maintenance_data")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			if data == nil {
				return errorResult("maintenance_data is required for create action"), nil, nil
			}
			if missing := missingFields(data, []string{"asset_improvement", "supplier_id", "title"}); len(missing) > 0 {
				return errorResult("asset_improvement, supplier_id and title are required in maintenance_data"), nil, nil
			}

			payload := map[string]any{
				"asset_id":          assetID,
				"asset_improvement": data["asset_improvement"],
				"supplier_id":       data["supplier_id"],
				"title":             data["title"],
			}
			for _, field := range []string{"cost", "start_date", "completion_date", "notes"} {
				if v, ok := data[field]; ok && v != nil {
					payload[field] = v
				}
			}

			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			maintenance, err := client.Create(ctx, "maintenances", payload)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			return successResult("create", map[string]any{
				"asset_id":    assetID,
				"message":     "Maintenance record created successfully",
				"maintenance": maintenance,
			}), nil, nil
		},
	)
}

// AssetLicenses creates the asset_licenses tool listing the licenses checked
// out to one asset.
func AssetLicenses(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"asset_id": {Type: "number", Description: "Asset ID"},
		},
		Required: []string{"asset_id"},
	}

	return NewTool(
		ToolsetMetadataAssets,
		mcp.Tool{
			Name:        "asset_licenses",
			Description: t("TOOL_ASSET_LICENSES_DESCRIPTION", "Get all licenses checked out to an asset."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_ASSET_LICENSES", "Asset Licenses"),
				ReadOnlyHint: true,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			assetID, err := RequiredInt(args, "asset_id")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			result, err := client.Do(ctx, http.MethodGet, fmt.Sprintf("hardware/%d/licenses", assetID), nil, nil)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			licenses, _ := result["rows"].([]any)
			return successResult("", map[string]any{
				"asset_id": assetID,
				"licenses": licenses,
			}), nil, nil
		},
	)
}

// AssetLabels creates the asset_labels tool. The label endpoint renders a PDF
// sheet for a set of asset tags; IDs are resolved to tags first.
func AssetLabels(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"asset_ids": {
				Type:        "array",
				Description: "List of asset IDs to generate labels for",
				Items:       &jsonschema.Schema{Type: "number"},
			},
			"asset_tags": {
				Type:        "array",
				Description: "List of asset tags to generate labels for",
				Items:       &jsonschema.Schema{Type: "string"},
			},
			"save_path": {
				Type:        "string",
				Description: "Path where the PDF labels file should be saved",
				Default:     mustJSON("/tmp/asset_labels.pdf"),
			},
		},
	}

	return NewTool(
		ToolsetMetadataAssets,
		mcp.Tool{
			Name:        "asset_labels",
			Description: t("TOOL_ASSET_LABELS_DESCRIPTION", "Generate a printable PDF label sheet for assets selected by ID or asset tag."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_ASSET_LABELS", "Asset Labels"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			savePath, err := OptionalParam[string](args, "save_path")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			if savePath == "" {
				savePath = "/tmp/asset_labels.pdf"
			}
			tags, err := OptionalStringArrayParam(args, "asset_tags")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			rawIDs, err := OptionalParam[[]any](args, "asset_ids")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			if len(tags) == 0 && len(rawIDs) == 0 {
				return errorResult("Either asset_ids or asset_tags must be provided"), nil, nil
			}

			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			if len(tags) == 0 {
				for _, raw := range rawIDs {
					id, ok := raw.(float64)
					if !ok {
						return errorResult("asset_ids must contain numbers"), nil, nil
					}
					asset, err := client.Get(ctx, "hardware", int64(id))
					if err != nil {
						return apiErrorResult(ctx, deps, err), nil, nil
					}
					tag, _ := asset["asset_tag"].(string)
					if tag == "" {
						return errorResult("asset %d has no asset_tag", int64(id)), nil, nil
					}
					tags = append(tags, tag)
				}
			}

			saved, err := client.DownloadPost(ctx, "hardware/labels", map[string]any{"asset_tags": tags}, savePath)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			return successResult("generate_labels", map[string]any{
				"saved_to": saved,
				"message":  fmt.Sprintf("Labels generated and saved to %s", saved),
			}), nil, nil
		},
	)
}

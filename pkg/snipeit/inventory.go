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

// ManageConsumables creates the manage_consumables tool. Consumables are
// quantity-tracked items that are spent rather than returned.
func ManageConsumables(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataInventory,
		ToolName:    "manage_consumables",
		Title:       "Manage Consumables",
		Description: "Manage Snipe-IT consumables with create, get, list, update and delete operations.",
		Endpoint:    "consumables",
		Entity:      "consumable",
		Entities:    "consumables",
		IDParam:     "consumable_id",
		DataParam:   "consumable_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":            {Type: "string", Description: "Consumable name (required for create)"},
				"qty":             {Type: "number", Description: "Quantity (required for create)"},
				"category_id":     {Type: "number", Description: "Category ID (required for create)"},
				"company_id":      {Type: "number", Description: "Company ID"},
				"location_id":     {Type: "number", Description: "Location ID"},
				"manufacturer_id": {Type: "number", Description: "Manufacturer ID"},
				"model_number":    {Type: "string", Description: "Model number"},
				"item_no":         {Type: "string", Description: "Item number"},
				"order_number":    {Type: "string", Description: "Order number"},
				"purchase_date":   {Type: "string", Description: "Purchase date (YYYY-MM-DD)"},
				"purchase_cost":   {Type: "number", Description: "Purchase cost"},
				"min_amt":         {Type: "number", Description: "Minimum quantity threshold"},
				"notes":           {Type: "string", Description: "Notes"},
			},
		},
		RequiredCreate: []string{"name", "qty", "category_id"},
		SummaryFields:  []string{"id", "name", "qty", "remaining", "category", "location"},
	})
}

// ManageComponents creates the manage_components tool. Components are
// quantity-tracked parts (RAM, drives) that check out to assets, not users.
func ManageComponents(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataInventory,
		ToolName:    "manage_components",
		Title:       "Manage Components",
		Description: "Manage Snipe-IT components with create, get, list, update and delete operations. Components check out to assets rather than users.",
		Endpoint:    "components",
		Entity:      "component",
		Entities:    "components",
		IDParam:     "component_id",
		DataParam:   "component_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":            {Type: "string", Description: "Component name (required for create)"},
				"qty":             {Type: "number", Description: "Total quantity (required for create)"},
				"category_id":     {Type: "number", Description: "Category ID, must be component-type (required for create)"},
				"company_id":      {Type: "number", Description: "Company ID"},
				"location_id":     {Type: "number", Description: "Location ID"},
				"manufacturer_id": {Type: "number", Description: "Manufacturer ID"},
				"supplier_id":     {Type: "number", Description: "Supplier ID"},
				"model_number":    {Type: "string", Description: "Model number"},
				"serial":          {Type: "string", Description: "Serial number"},
				"order_number":    {Type: "string", Description: "Order number"},
				"purchase_date":   {Type: "string", Description: "Purchase date (YYYY-MM-DD)"},
				"purchase_cost":   {Type: "number", Description: "Purchase cost per unit"},
				"min_amt":         {Type: "number", Description: "Minimum quantity threshold"},
				"notes":           {Type: "string", Description: "Notes"},
			},
		},
		RequiredCreate: []string{"name", "qty", "category_id"},
		SummaryFields:  []string{"id", "name", "qty", "remaining", "category", "location"},
	})
}

// ComponentOperations creates the component_operations tool: checkout to an
// asset, checkin from an asset, and listing the assets holding the component.
func ComponentOperations(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The operation to perform on the component",
				Enum:        []any{"checkout", "checkin", "list_assets"},
			},
			"component_id": {Type: "number", Description: "Component ID"},
			"checkout_data": {
				Type:        "object",
				Description: "Checkout data (required for checkout action)",
				Properties: map[string]*jsonschema.Schema{
					"assigned_to":  {Type: "number", Description: "Asset ID to check the component out to"},
					"assigned_qty": {Type: "number", Description: "Quantity to check out (default 1)"},
					"note":         {Type: "string", Description: "Checkout note"},
				},
			},
			"checkout_id": {Type: "number", Description: "Component-asset record ID from the checkout (required for checkin)"},
		},
		Required: []string{"action", "component_id"},
	}

	return NewTool(
		ToolsetMetadataInventory,
		mcp.Tool{
			Name:        "component_operations",
			Description: t("TOOL_COMPONENT_OPERATIONS_DESCRIPTION", "Check a component out to an asset, check it back in, or list the assets holding it."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_COMPONENT_OPERATIONS", "Component Operations"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			componentID, err := RequiredInt(args, "component_id")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}

			switch action {
			case "checkout":
				data, err := ObjectParam(args, "checkout_data")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if data == nil {
					return errorResult("checkout_data is required for checkout action"), nil, nil
				}
				assignedTo, ok := data["assigned_to"].(float64)
				if !ok {
					return errorResult("assigned_to (asset ID) is required for checkout"), nil, nil
				}
				payload := map[string]any{
					"assigned_to":  int64(assignedTo),
					"assigned_qty": int64(1),
				}
				if qty, ok := data["assigned_qty"].(float64); ok && qty > 0 {
					payload["assigned_qty"] = int64(qty)
				}
				if note, ok := data["note"].(string); ok && note != "" {
					payload["note"] = note
				}
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("components/%d/checkout", componentID), nil, payload)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("checkout", map[string]any{
					"component_id": componentID,
					"message":      fmt.Sprintf("Component checked out to asset %d", int64(assignedTo)),
					"result":       result,
				}), nil, nil

			case "checkin":
				checkoutID, err := RequiredInt(args, "checkout_id")
				if err != nil {
					return errorResult("checkout_id is required for checkin action"), nil, nil
				}
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("components/%d/checkin/%d", componentID, checkoutID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("checkin", map[string]any{
					"component_id": componentID,
					"checkout_id":  checkoutID,
					"message":      "Component checked in successfully",
					"result":       result,
				}), nil, nil

			case "list_assets":
				result, err := client.Do(ctx, http.MethodGet, fmt.Sprintf("components/%d/assets", componentID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				assets, _ := result["rows"].([]any)
				return successResult("list_assets", map[string]any{
					"component_id": componentID,
					"count":        len(assets),
					"assets":       assets,
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

// ManageAccessories creates the manage_accessories tool. Accessories are
// quantity-tracked peripherals that check out to users.
func ManageAccessories(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataInventory,
		ToolName:    "manage_accessories",
		Title:       "Manage Accessories",
		Description: "Manage Snipe-IT accessories with create, get, list, update and delete operations. Accessories are tracked by quantity and check out to users.",
		Endpoint:    "accessories",
		Entity:      "accessory",
		Entities:    "accessories",
		IDParam:     "accessory_id",
		DataParam:   "accessory_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":            {Type: "string", Description: "Accessory name (required for create)"},
				"qty":             {Type: "number", Description: "Total quantity available (required for create)"},
				"category_id":     {Type: "number", Description: "Category ID, must be accessory-type (required for create)"},
				"manufacturer_id": {Type: "number", Description: "Manufacturer ID"},
				"supplier_id":     {Type: "number", Description: "Supplier ID"},
				"location_id":     {Type: "number", Description: "Location ID"},
				"company_id":      {Type: "number", Description: "Company ID"},
				"model_number":    {Type: "string", Description: "Model number"},
				"order_number":    {Type: "string", Description: "Order number"},
				"purchase_cost":   {Type: "number", Description: "Purchase cost"},
				"purchase_date":   {Type: "string", Description: "Purchase date (YYYY-MM-DD)"},
				"min_amt":         {Type: "number", Description: "Minimum quantity threshold for reorder alerts"},
				"notes":           {Type: "string", Description: "Notes"},
			},
		},
		RequiredCreate: []string{"name", "qty", "category_id"},
		SummaryFields:  []string{"id", "name", "qty", "remaining_qty", "category", "model_number"},
	})
}

// AccessoryOperations creates the accessory_operations tool: checkout to a
// user, checkin by checkout record, and listing current holders.
func AccessoryOperations(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The operation to perform on the accessory",
				Enum:        []any{"checkout", "checkin", "list_checkouts"},
			},
			"accessory_id": {Type: "number", Description: "Accessory ID"},
			"checkout_data": {
				Type:        "object",
				Description: "Checkout data (required for checkout action)",
				Properties: map[string]*jsonschema.Schema{
					"assigned_to": {Type: "number", Description: "User ID to check the accessory out to"},
					"note":        {Type: "string", Description: "Checkout note"},
				},
			},
			"checkout_id": {Type: "number", Description: "Checkout record ID (required for checkin)"},
		},
		Required: []string{"action", "accessory_id"},
	}

	return NewTool(
		ToolsetMetadataInventory,
		mcp.Tool{
			Name:        "accessory_operations",
			Description: t("TOOL_ACCESSORY_OPERATIONS_DESCRIPTION", "Check an accessory out to a user, check it back in, or list who has it checked out."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_ACCESSORY_OPERATIONS", "Accessory Operations"),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			accessoryID, err := RequiredInt(args, "accessory_id")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}

			switch action {
			case "checkout":
				data, err := ObjectParam(args, "checkout_data")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if data == nil {
					return errorResult("checkout_data is required for checkout action"), nil, nil
				}
				assignedTo, ok := data["assigned_to"].(float64)
				if !ok {
					return errorResult("assigned_to (user ID) is required for checkout"), nil, nil
				}
				payload := map[string]any{"assigned_to": int64(assignedTo)}
				if note, ok := data["note"].(string); ok && note != "" {
					payload["note"] = note
				}
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("accessories/%d/checkout", accessoryID), nil, payload)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("checkout", map[string]any{
					"accessory_id": accessoryID,
					"message":      fmt.Sprintf("Accessory checked out to user %d", int64(assignedTo)),
					"result":       result,
				}), nil, nil

			case "checkin":
				checkoutID, err := RequiredInt(args, "checkout_id")
				if err != nil {
					return errorResult("checkout_id is required for checkin action"), nil, nil
				}
				// Checkin addresses the checkout record, not the user.
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("accessories/%d/checkin", accessoryID), nil,
					map[string]any{"accessory_user_id": checkoutID})
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("checkin", map[string]any{
					"accessory_id": accessoryID,
					"checkout_id":  checkoutID,
					"message":      "Accessory checked in successfully",
					"result":       result,
				}), nil, nil

			case "list_checkouts":
				result, err := client.Do(ctx, http.MethodGet, fmt.Sprintf("accessories/%d/checkedout", accessoryID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				rawRows, _ := result["rows"].([]any)
				checkouts := make([]map[string]any, 0, len(rawRows))
				for _, raw := range rawRows {
					row, ok := raw.(map[string]any)
					if !ok {
						continue
					}
					checkouts = append(checkouts, map[string]any{
						"id":          row["id"],
						"assigned_to": row["assigned_to"],
						"checkout_at": row["created_at"],
						"note":        row["note"],
					})
				}
				return successResult("list_checkouts", map[string]any{
					"accessory_id": accessoryID,
					"count":        len(checkouts),
					"checkouts":    checkouts,
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

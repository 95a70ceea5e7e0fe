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

// ManageLicenses creates the manage_licenses tool.
func ManageLicenses(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataLicensing,
		ToolName:    "manage_licenses",
		Title:       "Manage Licenses",
		Description: "Manage Snipe-IT software licenses with create, get, list, update and delete operations.",
		Endpoint:    "licenses",
		Entity:      "license",
		Entities:    "licenses",
		IDParam:     "license_id",
		DataParam:   "license_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":             {Type: "string", Description: "License name (required for create)"},
				"seats":            {Type: "number", Description: "Number of seats allowed (required for create)"},
				"category_id":      {Type: "number", Description: "Category ID"},
				"company_id":       {Type: "number", Description: "Company ID"},
				"manufacturer_id":  {Type: "number", Description: "Manufacturer ID"},
				"serial":           {Type: "string", Description: "License key or serial number"},
				"purchase_date":    {Type: "string", Description: "Purchase date (YYYY-MM-DD)"},
				"purchase_cost":    {Type: "number", Description: "Purchase cost"},
				"expiration_date":  {Type: "string", Description: "Expiration date (YYYY-MM-DD)"},
				"license_name":     {Type: "string", Description: "Licensed-to name"},
				"license_email":    {Type: "string", Description: "Licensed-to email"},
				"maintained":       {Type: "boolean", Description: "Whether the license has maintenance or support"},
				"reassignable":     {Type: "boolean", Description: "Whether seats can be reassigned"},
				"notes":            {Type: "string", Description: "Notes"},
				"order_number":     {Type: "string", Description: "Order number"},
				"supplier_id":      {Type: "number", Description: "Supplier ID"},
				"termination_date": {Type: "string", Description: "Termination date (YYYY-MM-DD)"},
			},
		},
		RequiredCreate: []string{"name", "seats"},
		SummaryFields:  []string{"id", "name", "seats", "free_seats_count", "expiration_date", "category"},
	})
}

// LicenseSeats creates the license_seats tool. Seats assign to users or
// assets; checkin addresses the seat directly.
func LicenseSeats(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The action to perform on license seats",
				Enum:        []any{"list", "checkout", "checkin"},
			},
			"license_id": {Type: "number", Description: "License ID (required for list and checkout)"},
			"seat_id":    {Type: "number", Description: "Seat ID (required for checkout and checkin)"},
			"checkout_data": {
				Type:        "object",
				Description: "Checkout data (required for checkout action)",
				Properties: map[string]*jsonschema.Schema{
					"assigned_to": {Type: "number", Description: "User ID to assign the seat to"},
					"asset_id":    {Type: "number", Description: "Asset ID to assign the seat to"},
					"note":        {Type: "string", Description: "Checkout note"},
				},
			},
		},
		Required: []string{"action"},
	}

	return NewTool(
		ToolsetMetadataLicensing,
		mcp.Tool{
			Name:        "license_seats",
			Description: t("TOOL_LICENSE_SEATS_DESCRIPTION", "List license seats and check them out to users or assets, or back in."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_LICENSE_SEATS", "License Seats"),
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
			case "list":
				licenseID, err := RequiredInt(args, "license_id")
				if err != nil {
					return errorResult("license_id is required for list action"), nil, nil
				}
				result, err := client.Do(ctx, http.MethodGet, fmt.Sprintf("licenses/%d/seats", licenseID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				rawRows, _ := result["rows"].([]any)
				seats := make([]map[string]any, 0, len(rawRows))
				for _, raw := range rawRows {
					if row, ok := raw.(map[string]any); ok {
						seats = append(seats, pickRecord(row, "id", "name", "assigned_user", "assigned_asset", "location", "reassignable"))
					}
				}
				return successResult("list", map[string]any{
					"license_id": licenseID,
					"count":      len(seats),
					"seats":      seats,
				}), nil, nil

			case "checkout":
				licenseID, err := RequiredInt(args, "license_id")
				if err != nil {
					return errorResult("license_id is required for checkout action"), nil, nil
				}
				seatID, err := RequiredInt(args, "seat_id")
				if err != nil {
					return errorResult("seat_id is required for checkout action"), nil, nil
				}
				data, err := ObjectParam(args, "checkout_data")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if data == nil {
					return errorResult("checkout_data is required for checkout action"), nil, nil
				}
				payload := map[string]any{}
				if v, ok := data["assigned_to"].(float64); ok && v != 0 {
					payload["assigned_to"] = int64(v)
				}
				if v, ok := data["asset_id"].(float64); ok && v != 0 {
					payload["asset_id"] = int64(v)
				}
				if len(payload) == 0 {
					return errorResult("Either assigned_to (user ID) or asset_id is required for checkout"), nil, nil
				}
				if v, ok := data["note"].(string); ok && v != "" {
					payload["note"] = v
				}
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("licenses/%d/seats/%d/checkout", licenseID, seatID), nil, payload)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("checkout", map[string]any{
					"license_id": licenseID,
					"seat_id":    seatID,
					"message":    "License seat checked out successfully",
					"result":     result,
				}), nil, nil

			case "checkin":
				seatID, err := RequiredInt(args, "seat_id")
				if err != nil {
					return errorResult("seat_id is required for checkin action"), nil, nil
				}
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("licenses/seats/%d/checkin", seatID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("checkin", map[string]any{
					"seat_id": seatID,
					"message": "License seat checked in successfully",
					"result":  result,
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

// LicenseFiles creates the license_files tool. Licenses use the upload/uploads
// endpoints rather than the files endpoints the other resources share.
func LicenseFiles(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newFileTool(t, fileToolConfig{
		Name:         "license_files",
		Title:        "License Files",
		Description:  "Upload, list, download and delete file attachments on a license.",
		Toolset:      ToolsetMetadataLicensing,
		IDParam:      "license_id",
		UploadPath:   func(id int64) string { return fmt.Sprintf("licenses/%d/upload", id) },
		ListPath:     func(id int64) string { return fmt.Sprintf("licenses/%d/uploads", id) },
		FilePath:     func(id, fileID int64) string { return fmt.Sprintf("licenses/%d/uploads/%d", id, fileID) },
		SingleUpload: true,
	})
}

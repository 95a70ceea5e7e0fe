package snipeit

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// relatedListAction builds an extra action that pages through a sub-collection
// of one record, e.g. the assets of a model or the users at a location.
func relatedListAction(action, idParam, key string, path func(id int64) string) extraAction {
	return func(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
		id, err := RequiredInt(args, idParam)
		if err != nil {
			return errorResult("%s is required for %s action", idParam, action)
		}
		opts, err := OptionalListOptions(args)
		if err != nil {
			return errorResult("%s", err)
		}
		client, err := deps.GetClient(ctx)
		if err != nil {
			return apiErrorResult(ctx, deps, err)
		}
		resp, err := client.List(ctx, path(id), opts)
		if err != nil {
			return apiErrorResult(ctx, deps, err)
		}
		return successResult(action, map[string]any{
			idParam: id,
			"count": len(resp.Rows),
			"total": resp.Total,
			key:     resp.Rows,
		})
	}
}

// ManageCategories creates the manage_categories tool.
func ManageCategories(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataSettings,
		ToolName:    "manage_categories",
		Title:       "Manage Categories",
		Description: "Manage Snipe-IT categories with create, get, list, update and delete operations.",
		Endpoint:    "categories",
		Entity:      "category",
		Entities:    "categories",
		IDParam:     "category_id",
		DataParam:   "category_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {Type: "string", Description: "Category name (required for create)"},
				"category_type": {
					Type:        "string",
					Description: "Type of category (required for create)",
					Enum:        []any{"asset", "accessory", "consumable", "component", "license"},
				},
				"eula_text":          {Type: "string", Description: "EULA text for this category"},
				"use_default_eula":   {Type: "boolean", Description: "Use the default EULA"},
				"require_acceptance": {Type: "boolean", Description: "Require users to accept the EULA"},
				"checkin_email":      {Type: "boolean", Description: "Send email on checkin"},
				"image":              {Type: "string", Description: "Image filename"},
			},
		},
		RequiredCreate: []string{"name", "category_type"},
		SummaryFields:  []string{"id", "name", "category_type", "item_count"},
	})
}

// ManageManufacturers creates the manage_manufacturers tool.
func ManageManufacturers(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataSettings,
		ToolName:    "manage_manufacturers",
		Title:       "Manage Manufacturers",
		Description: "Manage Snipe-IT manufacturers with create, get, list, update and delete operations.",
		Endpoint:    "manufacturers",
		Entity:      "manufacturer",
		Entities:    "manufacturers",
		IDParam:     "manufacturer_id",
		DataParam:   "manufacturer_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":          {Type: "string", Description: "Manufacturer name (required for create)"},
				"url":           {Type: "string", Description: "Manufacturer URL"},
				"support_url":   {Type: "string", Description: "Support URL"},
				"support_phone": {Type: "string", Description: "Support phone number"},
				"support_email": {Type: "string", Description: "Support email address"},
				"image":         {Type: "string", Description: "Image filename"},
			},
		},
		RequiredCreate: []string{"name"},
		SummaryFields:  []string{"id", "name", "url", "assets_count"},
	})
}

// ManageModels creates the manage_models tool. The extra assets action lists
// the hardware of one model.
func ManageModels(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataSettings,
		ToolName:    "manage_models",
		Title:       "Manage Models",
		Description: "Manage Snipe-IT asset models with create, get, list, update and delete operations, plus assets to list the hardware of a model.",
		Endpoint:    "models",
		Entity:      "model",
		Entities:    "models",
		IDParam:     "model_id",
		DataParam:   "model_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":            {Type: "string", Description: "Model name (required for create)"},
				"model_number":    {Type: "string", Description: "Model number"},
				"manufacturer_id": {Type: "number", Description: "Manufacturer ID"},
				"category_id":     {Type: "number", Description: "Category ID (required for create)"},
				"eol":             {Type: "number", Description: "End of life in months"},
				"depreciation_id": {Type: "number", Description: "Depreciation ID"},
				"notes":           {Type: "string", Description: "Notes"},
				"fieldset_id":     {Type: "number", Description: "Custom fieldset ID"},
				"requestable":     {Type: "boolean", Description: "Whether assets of this model are requestable"},
				"image":           {Type: "string", Description: "Image filename"},
			},
		},
		RequiredCreate: []string{"name", "category_id"},
		SummaryFields:  []string{"id", "name", "model_number", "manufacturer", "category", "assets_count"},
		Extra: map[string]extraAction{
			"assets": relatedListAction("assets", "model_id", "assets",
				func(id int64) string { return fmt.Sprintf("models/%d/assets", id) }),
		},
	})
}

// ManageStatusLabels creates the manage_status_labels tool. The extra assets
// action lists the hardware carrying one status label.
func ManageStatusLabels(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataSettings,
		ToolName:    "manage_status_labels",
		Title:       "Manage Status Labels",
		Description: "Manage Snipe-IT status labels with create, get, list, update and delete operations, plus assets to list the hardware in a status.",
		Endpoint:    "statuslabels",
		Entity:      "status_label",
		Entities:    "status_labels",
		IDParam:     "status_label_id",
		DataParam:   "status_label_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {Type: "string", Description: "Status label name (required for create)"},
				"type": {
					Type:        "string",
					Description: "Status type (required for create)",
					Enum:        []any{"deployable", "pending", "archived", "undeployable"},
				},
				"color":         {Type: "string", Description: "Color hex code, e.g. #ff0000"},
				"show_in_nav":   {Type: "boolean", Description: "Show in navigation"},
				"default_label": {Type: "boolean", Description: "Use as default status"},
				"notes":         {Type: "string", Description: "Notes"},
			},
		},
		RequiredCreate: []string{"name", "type"},
		SummaryFields:  []string{"id", "name", "type", "color", "assets_count"},
		Extra: map[string]extraAction{
			"assets": relatedListAction("assets", "status_label_id", "assets",
				func(id int64) string { return fmt.Sprintf("statuslabels/%d/assetlist", id) }),
		},
	})
}

// ManageLocations creates the manage_locations tool. The extra assets and
// users actions list what is at one location.
func ManageLocations(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataSettings,
		ToolName:    "manage_locations",
		Title:       "Manage Locations",
		Description: "Manage Snipe-IT locations with create, get, list, update and delete operations, plus assets and users to list what is at a location.",
		Endpoint:    "locations",
		Entity:      "location",
		Entities:    "locations",
		IDParam:     "location_id",
		DataParam:   "location_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":       {Type: "string", Description: "Location name (required for create)"},
				"address":    {Type: "string", Description: "Street address"},
				"address2":   {Type: "string", Description: "Address line 2"},
				"city":       {Type: "string", Description: "City"},
				"state":      {Type: "string", Description: "State or province"},
				"country":    {Type: "string", Description: "Country (2-letter ISO code)"},
				"zip":        {Type: "string", Description: "ZIP or postal code"},
				"ldap_ou":    {Type: "string", Description: "LDAP OU"},
				"manager_id": {Type: "number", Description: "Manager user ID"},
				"parent_id":  {Type: "number", Description: "Parent location ID"},
				"currency":   {Type: "string", Description: "Currency code, e.g. USD"},
				"image":      {Type: "string", Description: "Image filename"},
			},
		},
		RequiredCreate: []string{"name"},
		SummaryFields:  []string{"id", "name", "city", "country", "parent", "assets_count", "users_count"},
		Extra: map[string]extraAction{
			"assets": relatedListAction("assets", "location_id", "assets",
				func(id int64) string { return fmt.Sprintf("locations/%d/assets", id) }),
			"users": relatedListAction("users", "location_id", "users",
				func(id int64) string { return fmt.Sprintf("locations/%d/users", id) }),
		},
	})
}

// ManageSuppliers creates the manage_suppliers tool.
func ManageSuppliers(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataSettings,
		ToolName:    "manage_suppliers",
		Title:       "Manage Suppliers",
		Description: "Manage Snipe-IT suppliers with create, get, list, update and delete operations.",
		Endpoint:    "suppliers",
		Entity:      "supplier",
		Entities:    "suppliers",
		IDParam:     "supplier_id",
		DataParam:   "supplier_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":     {Type: "string", Description: "Supplier name (required for create)"},
				"address":  {Type: "string", Description: "Street address"},
				"address2": {Type: "string", Description: "Address line 2"},
				"city":     {Type: "string", Description: "City"},
				"state":    {Type: "string", Description: "State or province"},
				"country":  {Type: "string", Description: "Country (2-letter ISO code)"},
				"zip":      {Type: "string", Description: "ZIP or postal code"},
				"phone":    {Type: "string", Description: "Phone number"},
				"fax":      {Type: "string", Description: "Fax number"},
				"email":    {Type: "string", Description: "Email address"},
				"contact":  {Type: "string", Description: "Contact person name"},
				"url":      {Type: "string", Description: "Website URL"},
				"notes":    {Type: "string", Description: "Notes"},
				"image":    {Type: "string", Description: "Image filename"},
			},
		},
		RequiredCreate: []string{"name"},
		SummaryFields:  []string{"id", "name", "city", "contact", "assets_count"},
	})
}

// ManageDepreciations creates the manage_depreciations tool.
func ManageDepreciations(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataSettings,
		ToolName:    "manage_depreciations",
		Title:       "Manage Depreciations",
		Description: "Manage Snipe-IT depreciation schedules with create, get, list, update and delete operations.",
		Endpoint:    "depreciations",
		Entity:      "depreciation",
		Entities:    "depreciations",
		IDParam:     "depreciation_id",
		DataParam:   "depreciation_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":   {Type: "string", Description: "Depreciation name, e.g. Computer Equipment (3 Years) (required for create)"},
				"months": {Type: "number", Description: "Depreciation period in months (required for create)"},
			},
		},
		RequiredCreate: []string{"name", "months"},
		SummaryFields:  []string{"id", "name", "months"},
	})
}

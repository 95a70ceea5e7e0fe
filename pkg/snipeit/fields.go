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

// ManageFields creates the manage_fields tool. Custom fields only take effect
// once associated with a fieldset, so association is part of the tool.
func ManageFields(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataFields,
		ToolName:    "manage_fields",
		Title:       "Manage Fields",
		Description: "Manage Snipe-IT custom fields with create, get, list, update and delete operations, plus associate and disassociate to bind fields to fieldsets.",
		Endpoint:    "fields",
		Entity:      "field",
		Entities:    "fields",
		IDParam:     "field_id",
		DataParam:   "field_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {Type: "string", Description: "Field name (required for create)"},
				"element": {
					Type:        "string",
					Description: "Field element type (required for create)",
					Enum:        []any{"text", "textarea", "listbox", "checkbox", "radio"},
				},
				"field_values":    {Type: "string", Description: "Possible values for listbox/radio, newline separated"},
				"field_encrypted": {Type: "boolean", Description: "Whether the field value is encrypted"},
				"show_in_email":   {Type: "boolean", Description: "Show the field in emails"},
				"help_text":       {Type: "string", Description: "Help text displayed with the field"},
				"format": {
					Type:        "string",
					Description: "Validation format for the field",
					Enum: []any{
						"ANY", "ALPHA", "ALPHA-DASH", "NUMERIC", "ALPHA-NUMERIC",
						"EMAIL", "DATE", "URL", "IP", "IPV4", "IPV6", "MAC", "BOOLEAN", "REGEX",
					},
				},
				"custom_format": {Type: "string", Description: "Custom regex pattern when format is REGEX"},
			},
		},
		RequiredCreate: []string{"name", "element"},
		SummaryFields:  []string{"id", "name", "db_column_name", "element", "format", "field_encrypted"},
		ExtraSchema: func(schema *jsonschema.Schema) {
			schema.Properties["fieldset_id"] = &jsonschema.Schema{
				Type:        "number",
				Description: "Fieldset ID (required for associate and disassociate actions)",
			}
			schema.Properties["required"] = &jsonschema.Schema{
				Type:        "boolean",
				Description: "Whether the field is required in the fieldset (for associate action)",
			}
			schema.Properties["field_order"] = &jsonschema.Schema{
				Type:        "number",
				Description: "Display order within the fieldset (for associate action)",
			}
		},
		Extra: map[string]extraAction{
			"associate":    fieldAssociate,
			"disassociate": fieldDisassociate,
		},
	})
}

func fieldAssociate(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	fieldID, err := RequiredInt(args, "field_id")
	if err != nil {
		return errorResult("field_id and fieldset_id are required for associate action")
	}
	fieldsetID, err := RequiredInt(args, "fieldset_id")
	if err != nil {
		return errorResult("field_id and fieldset_id are required for associate action")
	}
	required, err := OptionalParam[bool](args, "required")
	if err != nil {
		return errorResult("%s", err)
	}
	order, err := OptionalInt(args, "field_order")
	if err != nil {
		return errorResult("%s", err)
	}

	payload := map[string]any{"required": required}
	if order != 0 {
		payload["order"] = order
	}
	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	if _, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("fields/%d/associate/%d", fieldID, fieldsetID), nil, payload); err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("associate", map[string]any{
		"field_id":    fieldID,
		"fieldset_id": fieldsetID,
		"message":     "Field associated with fieldset successfully",
	})
}

func fieldDisassociate(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	fieldID, err := RequiredInt(args, "field_id")
	if err != nil {
		return errorResult("field_id and fieldset_id are required for disassociate action")
	}
	fieldsetID, err := RequiredInt(args, "fieldset_id")
	if err != nil {
		return errorResult("field_id and fieldset_id are required for disassociate action")
	}
	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	if _, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("fields/%d/disassociate/%d", fieldID, fieldsetID), nil, nil); err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("disassociate", map[string]any{
		"field_id":    fieldID,
		"fieldset_id": fieldsetID,
		"message":     "Field disassociated from fieldset successfully",
	})
}

// ManageFieldsets creates the manage_fieldsets tool. The extra fields action
// lists a fieldset's fields and reorder rewrites their display order.
func ManageFieldsets(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataFields,
		ToolName:    "manage_fieldsets",
		Title:       "Manage Fieldsets",
		Description: "Manage Snipe-IT fieldsets with create, get, list, update and delete operations, plus fields to list a fieldset's fields and reorder to change their order.",
		Endpoint:    "fieldsets",
		Entity:      "fieldset",
		Entities:    "fieldsets",
		IDParam:     "fieldset_id",
		DataParam:   "fieldset_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {Type: "string", Description: "Fieldset name (required for create)"},
			},
		},
		RequiredCreate: []string{"name"},
		SummaryFields:  []string{"id", "name", "fields_count", "models_count"},
		ExtraSchema: func(schema *jsonschema.Schema) {
			schema.Properties["field_order"] = &jsonschema.Schema{
				Type:        "array",
				Description: "Ordered list of field IDs (for reorder action)",
				Items:       &jsonschema.Schema{Type: "number"},
			}
		},
		Extra: map[string]extraAction{
			"fields":  fieldsetFields,
			"reorder": fieldsetReorder,
		},
	})
}

func fieldsetFields(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	fieldsetID, err := RequiredInt(args, "fieldset_id")
	if err != nil {
		return errorResult("fieldset_id is required for fields action")
	}
	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	result, err := client.Do(ctx, http.MethodGet, fmt.Sprintf("fieldsets/%d/fields", fieldsetID), nil, nil)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	fields, _ := result["rows"].([]any)
	return successResult("fields", map[string]any{
		"fieldset_id": fieldsetID,
		"fields":      fields,
	})
}

func fieldsetReorder(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	fieldsetID, err := RequiredInt(args, "fieldset_id")
	if err != nil {
		return errorResult("fieldset_id is required for reorder action")
	}
	rawOrder, err := OptionalParam[[]any](args, "field_order")
	if err != nil {
		return errorResult("%s", err)
	}
	if len(rawOrder) == 0 {
		return errorResult("field_order is required for reorder action")
	}
	order := make([]int64, 0, len(rawOrder))
	for _, raw := range rawOrder {
		id, ok := raw.(float64)
		if !ok {
			return errorResult("field_order must contain numbers")
		}
		order = append(order, int64(id))
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("fields/fieldsets/%d/order", fieldsetID), nil,
		map[string]any{"item": order})
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("reorder", map[string]any{
		"fieldset_id": fieldsetID,
		"message":     "Field order updated successfully",
		"result":      result,
	})
}

package snipeit

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// ManageCompanies creates the manage_companies tool. Companies segment assets
// and users by organization in multi-tenant installations.
func ManageCompanies(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataUsers,
		ToolName:    "manage_companies",
		Title:       "Manage Companies",
		Description: "Manage Snipe-IT companies with create, get, list, update and delete operations.",
		Endpoint:    "companies",
		Entity:      "company",
		Entities:    "companies",
		IDParam:     "company_id",
		DataParam:   "company_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":  {Type: "string", Description: "Company name (required for create)"},
				"image": {Type: "string", Description: "Image filename"},
			},
		},
		RequiredCreate: []string{"name"},
		SummaryFields:  []string{"id", "name", "assets_count", "licenses_count", "accessories_count", "users_count"},
	})
}

// ManageDepartments creates the manage_departments tool.
func ManageDepartments(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataUsers,
		ToolName:    "manage_departments",
		Title:       "Manage Departments",
		Description: "Manage Snipe-IT departments with create, get, list, update and delete operations.",
		Endpoint:    "departments",
		Entity:      "department",
		Entities:    "departments",
		IDParam:     "department_id",
		DataParam:   "department_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":        {Type: "string", Description: "Department name (required for create)"},
				"company_id":  {Type: "number", Description: "Company ID"},
				"location_id": {Type: "number", Description: "Location ID"},
				"manager_id":  {Type: "number", Description: "Manager user ID"},
				"notes":       {Type: "string", Description: "Notes"},
				"image":       {Type: "string", Description: "Image filename"},
			},
		},
		RequiredCreate: []string{"name"},
		SummaryFields:  []string{"id", "name", "company", "manager", "location", "users_count"},
	})
}

// ManageGroups creates the manage_groups tool. Group permissions are
// cumulative across a user's memberships.
func ManageGroups(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newManageTool(t, resourceDescriptor{
		Toolset:     ToolsetMetadataUsers,
		ToolName:    "manage_groups",
		Title:       "Manage Groups",
		Description: "Manage Snipe-IT permission groups with create, get, list, update and delete operations.",
		Endpoint:    "groups",
		Entity:      "group",
		Entities:    "groups",
		IDParam:     "group_id",
		DataParam:   "group_data",
		DataSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name":        {Type: "string", Description: "Group name (required for create)"},
				"permissions": {Type: "object", Description: "Permissions object defining group access rights"},
			},
		},
		RequiredCreate: []string{"name"},
		SummaryFields:  []string{"id", "name", "users_count", "created_at"},
	})
}

package snipeit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeitapi"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// SystemInfo creates the system_info tool, returning the Snipe-IT version and
// build details.
func SystemInfo(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}

	return NewTool(
		ToolsetMetadataAdmin,
		mcp.Tool{
			Name:        "system_info",
			Description: t("TOOL_SYSTEM_INFO_DESCRIPTION", "Get the Snipe-IT version and build information."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_SYSTEM_INFO", "System Info"),
				ReadOnlyHint: true,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, _ map[string]any) (*mcp.CallToolResult, any, error) {
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			info, err := client.Do(ctx, http.MethodGet, "version", nil, nil)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}
			return successResult("", map[string]any{"version_info": info}), nil, nil
		},
	)
}

// ManageBackups creates the manage_backups tool. Listing and downloading only;
// creating backups is not exposed by the Snipe-IT API.
func ManageBackups(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The backup action to perform",
				Enum:        []any{"list", "download"},
			},
			"filename":  {Type: "string", Description: "Backup filename (required for download action)"},
			"save_path": {Type: "string", Description: "Path to save the backup (required for download action)"},
		},
		Required: []string{"action"},
	}

	return NewTool(
		ToolsetMetadataAdmin,
		mcp.Tool{
			Name:        "manage_backups",
			Description: t("TOOL_MANAGE_BACKUPS_DESCRIPTION", "List Snipe-IT backups and download backup archives."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_MANAGE_BACKUPS", "Manage Backups"),
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
			case "list":
				result, err := client.Do(ctx, http.MethodGet, "settings/backups", nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				backups, ok := result["rows"].([]any)
				if !ok {
					backups, _ = result["backups"].([]any)
				}
				return successResult("list", map[string]any{
					"count":   len(backups),
					"backups": backups,
				}), nil, nil

			case "download":
				filename, err := RequiredParam[string](args, "filename")
				if err != nil {
					return errorResult("filename and save_path are required for download action"), nil, nil
				}
				savePath, err := RequiredParam[string](args, "save_path")
				if err != nil {
					return errorResult("filename and save_path are required for download action"), nil, nil
				}
				saved, err := client.Download(ctx, "settings/backups/download/"+filepath.Base(filename), savePath)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("download", map[string]any{
					"filename": filename,
					"saved_to": saved,
					"message":  fmt.Sprintf("Backup downloaded to %s", saved),
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

// LdapOperations creates the ldap_operations tool. A 404 from either endpoint
// usually means LDAP is not configured on the server, so the error says so.
func LdapOperations(t translations.TranslationHelperFunc) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The LDAP action to perform",
				Enum:        []any{"sync", "test"},
			},
		},
		Required: []string{"action"},
	}

	return NewTool(
		ToolsetMetadataAdmin,
		mcp.Tool{
			Name:        "ldap_operations",
			Description: t("TOOL_LDAP_OPERATIONS_DESCRIPTION", "Trigger an LDAP directory sync or test the LDAP connection."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_LDAP_OPERATIONS", "LDAP Operations"),
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
			case "sync":
				result, err := client.Do(ctx, http.MethodPost, "settings/ldapsync", nil, nil)
				if err != nil {
					return ldapErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("sync", map[string]any{
					"message": "LDAP sync triggered",
					"result":  result,
				}), nil, nil

			case "test":
				result, err := client.Do(ctx, http.MethodGet, "settings/ldaptest", nil, nil)
				if err != nil {
					return ldapErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("test", map[string]any{"result": result}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

func ldapErrorResult(ctx context.Context, deps ToolDependencies, err error) *mcp.CallToolResult {
	var notFoundErr *snipeitapi.NotFoundError
	if errors.As(err, &notFoundErr) {
		return errorResult("Not found (LDAP may not be configured): %s", err)
	}
	return apiErrorResult(ctx, deps, err)
}

func importDataSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"import_type": {
				Type:        "string",
				Description: "Type of records the import creates",
				Enum:        []any{"asset", "accessory", "consumable", "component", "license", "user", "location"},
			},
			"field_map":  {Type: "object", Description: "Mapping of CSV columns to Snipe-IT fields"},
			"run_backup": {Type: "boolean", Description: "Run a backup before processing the import"},
		},
	}
}

// ManageImports creates the manage_imports tool for the CSV import pipeline:
// upload a file, map its columns with update, then process it.
func ManageImports(t translations.TranslationHelperFunc) toolsets.ServerTool {
	dataSchema := importDataSchema()
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The import action to perform",
				Enum:        []any{"list", "get", "upload", "update", "delete", "process"},
			},
			"import_id": {Type: "number", Description: "Import ID (required for get, update, delete, process)"},
			"file_path": {Type: "string", Description: "Path of the CSV file to upload (required for upload action)"},
			"import_data": {
				Type:        "object",
				Description: "Import settings (for update action)",
				Properties:  dataSchema.Properties,
			},
		},
		Required: []string{"action"},
	}

	return NewTool(
		ToolsetMetadataAdmin,
		mcp.Tool{
			Name:        "manage_imports",
			Description: t("TOOL_MANAGE_IMPORTS_DESCRIPTION", "Manage CSV imports: upload files, configure field mappings, process imports and clean up."),
			Annotations: &mcp.ToolAnnotations{
				Title:        t("TOOL_MANAGE_IMPORTS", "Manage Imports"),
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
				result, err := client.Do(ctx, http.MethodGet, "imports", nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				imports, _ := result["rows"].([]any)
				return successResult("list", map[string]any{
					"count":   len(imports),
					"imports": imports,
				}), nil, nil

			case "get":
				importID, err := RequiredInt(args, "import_id")
				if err != nil {
					return errorResult("import_id is required for get action"), nil, nil
				}
				result, err := client.Do(ctx, http.MethodGet, fmt.Sprintf("imports/%d", importID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("get", map[string]any{"import": result}), nil, nil

			case "upload":
				path, err := OptionalParam[string](args, "file_path")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if path == "" {
					return errorResult("file_path is required for upload action"), nil, nil
				}
				result, err := client.Upload(ctx, "imports", []string{path}, "")
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("upload", map[string]any{
					"message": fmt.Sprintf("File '%s' uploaded successfully", filepath.Base(path)),
					"result":  result,
				}), nil, nil

			case "update":
				importID, err := RequiredInt(args, "import_id")
				if err != nil {
					return errorResult("import_id is required for update action"), nil, nil
				}
				data, err := ObjectParam(args, "import_data")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if data == nil {
					return errorResult("import_data is required for update action"), nil, nil
				}
				result, err := client.Do(ctx, http.MethodPatch, fmt.Sprintf("imports/%d", importID), nil, pickFields(data, dataSchema))
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("update", map[string]any{
					"import_id": importID,
					"result":    result,
				}), nil, nil

			case "delete":
				importID, err := RequiredInt(args, "import_id")
				if err != nil {
					return errorResult("import_id is required for delete action"), nil, nil
				}
				if _, err := client.Do(ctx, http.MethodDelete, fmt.Sprintf("imports/%d", importID), nil, nil); err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("delete", map[string]any{
					"import_id": importID,
					"message":   "Import deleted successfully",
				}), nil, nil

			case "process":
				importID, err := RequiredInt(args, "import_id")
				if err != nil {
					return errorResult("import_id is required for process action"), nil, nil
				}
				result, err := client.Do(ctx, http.MethodPost, fmt.Sprintf("imports/process/%d", importID), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("process", map[string]any{
					"import_id": importID,
					"message":   "Import processed",
					"result":    result,
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

package snipeit

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// fileToolConfig declares a file-attachment tool over one resource. The
// upload/list/download/delete cycle is identical across resources; only the
// endpoint shapes differ (licenses use upload/uploads, the rest use files).
type fileToolConfig struct {
	Name        string
	Title       string
	Description string
	Toolset     toolsets.ToolsetMetadata
	IDParam     string
	UploadPath  func(id int64) string
	ListPath    func(id int64) string
	FilePath    func(id, fileID int64) string
	// SingleUpload restricts upload to one file_path; otherwise the tool
	// accepts a file_paths array plus shared notes.
	SingleUpload bool
}

// newFileTool builds an upload/list/download/delete tool from a config.
func newFileTool(t translations.TranslationHelperFunc, cfg fileToolConfig) toolsets.ServerTool {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The file operation to perform",
				Enum:        []any{"upload", "list", "download", "delete"},
			},
			cfg.IDParam: {Type: "number", Description: strings.ReplaceAll(strings.TrimSuffix(cfg.IDParam, "_id"), "_", " ") + " ID"},
			"file_id":   {Type: "number", Description: "File ID (required for download and delete actions)"},
			"save_path": {Type: "string", Description: "Path to save downloaded file (for download action)"},
		},
		Required: []string{"action", cfg.IDParam},
	}
	if cfg.SingleUpload {
		schema.Properties["file_path"] = &jsonschema.Schema{
			Type:        "string",
			Description: "File path to upload (for upload action)",
		}
	} else {
		schema.Properties["file_paths"] = &jsonschema.Schema{
			Type:        "array",
			Description: "List of file paths to upload (for upload action)",
			Items:       &jsonschema.Schema{Type: "string"},
		}
		schema.Properties["notes"] = &jsonschema.Schema{
			Type:        "string",
			Description: "Notes for uploaded files (for upload action)",
		}
	}

	key := strings.ToUpper("TOOL_" + cfg.Name)
	return NewTool(
		cfg.Toolset,
		mcp.Tool{
			Name:        cfg.Name,
			Description: t(key+"_DESCRIPTION", cfg.Description),
			Annotations: &mcp.ToolAnnotations{
				Title:        t(key, cfg.Title),
				ReadOnlyHint: false,
			},
			InputSchema: schema,
		},
		func(ctx context.Context, deps ToolDependencies, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			action, err := RequiredParam[string](args, "action")
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			id, err := RequiredInt(args, cfg.IDParam)
			if err != nil {
				return errorResult("%s", err), nil, nil
			}
			client, err := deps.GetClient(ctx)
			if err != nil {
				return apiErrorResult(ctx, deps, err), nil, nil
			}

			switch action {
			case "upload":
				var paths []string
				notes := ""
				if cfg.SingleUpload {
					path, err := OptionalParam[string](args, "file_path")
					if err != nil {
						return errorResult("%s", err), nil, nil
					}
					if path == "" {
						return errorResult("file_path is required for upload action"), nil, nil
					}
					paths = []string{path}
				} else {
					paths, err = OptionalStringArrayParam(args, "file_paths")
					if err != nil {
						return errorResult("%s", err), nil, nil
					}
					if len(paths) == 0 {
						return errorResult("file_paths is required for upload action"), nil, nil
					}
					notes, err = OptionalParam[string](args, "notes")
					if err != nil {
						return errorResult("%s", err), nil, nil
					}
				}
				result, err := client.Upload(ctx, cfg.UploadPath(id), paths, notes)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				message := fmt.Sprintf("Uploaded %d file(s) successfully", len(paths))
				if cfg.SingleUpload {
					message = fmt.Sprintf("File '%s' uploaded successfully", filepath.Base(paths[0]))
				}
				return successResult("upload", map[string]any{
					cfg.IDParam: id,
					"message":   message,
					"result":    result,
				}), nil, nil

			case "list":
				result, err := client.Do(ctx, http.MethodGet, cfg.ListPath(id), nil, nil)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				rawRows, _ := result["rows"].([]any)
				files := make([]map[string]any, 0, len(rawRows))
				for _, raw := range rawRows {
					if row, ok := raw.(map[string]any); ok {
						files = append(files, pickRecord(row, "id", "filename", "url", "created_at", "notes"))
					}
				}
				return successResult("list", map[string]any{
					cfg.IDParam: id,
					"count":     len(files),
					"files":     files,
				}), nil, nil

			case "download":
				fileID, err := RequiredInt(args, "file_id")
				if err != nil {
					return errorResult("file_id is required for download action"), nil, nil
				}
				savePath, err := OptionalParam[string](args, "save_path")
				if err != nil {
					return errorResult("%s", err), nil, nil
				}
				if savePath == "" {
					return errorResult("save_path is required for download action"), nil, nil
				}
				saved, err := client.Download(ctx, cfg.FilePath(id, fileID), savePath)
				if err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("download", map[string]any{
					cfg.IDParam: id,
					"file_id":   fileID,
					"saved_to":  saved,
					"message":   fmt.Sprintf("File downloaded to %s", saved),
				}), nil, nil

			case "delete":
				fileID, err := RequiredInt(args, "file_id")
				if err != nil {
					return errorResult("file_id is required for delete action"), nil, nil
				}
				if _, err := client.Do(ctx, http.MethodDelete, cfg.FilePath(id, fileID), nil, nil); err != nil {
					return apiErrorResult(ctx, deps, err), nil, nil
				}
				return successResult("delete", map[string]any{
					cfg.IDParam: id,
					"file_id":   fileID,
					"message":   "File deleted successfully",
				}), nil, nil

			default:
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

// AssetFiles creates the asset_files tool.
func AssetFiles(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newFileTool(t, fileToolConfig{
		Name:        "asset_files",
		Title:       "Asset Files",
		Description: "Upload, list, download and delete file attachments on an asset.",
		Toolset:     ToolsetMetadataAssets,
		IDParam:     "asset_id",
		UploadPath:  func(id int64) string { return fmt.Sprintf("hardware/%d/files", id) },
		ListPath:    func(id int64) string { return fmt.Sprintf("hardware/%d/files", id) },
		FilePath:    func(id, fileID int64) string { return fmt.Sprintf("hardware/%d/files/%d", id, fileID) },
	})
}

// ModelFiles creates the model_files tool. Model attachments hold manuals and
// datasheets that apply to every asset of the model.
func ModelFiles(t translations.TranslationHelperFunc) toolsets.ServerTool {
	return newFileTool(t, fileToolConfig{
		Name:         "model_files",
		Title:        "Model Files",
		Description:  "Upload, list, download and delete file attachments on an asset model.",
		Toolset:      ToolsetMetadataSettings,
		IDParam:      "model_id",
		UploadPath:   func(id int64) string { return fmt.Sprintf("models/%d/files", id) },
		ListPath:     func(id int64) string { return fmt.Sprintf("models/%d/files", id) },
		FilePath:     func(id, fileID int64) string { return fmt.Sprintf("models/%d/files/%d", id, fileID) },
		SingleUpload: true,
	})
}

package snipeit

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/sanitize"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
)

// resourceDescriptor declares a manage_* tool over one Snipe-IT collection.
// The five generic verbs (create, get, list, update, delete) share a single
// handler; resource-specific actions plug in through Extra. Everything that
// varies between the manage tools is data in this struct, since the tools are
// otherwise textually identical.
type resourceDescriptor struct {
	Toolset     toolsets.ToolsetMetadata
	ToolName    string // e.g. manage_categories
	Title       string // e.g. Manage Categories
	Description string
	Endpoint    string // API path relative to /api/v1, e.g. categories
	Entity      string // singular envelope key, e.g. category
	Entities    string // plural envelope key, e.g. categories
	IDParam     string // e.g. category_id
	DataParam   string // e.g. category_data

	// DataSchema describes the payload fields accepted on create/update.
	// Only fields named here are copied into the outbound body.
	DataSchema *jsonschema.Schema
	// RequiredCreate lists payload fields that must be present on create.
	RequiredCreate []string
	// ListFilters names integer arguments forwarded as query filters on list.
	ListFilters []string
	// SummaryFields, when set, trims create/update/list records down to these
	// fields. Nil returns the whole record.
	SummaryFields []string
	// TextFields are sanitized before records are returned. Defaults to
	// name and notes.
	TextFields []string

	// Extra maps additional action values to their handlers.
	Extra map[string]extraAction
	// ExtraSchema can add parameters needed by Extra actions.
	ExtraSchema func(schema *jsonschema.Schema)
}

// extraAction handles a resource-specific action value. It owns its own
// precondition checks and envelope construction.
type extraAction func(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult

// newManageTool builds a manage_* tool from a resource descriptor.
func newManageTool(t translations.TranslationHelperFunc, cfg resourceDescriptor) toolsets.ServerTool {
	actions := []any{"create", "get", "list", "update", "delete"}
	extraNames := make([]string, 0, len(cfg.Extra))
	for name := range cfg.Extra {
		extraNames = append(extraNames, name)
	}
	// Sorted so the schema is deterministic for snapshots.
	sort.Strings(extraNames)
	for _, name := range extraNames {
		actions = append(actions, name)
	}

	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: "The action to perform on " + cfg.Entities,
				Enum:        actions,
			},
			cfg.IDParam: {
				Type:        "number",
				Description: strings.ReplaceAll(cfg.Entity, "_", " ") + " ID (required for get, update, delete)",
			},
			cfg.DataParam: {
				Type:        "object",
				Description: strings.ReplaceAll(cfg.Entity, "_", " ") + " data (required for create, optional for update)",
				Properties:  cfg.DataSchema.Properties,
			},
		},
		Required: []string{"action"},
	}
	WithListOptions(schema)
	for _, filter := range cfg.ListFilters {
		schema.Properties[filter] = &jsonschema.Schema{
			Type:        "number",
			Description: "Filter by " + strings.ReplaceAll(strings.TrimSuffix(filter, "_id"), "_", " ") + " ID (for list action)",
		}
	}
	if cfg.ExtraSchema != nil {
		cfg.ExtraSchema(schema)
	}

	key := strings.ToUpper("TOOL_" + cfg.ToolName)
	return NewTool(
		cfg.Toolset,
		mcp.Tool{
			Name:        cfg.ToolName,
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
			if fn, ok := cfg.Extra[action]; ok {
				return fn(ctx, deps, args), nil, nil
			}
			switch action {
			case "create":
				return cfg.create(ctx, deps, args), nil, nil
			case "get":
				return cfg.get(ctx, deps, args), nil, nil
			case "list":
				return cfg.list(ctx, deps, args), nil, nil
			case "update":
				return cfg.update(ctx, deps, args), nil, nil
			case "delete":
				return cfg.delete(ctx, deps, args), nil, nil
			default:
				// Unreachable when the host validates the enum; kept so a
				// non-validating host still gets an envelope.
				return errorResult("unknown action: %s", action), nil, nil
			}
		},
	)
}

func (cfg resourceDescriptor) create(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	data, err := ObjectParam(args, cfg.DataParam)
	if err != nil {
		return errorResult("%s", err)
	}
	if data == nil {
		return errorResult("%s is required for create action", cfg.DataParam)
	}
	if missing := missingFields(data, cfg.RequiredCreate); len(missing) > 0 {
		return errorResult("%s required to create a %s", strings.Join(missing, " and "), strings.ReplaceAll(cfg.Entity, "_", " "))
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	record, err := client.Create(ctx, cfg.Endpoint, pickFields(data, cfg.DataSchema))
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("create", map[string]any{cfg.Entity: cfg.summarize(record)})
}

func (cfg resourceDescriptor) get(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	id, err := RequiredInt(args, cfg.IDParam)
	if err != nil {
		return errorResult("%s", err)
	}
	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	record, err := client.Get(ctx, cfg.Endpoint, id)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("get", map[string]any{cfg.Entity: cfg.sanitizeRecord(record)})
}

func (cfg resourceDescriptor) list(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	opts, err := OptionalListOptions(args)
	if err != nil {
		return errorResult("%s", err)
	}
	for _, filter := range cfg.ListFilters {
		v, err := OptionalInt(args, filter)
		if err != nil {
			return errorResult("%s", err)
		}
		if v != 0 {
			if opts.Filters == nil {
				opts.Filters = map[string]string{}
			}
			opts.Filters[filter] = strconv.FormatInt(v, 10)
		}
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	resp, err := client.List(ctx, cfg.Endpoint, opts)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	rows := make([]map[string]any, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		rows = append(rows, cfg.summarize(row))
	}
	return successResult("list", map[string]any{
		"count":      len(rows),
		"total":      resp.Total,
		cfg.Entities: rows,
	})
}

func (cfg resourceDescriptor) update(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	id, err := RequiredInt(args, cfg.IDParam)
	if err != nil {
		return errorResult("%s", err)
	}
	data, err := ObjectParam(args, cfg.DataParam)
	if err != nil {
		return errorResult("%s", err)
	}
	if data == nil {
		return errorResult("%s is required for update action", cfg.DataParam)
	}

	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	record, err := client.Update(ctx, cfg.Endpoint, id, pickFields(data, cfg.DataSchema))
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("update", map[string]any{cfg.Entity: cfg.summarize(record)})
}

func (cfg resourceDescriptor) delete(ctx context.Context, deps ToolDependencies, args map[string]any) *mcp.CallToolResult {
	id, err := RequiredInt(args, cfg.IDParam)
	if err != nil {
		return errorResult("%s", err)
	}
	client, err := deps.GetClient(ctx)
	if err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	if _, err := client.Delete(ctx, cfg.Endpoint, id); err != nil {
		return apiErrorResult(ctx, deps, err)
	}
	return successResult("delete", map[string]any{
		cfg.IDParam: id,
		"message":   strings.ReplaceAll(cfg.Entity, "_", " ") + " deleted successfully",
	})
}

// summarize trims a record to SummaryFields (when configured) and sanitizes
// its free-text fields.
func (cfg resourceDescriptor) summarize(record map[string]any) map[string]any {
	if cfg.SummaryFields != nil {
		trimmed := make(map[string]any, len(cfg.SummaryFields))
		for _, name := range cfg.SummaryFields {
			if v, ok := record[name]; ok {
				trimmed[name] = v
			}
		}
		record = trimmed
	}
	return cfg.sanitizeRecord(record)
}

func (cfg resourceDescriptor) sanitizeRecord(record map[string]any) map[string]any {
	fields := cfg.TextFields
	if fields == nil {
		fields = []string{"name", "notes"}
	}
	for _, name := range fields {
		if s, ok := record[name].(string); ok {
			record[name] = sanitize.Sanitize(s)
		}
	}
	return record
}

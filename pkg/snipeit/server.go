// Package snipeit implements the MCP tools that expose Snipe-IT inventory
// operations. Each tool accepts a discriminated action parameter (a closed
// enumeration validated by its schema), checks the preconditions of the
// chosen branch, issues one or a few API calls through the facade, and
// returns the uniform {"success", ...} envelope.
package snipeit

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/snipeitapi"
)

// NewServer creates a new Snipe-IT MCP server.
func NewServer(version string, opts *mcp.ServerOptions) *mcp.Server {
	if opts == nil {
		opts = &mcp.ServerOptions{}
	}
	return mcp.NewServer(&mcp.Implementation{
		Name:    "snipeit-mcp-server",
		Title:   "Snipe-IT MCP Server",
		Version: version,
	}, opts)
}

// RequiredParam fetches a required parameter from the arguments.
// It does the following checks:
// 1. Checks if the parameter is present in the request.
// 2. Checks if the parameter is of the expected type.
// 3. Checks if the parameter is not empty, i.e: non-zero value
func RequiredParam[T comparable](args map[string]any, p string) (T, error) {
	var zero T

	if _, ok := args[p]; !ok {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	val, ok := args[p].(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T", p, zero)
	}

	if val == zero {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	return val, nil
}

// OptionalParam fetches an optional parameter from the arguments, returning
// the zero value when absent and an error when present with the wrong type.
func OptionalParam[T any](args map[string]any, p string) (T, error) {
	var zero T

	if _, ok := args[p]; !ok {
		return zero, nil
	}

	if _, ok := args[p].(T); !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, args[p])
	}

	return args[p].(T), nil
}

// RequiredInt fetches a required integer parameter. JSON numbers arrive as
// float64, so the value is converted after the presence and type checks.
func RequiredInt(args map[string]any, p string) (int64, error) {
	v, err := RequiredParam[float64](args, p)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// OptionalInt fetches an optional integer parameter, zero when absent.
func OptionalInt(args map[string]any, p string) (int64, error) {
	v, err := OptionalParam[float64](args, p)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// OptionalIntWithDefault fetches an optional integer parameter, substituting
// d when the parameter is absent or zero.
func OptionalIntWithDefault(args map[string]any, p string, d int64) (int64, error) {
	v, err := OptionalInt(args, p)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return d, nil
	}
	return v, nil
}

// OptionalStringArrayParam fetches an optional string-array parameter.
func OptionalStringArrayParam(args map[string]any, p string) ([]string, error) {
	if _, ok := args[p]; !ok {
		return []string{}, nil
	}

	switch v := args[p].(type) {
	case nil:
		return []string{}, nil
	case []string:
		return v, nil
	case []any:
		strSlice := make([]string, len(v))
		for i, v := range v {
			s, ok := v.(string)
			if !ok {
				return []string{}, fmt.Errorf("parameter %s is not of type string, is %T", p, v)
			}
			strSlice[i] = s
		}
		return strSlice, nil
	default:
		return []string{}, fmt.Errorf("parameter %s could not be coerced to []string, is %T", p, args[p])
	}
}

// ObjectParam fetches an optional nested-object parameter such as asset_data.
func ObjectParam(args map[string]any, p string) (map[string]any, error) {
	if _, ok := args[p]; !ok {
		return nil, nil
	}
	v, ok := args[p].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parameter %s is not an object, is %T", p, args[p])
	}
	return v, nil
}

// WithListOptions adds the offset-based pagination parameters shared by every
// list action to a tool schema.
func WithListOptions(schema *jsonschema.Schema) *jsonschema.Schema {
	schema.Properties["limit"] = &jsonschema.Schema{
		Type:        "number",
		Description: "Number of results to return (for list action, default 50)",
		Minimum:     jsonschema.Ptr(1.0),
		Maximum:     jsonschema.Ptr(500.0),
	}
	schema.Properties["offset"] = &jsonschema.Schema{
		Type:        "number",
		Description: "Number of results to skip (for list action)",
		Minimum:     jsonschema.Ptr(0.0),
	}
	schema.Properties["search"] = &jsonschema.Schema{
		Type:        "string",
		Description: "Search query (for list action)",
	}
	schema.Properties["sort"] = &jsonschema.Schema{
		Type:        "string",
		Description: "Field to sort by (for list action)",
	}
	schema.Properties["order"] = &jsonschema.Schema{
		Type:        "string",
		Description: "Sort order (for list action)",
		Enum:        []any{"asc", "desc"},
	}
	return schema
}

// OptionalListOptions returns the pagination parameters from the request, or
// their defaults (limit 50, offset 0) when absent.
func OptionalListOptions(args map[string]any) (snipeitapi.ListOptions, error) {
	limit, err := OptionalIntWithDefault(args, "limit", 50)
	if err != nil {
		return snipeitapi.ListOptions{}, err
	}
	offset, err := OptionalInt(args, "offset")
	if err != nil {
		return snipeitapi.ListOptions{}, err
	}
	search, err := OptionalParam[string](args, "search")
	if err != nil {
		return snipeitapi.ListOptions{}, err
	}
	sort, err := OptionalParam[string](args, "sort")
	if err != nil {
		return snipeitapi.ListOptions{}, err
	}
	order, err := OptionalParam[string](args, "order")
	if err != nil {
		return snipeitapi.ListOptions{}, err
	}
	return snipeitapi.ListOptions{
		Limit:  int(limit),
		Offset: int(offset),
		Search: search,
		Sort:   sort,
		Order:  order,
	}, nil
}

// pickFields copies the properties named by schema out of data, skipping
// absent and null entries. Absent fields stay absent in the outbound body so
// updates never clear remote fields unintentionally.
func pickFields(data map[string]any, schema *jsonschema.Schema) map[string]any {
	payload := make(map[string]any, len(data))
	for name := range schema.Properties {
		v, ok := data[name]
		if !ok || v == nil {
			continue
		}
		payload[name] = v
	}
	return payload
}

// mustJSON marshals a schema default value. Only used with literals that
// cannot fail to marshal.
func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// missingFields returns the names in required that are absent or null in data.
func missingFields(data map[string]any, required []string) []string {
	var missing []string
	for _, name := range required {
		if v, ok := data[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// Package toolsets holds the tool registry: static tool descriptors grouped
// into named toolsets, plus a Builder that applies startup-time filtering
// (read-only mode, enabled toolsets, a tool allow-list) and produces an
// immutable Toolsets set to register against an MCP server. Registration is
// an explicit startup step; nothing mutates the set afterwards.
package toolsets

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolsetID is a unique identifier for a toolset.
// Using a distinct type provides compile-time type safety.
type ToolsetID string

// ToolsetMetadata contains metadata about the toolset a tool belongs to.
type ToolsetMetadata struct {
	// ID is the unique identifier for the toolset (e.g., "assets", "licensing")
	ID ToolsetID
	// Description provides a human-readable description of the toolset
	Description string
	// Default indicates this toolset should be enabled by default
	Default bool
}

// ServerTool represents an MCP tool with its toolset membership. The tool
// definition is static; the handler receives its dependencies from the
// request context at call time, so descriptors can be built before any
// client or configuration exists.
type ServerTool struct {
	// Tool is the MCP tool definition containing name, description, schema, etc.
	Tool mcp.Tool

	// Toolset contains metadata about which toolset this tool belongs to.
	Toolset ToolsetMetadata

	// Handler is the MCP handler for this tool.
	Handler mcp.ToolHandler
}

// IsReadOnly returns true if this tool is marked as read-only via annotations.
func (st *ServerTool) IsReadOnly() bool {
	return st.Tool.Annotations != nil && st.Tool.Annotations.ReadOnlyHint
}

// Register adds the tool to the server.
func (st *ServerTool) Register(s *mcp.Server) {
	toolCopy := st.Tool
	s.AddTool(&toolCopy, st.Handler)
}

// ServerResourceTemplate represents an MCP resource template with its toolset
// membership.
type ServerResourceTemplate struct {
	Template mcp.ResourceTemplate
	Toolset  ToolsetMetadata
	Handler  mcp.ResourceHandler
}

// Register adds the resource template to the server.
func (sr *ServerResourceTemplate) Register(s *mcp.Server) {
	templateCopy := sr.Template
	s.AddResourceTemplate(&templateCopy, sr.Handler)
}

// NewServerTool creates a ServerTool from a tool definition, toolset metadata,
// and a typed handler. Arguments are decoded from raw JSON into In before the
// handler runs; a decode failure is a protocol error, not a tool error.
func NewServerTool[In any, Out any](tool mcp.Tool, toolset ToolsetMetadata, handler mcp.ToolHandlerFor[In, Out]) ServerTool {
	return ServerTool{
		Tool:    tool,
		Toolset: toolset,
		Handler: func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var arguments In
			if err := json.Unmarshal(req.Params.Arguments, &arguments); err != nil {
				return nil, err
			}
			resp, _, err := handler(ctx, req, arguments)
			return resp, err
		},
	}
}

package toolsets

import (
	"slices"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Toolsets holds a collection of tools and resource templates with filtering
// applied. Create one using Builder; the set is configured at build time and
// never mutated afterwards, so concurrent readers need no locking.
type Toolsets struct {
	tools             []ServerTool
	resourceTemplates []ServerResourceTemplate

	// Pre-computed toolset metadata (set during Build)
	toolsetIDs          []ToolsetID
	defaultToolsetIDs   []ToolsetID
	toolsetDescriptions map[ToolsetID]string

	// Filters - these control what's returned by Available* methods
	readOnly bool
	// enabledToolsets when non-nil, only include tools from these toolsets;
	// when nil, all toolsets are enabled
	enabledToolsets map[ToolsetID]bool
	// additionalTools are specific tools that bypass toolset filtering
	// (but still respect read-only). These are additive.
	additionalTools map[string]bool
	// unrecognizedToolsets holds toolset IDs that were requested but don't
	// match any registered toolsets
	unrecognizedToolsets []string
}

// UnrecognizedToolsets returns toolset IDs that were passed to WithToolsets
// but don't match any registered toolsets. Useful for warning about typos.
func (r *Toolsets) UnrecognizedToolsets() []string {
	return r.unrecognizedToolsets
}

// ToolsetIDs returns a sorted list of unique toolset IDs from all tools.
func (r *Toolsets) ToolsetIDs() []ToolsetID {
	return r.toolsetIDs
}

// DefaultToolsetIDs returns the IDs of toolsets marked as Default in their
// metadata, in sorted order.
func (r *Toolsets) DefaultToolsetIDs() []ToolsetID {
	return r.defaultToolsetIDs
}

// ToolsetDescriptions returns a map of toolset ID to description.
func (r *Toolsets) ToolsetDescriptions() map[ToolsetID]string {
	return r.toolsetDescriptions
}

// FindToolByName searches all tools for one matching the given name,
// regardless of filters.
func (r *Toolsets) FindToolByName(toolName string) (*ServerTool, error) {
	for i := range r.tools {
		if r.tools[i].Tool.Name == toolName {
			return &r.tools[i], nil
		}
	}
	return nil, NewToolDoesNotExistError(toolName)
}

// AllTools returns all tools without any filtering, sorted deterministically
// by toolset ID, then tool name.
func (r *Toolsets) AllTools() []ServerTool {
	result := slices.Clone(r.tools)
	sortTools(result)
	return result
}

func (r *Toolsets) isToolsetEnabled(toolsetID ToolsetID) bool {
	if r.enabledToolsets != nil {
		return r.enabledToolsets[toolsetID]
	}
	return true
}

// isToolEnabled checks if a specific tool is enabled based on current filters.
func (r *Toolsets) isToolEnabled(tool *ServerTool) bool {
	// Read-only filter applies to every tool, including allow-listed ones.
	if r.readOnly && !tool.IsReadOnly() {
		return false
	}
	// Allow-listed tools bypass the toolset filter.
	if r.additionalTools != nil && r.additionalTools[tool.Tool.Name] {
		return true
	}
	return r.isToolsetEnabled(tool.Toolset.ID)
}

// AvailableTools returns the tools that pass all current filters, sorted
// deterministically by toolset ID, then tool name.
func (r *Toolsets) AvailableTools() []ServerTool {
	var result []ServerTool
	for i := range r.tools {
		if r.isToolEnabled(&r.tools[i]) {
			result = append(result, r.tools[i])
		}
	}
	sortTools(result)
	return result
}

// AvailableResourceTemplates returns the resource templates whose toolset is
// enabled.
func (r *Toolsets) AvailableResourceTemplates() []ServerResourceTemplate {
	var result []ServerResourceTemplate
	for i := range r.resourceTemplates {
		if r.isToolsetEnabled(r.resourceTemplates[i].Toolset.ID) {
			result = append(result, r.resourceTemplates[i])
		}
	}
	return result
}

// RegisterAll registers all available tools and resource templates with the
// server.
func (r *Toolsets) RegisterAll(s *mcp.Server) {
	for _, tool := range r.AvailableTools() {
		tool.Register(s)
	}
	for _, res := range r.AvailableResourceTemplates() {
		res.Register(s)
	}
}

func sortTools(tools []ServerTool) {
	sort.Slice(tools, func(i, j int) bool {
		if tools[i].Toolset.ID != tools[j].Toolset.ID {
			return tools[i].Toolset.ID < tools[j].Toolset.ID
		}
		return tools[i].Tool.Name < tools[j].Tool.Name
	})
}

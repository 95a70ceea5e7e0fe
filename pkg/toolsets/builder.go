package toolsets

import (
	"sort"
	"strings"
)

// Builder builds a Toolsets set with the specified configuration.
// Use NewBuilder to create a builder, chain configuration methods,
// then call Build() to create the final immutable set.
//
// Example:
//
//	reg := NewBuilder().
//	    SetTools(tools).
//	    WithReadOnly(true).
//	    WithToolsets([]string{"assets", "licensing"}).
//	    Build()
type Builder struct {
	tools             []ServerTool
	resourceTemplates []ServerResourceTemplate

	readOnly        bool
	toolsetIDs      []string // raw input, processed at Build()
	toolsetIDsIsNil bool     // tracks if nil was passed (nil = defaults)
	additionalTools []string // raw input, processed at Build()
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{toolsetIDsIsNil: true}
}

// SetTools sets the tools for the set. Returns self for chaining.
func (b *Builder) SetTools(tools []ServerTool) *Builder {
	b.tools = tools
	return b
}

// SetResources sets the resource templates for the set. Returns self for chaining.
func (b *Builder) SetResources(resources []ServerResourceTemplate) *Builder {
	b.resourceTemplates = resources
	return b
}

// WithReadOnly sets whether only read-only tools should be available.
// When true, write tools are filtered out. Returns self for chaining.
func (b *Builder) WithReadOnly(readOnly bool) *Builder {
	b.readOnly = readOnly
	return b
}

// WithToolsets specifies which toolsets should be enabled.
// Special keywords:
//   - "all": enables all toolsets
//   - "default": expands to toolsets marked with Default: true in their metadata
//
// Input strings are trimmed of whitespace and duplicates are removed.
// Pass nil to use default toolsets; an empty slice disables all toolsets.
// Returns self for chaining.
func (b *Builder) WithToolsets(toolsetIDs []string) *Builder {
	b.toolsetIDs = toolsetIDs
	b.toolsetIDsIsNil = toolsetIDs == nil
	return b
}

// WithTools specifies additional tools that bypass toolset filtering.
// These tools are additive: they are included even if their toolset is not
// enabled. Read-only filtering still applies. Returns self for chaining.
func (b *Builder) WithTools(toolNames []string) *Builder {
	b.additionalTools = toolNames
	return b
}

// Build creates the final Toolsets with all configuration applied.
func (b *Builder) Build() *Toolsets {
	r := &Toolsets{
		tools:             b.tools,
		resourceTemplates: b.resourceTemplates,
		readOnly:          b.readOnly,
	}

	r.enabledToolsets, r.unrecognizedToolsets, r.toolsetIDs, r.defaultToolsetIDs, r.toolsetDescriptions = b.processToolsets()

	if len(b.additionalTools) > 0 {
		r.additionalTools = make(map[string]bool, len(b.additionalTools))
		for _, name := range b.additionalTools {
			r.additionalTools[name] = true
		}
	}

	return r
}

// processToolsets processes the toolsetIDs configuration and returns:
// - enabledToolsets map (nil means all enabled)
// - unrecognizedToolsets list for warnings
// - allToolsetIDs sorted list of all toolset IDs
// - defaultToolsetIDs sorted list of default toolset IDs
// - toolsetDescriptions map of toolset ID to description
func (b *Builder) processToolsets() (map[ToolsetID]bool, []string, []ToolsetID, []ToolsetID, map[ToolsetID]string) {
	validIDs := make(map[ToolsetID]bool)
	defaultIDs := make(map[ToolsetID]bool)
	descriptions := make(map[ToolsetID]string)

	collect := func(tm ToolsetMetadata) {
		validIDs[tm.ID] = true
		if tm.Default {
			defaultIDs[tm.ID] = true
		}
		if tm.Description != "" {
			descriptions[tm.ID] = tm.Description
		}
	}
	for i := range b.tools {
		collect(b.tools[i].Toolset)
	}
	for i := range b.resourceTemplates {
		collect(b.resourceTemplates[i].Toolset)
	}

	allToolsetIDs := sortedIDs(validIDs)
	defaultToolsetIDList := sortedIDs(defaultIDs)

	toolsetIDs := b.toolsetIDs

	// "all" enables every toolset; nil enabledToolsets means no filtering.
	for _, id := range toolsetIDs {
		if strings.TrimSpace(id) == "all" {
			return nil, nil, allToolsetIDs, defaultToolsetIDList, descriptions
		}
	}

	// nil means use defaults, empty slice means no toolsets
	if b.toolsetIDsIsNil {
		toolsetIDs = []string{"default"}
	}

	seen := make(map[ToolsetID]bool)
	enabled := make(map[ToolsetID]bool)
	var unrecognized []string

	for _, id := range toolsetIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if trimmed == "default" {
			for _, defaultID := range defaultToolsetIDList {
				enabled[defaultID] = true
			}
			continue
		}
		tsID := ToolsetID(trimmed)
		if seen[tsID] {
			continue
		}
		seen[tsID] = true
		enabled[tsID] = true
		if !validIDs[tsID] {
			unrecognized = append(unrecognized, trimmed)
		}
	}

	return enabled, unrecognized, allToolsetIDs, defaultToolsetIDList, descriptions
}

func sortedIDs(set map[ToolsetID]bool) []ToolsetID {
	ids := make([]ToolsetID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
